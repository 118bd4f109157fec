package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ecotrip/internal/carbon"
	"ecotrip/internal/domain"
	"ecotrip/internal/service"
)

// TripHandler handles HTTP requests for trip plans and their derived values.
type TripHandler struct {
	tripService  *service.TripService
	scoreService *service.ScoreService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService, scoreService *service.ScoreService) *TripHandler {
	return &TripHandler{tripService: tripService, scoreService: scoreService}
}

// ComponentRequest is the HTTP shape of a trip component.
type ComponentRequest struct {
	ID                string  `json:"id"`
	LegID             string  `json:"leg_id"`
	Kind              string  `json:"kind"`
	Name              string  `json:"name"`
	CostUnits         float64 `json:"cost_units"`
	DistanceKm        float64 `json:"distance_km"`
	Cabin             string  `json:"cabin_class"`
	Nights            int     `json:"nights"`
	Certifications    int     `json:"certifications"`
	CarbonFootprintKg float64 `json:"carbon_footprint_kg"`
	Mode              string  `json:"mode"`
	Pinned            bool    `json:"pinned"`
}

func (r ComponentRequest) toDomain() domain.TripComponent {
	return domain.TripComponent{
		ID:                r.ID,
		LegID:             r.LegID,
		Kind:              domain.ComponentKind(r.Kind),
		Name:              r.Name,
		CostUnits:         r.CostUnits,
		DistanceKm:        r.DistanceKm,
		Cabin:             domain.CabinClass(r.Cabin),
		Nights:            r.Nights,
		Certifications:    r.Certifications,
		CarbonFootprintKg: r.CarbonFootprintKg,
		Mode:              domain.TransportMode(r.Mode),
		Pinned:            r.Pinned,
	}
}

// CreateTripRequest is the HTTP request body for trip creation.
type CreateTripRequest struct {
	UserID       string             `json:"user_id"`
	Name         string             `json:"name"`
	Destinations []string           `json:"destinations"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Travelers    int                `json:"travelers"`
	BudgetUnits  float64            `json:"budget_units"`
	Components   []ComponentRequest `json:"components"`
}

// ComponentResponse is the HTTP response shape of a trip component.
type ComponentResponse struct {
	ID                string  `json:"id"`
	LegID             string  `json:"leg_id,omitempty"`
	Kind              string  `json:"kind"`
	Name              string  `json:"name"`
	CostUnits         float64 `json:"cost_units"`
	EstimatedCarbonKg float64 `json:"estimated_carbon_kg"`
	Pinned            bool    `json:"pinned,omitempty"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID              string              `json:"trip_id"`
	UserID              string              `json:"user_id"`
	Name                string              `json:"name"`
	Destinations        []string            `json:"destinations"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	Travelers           int                 `json:"travelers"`
	BudgetUnits         float64             `json:"budget_units"`
	PredictedCarbonKg   float64             `json:"predicted_carbon_kg"`
	ActualCarbonKg      float64             `json:"actual_carbon_kg,omitempty"`
	SustainabilityScore float64             `json:"sustainability_score"`
	Components          []ComponentResponse `json:"components"`
}

// CarbonResponse is the HTTP response for carbon aggregation.
type CarbonResponse struct {
	TotalKg   float64            `json:"total_kg"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// ComparisonResponse is the HTTP response for predicted-vs-actual comparison.
type ComparisonResponse struct {
	PredictedKg          float64 `json:"predicted_kg"`
	ActualKg             float64 `json:"actual_kg"`
	Comparison           string  `json:"comparison"`
	PercentageDifference float64 `json:"percentage_difference"`
}

// ScoreResponse is the HTTP response for eco score requests.
type ScoreResponse struct {
	Score       float64 `json:"score"`
	Level       string  `json:"level"`
	CarbonKg    float64 `json:"carbon_kg"`
	BenchmarkKg float64 `json:"benchmark_kg"`
	BadgeBonus  float64 `json:"badge_bonus"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startDate, endDate, ok := parseDateRange(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	components := make([]domain.TripComponent, 0, len(req.Components))
	for _, component := range req.Components {
		components = append(components, component.toDomain())
	}

	plan, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		UserID:       req.UserID,
		Name:         req.Name,
		Destinations: req.Destinations,
		StartDate:    startDate,
		EndDate:      endDate,
		Travelers:    req.Travelers,
		BudgetUnits:  req.BudgetUnits,
		Components:   components,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(plan))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	plan, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(plan))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	plans, err := h.tripService.GetAllTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var response []TripResponse
	for _, plan := range plans {
		response = append(response, toTripResponse(plan))
	}

	c.JSON(http.StatusOK, response)
}

// AddComponent handles POST /v1/trips/:id/components
func (h *TripHandler) AddComponent(c *gin.Context) {
	var req ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	plan, err := h.tripService.AddComponent(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(plan))
}

// ReplaceComponent handles PUT /v1/trips/:id/components/:componentId
func (h *TripHandler) ReplaceComponent(c *gin.Context) {
	var req ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	plan, err := h.tripService.ReplaceComponent(c.Request.Context(), c.Param("id"), c.Param("componentId"), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(plan))
}

// RemoveComponent handles DELETE /v1/trips/:id/components/:componentId
func (h *TripHandler) RemoveComponent(c *gin.Context) {
	plan, err := h.tripService.RemoveComponent(c.Request.Context(), c.Param("id"), c.Param("componentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(plan))
}

// GetCarbon handles GET /v1/trips/:id/carbon
func (h *TripHandler) GetCarbon(c *gin.Context) {
	_, summary, err := h.tripService.TripCarbon(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCarbonResponse(summary))
}

// CalculateCarbon handles POST /v1/carbon, aggregating an arbitrary
// component list without a stored trip.
func (h *TripHandler) CalculateCarbon(c *gin.Context) {
	var req struct {
		Components []ComponentRequest `json:"components"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	components := make([]domain.TripComponent, 0, len(req.Components))
	for _, component := range req.Components {
		components = append(components, component.toDomain())
	}

	summary, err := h.tripService.CalculateCarbon(components)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCarbonResponse(summary))
}

// GetComparison handles GET /v1/trips/:id/comparison
func (h *TripHandler) GetComparison(c *gin.Context) {
	cmp, err := h.tripService.Compare(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ComparisonResponse{
		PredictedKg:          cmp.PredictedKg,
		ActualKg:             cmp.ActualKg,
		Comparison:           string(cmp.Comparison),
		PercentageDifference: cmp.PercentageDifference,
	})
}

// GetScore handles GET /v1/trips/:id/score
func (h *TripHandler) GetScore(c *gin.Context) {
	score, err := h.scoreService.ScoreTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ScoreResponse{
		Score:       score.Value,
		Level:       score.Level,
		CarbonKg:    score.CarbonKg,
		BenchmarkKg: score.BenchmarkKg,
		BadgeBonus:  score.BadgeBonus,
	})
}

// RecordActual handles POST /v1/trips/:id/actual
func (h *TripHandler) RecordActual(c *gin.Context) {
	var req struct {
		ActualCarbonKg float64 `json:"actual_carbon_kg"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	plan, err := h.tripService.RecordActual(c.Request.Context(), c.Param("id"), req.ActualCarbonKg)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(plan))
}

func parseDateRange(c *gin.Context, start, end string) (time.Time, time.Time, bool) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return startDate, endDate, true
}

func toTripResponse(plan *domain.TripPlan) TripResponse {
	response := TripResponse{
		TripID:              plan.ID,
		UserID:              plan.UserID,
		Name:                plan.Name,
		Destinations:        plan.Destinations,
		StartDate:           plan.StartDate.Format("2006-01-02"),
		EndDate:             plan.EndDate.Format("2006-01-02"),
		Travelers:           plan.Travelers,
		BudgetUnits:         plan.BudgetUnits,
		PredictedCarbonKg:   plan.PredictedCarbonKg,
		SustainabilityScore: plan.SustainabilityScore,
	}
	if plan.ActualRecorded {
		response.ActualCarbonKg = plan.ActualCarbonKg
	}
	for _, component := range plan.Components {
		response.Components = append(response.Components, toComponentResponse(component))
	}
	return response
}

func toComponentResponse(component domain.TripComponent) ComponentResponse {
	return ComponentResponse{
		ID:                component.ID,
		LegID:             component.LegID,
		Kind:              string(component.Kind),
		Name:              component.Name,
		CostUnits:         component.CostUnits,
		EstimatedCarbonKg: carbon.Estimate(component),
		Pinned:            component.Pinned,
	}
}

func toCarbonResponse(summary domain.CarbonSummary) CarbonResponse {
	breakdown := make(map[string]float64, len(summary.Breakdown))
	for category, kg := range summary.Breakdown {
		breakdown[string(category)] = kg
	}
	return CarbonResponse{TotalKg: summary.TotalKg, Breakdown: breakdown}
}
