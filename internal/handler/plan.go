package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecotrip/internal/domain"
	"ecotrip/internal/service"
)

// PlanHandler handles HTTP requests for plan generation and optimization.
type PlanHandler struct {
	plannerService *service.PlannerService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plannerService *service.PlannerService) *PlanHandler {
	return &PlanHandler{plannerService: plannerService}
}

// LegRequest is the HTTP shape of one plan leg.
type LegRequest struct {
	LegID       string `json:"leg_id"`
	Destination string `json:"destination"`
	Kind        string `json:"kind"`
}

// GeneratePlanRequest is the HTTP request body for plan generation.
type GeneratePlanRequest struct {
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	Destinations []string     `json:"destinations"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	Travelers    int          `json:"travelers"`
	BudgetUnits  float64      `json:"budget_units"`
	Legs         []LegRequest `json:"legs"`
}

// LegIssueResponse reports a leg the optimizer could not serve.
type LegIssueResponse struct {
	LegID string `json:"leg_id"`
	Error string `json:"error"`
}

// PlanResponse is the HTTP response for plan generation and optimization.
type PlanResponse struct {
	Trip           TripResponse       `json:"trip"`
	BudgetExceeded bool               `json:"budget_exceeded"`
	LegIssues      []LegIssueResponse `json:"leg_issues,omitempty"`
}

// GeneratePlan handles POST /v1/plans
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startDate, endDate, ok := parseDateRange(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	legs := make([]service.LegRequest, 0, len(req.Legs))
	for _, leg := range req.Legs {
		legs = append(legs, service.LegRequest{
			LegID:       leg.LegID,
			Destination: leg.Destination,
			Kind:        domain.ComponentKind(leg.Kind),
		})
	}

	result, err := h.plannerService.GeneratePlan(c.Request.Context(), service.GeneratePlanRequest{
		UserID:       req.UserID,
		Name:         req.Name,
		Destinations: req.Destinations,
		StartDate:    startDate,
		EndDate:      endDate,
		Travelers:    req.Travelers,
		BudgetUnits:  req.BudgetUnits,
		Legs:         legs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPlanResponse(result))
}

// OptimizeTrip handles POST /v1/trips/:id/optimize
func (h *PlanHandler) OptimizeTrip(c *gin.Context) {
	result, err := h.plannerService.OptimizeTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPlanResponse(result))
}

func toPlanResponse(result *service.PlanResult) PlanResponse {
	response := PlanResponse{
		Trip:           toTripResponse(result.Plan),
		BudgetExceeded: result.BudgetExceeded,
	}
	for _, issue := range result.LegIssues {
		response.LegIssues = append(response.LegIssues, LegIssueResponse{
			LegID: issue.LegID,
			Error: issue.Err.Error(),
		})
	}
	return response
}
