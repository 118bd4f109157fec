package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecotrip/internal/service"
)

// RecommendationHandler handles HTTP requests for recommendations.
type RecommendationHandler struct {
	recommendationService *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// RecommendationResponse is the HTTP shape of one recommendation.
type RecommendationResponse struct {
	ID                     string  `json:"id"`
	Type                   string  `json:"type"`
	Title                  string  `json:"title"`
	Description            string  `json:"description"`
	Impact                 string  `json:"impact"`
	Category               string  `json:"category"`
	AppliesToComponentID   string  `json:"applies_to_component_id,omitempty"`
	AlternativeComponentID string  `json:"alternative_component_id,omitempty"`
	CarbonReductionKg      float64 `json:"carbon_reduction_kg,omitempty"`
	CostDeltaUnits         float64 `json:"cost_delta_units,omitempty"`
}

// GetForTrip handles GET /v1/trips/:id/recommendations
func (h *RecommendationHandler) GetForTrip(c *gin.Context) {
	recommendations, err := h.recommendationService.ForTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RecommendationResponse, 0, len(recommendations))
	for _, rec := range recommendations {
		response = append(response, RecommendationResponse{
			ID:                     rec.ID,
			Type:                   string(rec.Type),
			Title:                  rec.Title,
			Description:            rec.Description,
			Impact:                 string(rec.Impact),
			Category:               string(rec.Category),
			AppliesToComponentID:   rec.AppliesToComponentID,
			AlternativeComponentID: rec.AlternativeComponentID,
			CarbonReductionKg:      rec.CarbonReductionKg,
			CostDeltaUnits:         rec.CostDeltaUnits,
		})
	}

	c.JSON(http.StatusOK, response)
}
