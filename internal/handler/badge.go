package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecotrip/internal/service"
)

// BadgeHandler handles HTTP requests for badges and the leaderboard.
type BadgeHandler struct {
	badgeService *service.BadgeService
}

// NewBadgeHandler creates a new BadgeHandler.
func NewBadgeHandler(badgeService *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// BadgeResponse is the HTTP shape of a badge.
type BadgeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LeaderboardEntryResponse is one row of the leaderboard response.
type LeaderboardEntryResponse struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	EcoScore   float64 `json:"eco_score"`
	BadgeCount int     `json:"badge_count"`
}

// CheckAndAward handles POST /v1/users/:id/badges/check
func (h *BadgeHandler) CheckAndAward(c *gin.Context) {
	badges, err := h.badgeService.CheckAndAward(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BadgeResponse, 0, len(badges))
	for _, badge := range badges {
		response = append(response, BadgeResponse{
			ID:          badge.ID,
			Name:        badge.Name,
			Description: badge.Description,
			Category:    string(badge.Category),
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetEarned handles GET /v1/users/:id/badges
func (h *BadgeHandler) GetEarned(c *gin.Context) {
	badges, err := h.badgeService.EarnedBadges(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BadgeResponse, 0, len(badges))
	for _, badge := range badges {
		response = append(response, BadgeResponse{
			ID:          badge.ID,
			Name:        badge.Name,
			Description: badge.Description,
			Category:    string(badge.Category),
		})
	}

	c.JSON(http.StatusOK, response)
}

// Leaderboard handles GET /v1/leaderboard
func (h *BadgeHandler) Leaderboard(c *gin.Context) {
	entries, err := h.badgeService.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, LeaderboardEntryResponse{
			Rank:       entry.Rank,
			UserID:     entry.UserID,
			Name:       entry.Name,
			EcoScore:   entry.EcoScore,
			BadgeCount: entry.BadgeCount,
		})
	}

	c.JSON(http.StatusOK, response)
}
