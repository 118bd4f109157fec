package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ecotrip/internal/service"
)

// BenchmarkHandler handles HTTP requests for benchmark lookups.
type BenchmarkHandler struct {
	benchmarkService *service.BenchmarkService
}

// NewBenchmarkHandler creates a new BenchmarkHandler.
func NewBenchmarkHandler(benchmarkService *service.BenchmarkService) *BenchmarkHandler {
	return &BenchmarkHandler{benchmarkService: benchmarkService}
}

// BenchmarkResponse is the HTTP response for a benchmark lookup.
type BenchmarkResponse struct {
	Region            string  `json:"region"`
	DurationDays      int     `json:"duration_days"`
	Travelers         int     `json:"travelers"`
	ReferenceCarbonKg float64 `json:"reference_carbon_kg"`
	ReferenceScore    float64 `json:"reference_score"`
}

// Get handles GET /v1/benchmarks?destinations=a,b&duration_days=7&travelers=2
func (h *BenchmarkHandler) Get(c *gin.Context) {
	durationDays, err := strconv.Atoi(c.DefaultQuery("duration_days", "0"))
	if err != nil || durationDays < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid duration_days"})
		return
	}

	travelers, err := strconv.Atoi(c.DefaultQuery("travelers", "1"))
	if err != nil || travelers < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid travelers"})
		return
	}

	var destinations []string
	if raw := c.Query("destinations"); raw != "" {
		destinations = strings.Split(raw, ",")
	}

	sig := service.Signature(destinations, durationDays, travelers)

	benchmark, err := h.benchmarkService.Lookup(c.Request.Context(), sig)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, BenchmarkResponse{
		Region:            string(sig.Region),
		DurationDays:      sig.DurationDays,
		Travelers:         sig.Travelers,
		ReferenceCarbonKg: benchmark.ReferenceCarbonKg,
		ReferenceScore:    benchmark.ReferenceScore,
	})
}
