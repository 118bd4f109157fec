package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecotrip/internal/repository"
	"ecotrip/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidComponentID),
		errors.Is(err, service.ErrInvalidComponent),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidTravelers),
		errors.Is(err, service.ErrInvalidBudget),
		errors.Is(err, service.ErrNoDestinations),
		errors.Is(err, service.ErrNoLegs),
		errors.Is(err, service.ErrInvalidActualCarbon),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrPlanLocked),
		errors.Is(err, service.ErrActualNotRecorded):
		return http.StatusConflict

	// Service unavailable
	case errors.Is(err, service.ErrBenchmarkUnavailable),
		errors.Is(err, service.ErrNoCandidatesAvailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
