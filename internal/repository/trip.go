package repository

import (
	"context"

	"ecotrip/internal/domain"
)

// TripRepository defines the persistence operations for trip plans.
// Implementations load and store the full plan including its component list.
type TripRepository interface {
	// Create persists a new trip plan and its components.
	Create(ctx context.Context, plan *domain.TripPlan) error

	// GetByID retrieves a trip plan with its components.
	GetByID(ctx context.Context, id string) (*domain.TripPlan, error)

	// GetAll retrieves all trip plans.
	GetAll(ctx context.Context) ([]*domain.TripPlan, error)

	// GetByUser retrieves all trip plans owned by a user.
	GetByUser(ctx context.Context, userID string) ([]*domain.TripPlan, error)

	// Update rewrites an existing trip plan and its component list.
	Update(ctx context.Context, plan *domain.TripPlan) error
}
