package repository

import (
	"context"

	"ecotrip/internal/domain"
)

// UserRepository defines persistence operations for users, their earned
// badges, and the aggregated history badge criteria run against.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// UpdateEcoScore stores the latest computed score for a user.
	UpdateEcoScore(ctx context.Context, userID string, score float64) error

	// GetHistory returns the aggregated trip history for badge evaluation.
	GetHistory(ctx context.Context, userID string) (domain.UserHistory, error)

	// GetEarnedBadges returns the ids of badges the user has earned.
	GetEarnedBadges(ctx context.Context, userID string) ([]string, error)

	// AwardBadge records a locked->earned transition. Awarding an already
	// earned badge is a no-op.
	AwardBadge(ctx context.Context, earned *domain.EarnedBadge) error
}
