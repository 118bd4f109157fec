package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ecotrip/internal/domain"
	"ecotrip/internal/repository"
)

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, eco_score, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.EcoScore,
		user.CreatedAt,
	)
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, name, email, eco_score, created_at FROM users WHERE id = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, eco_score, created_at FROM users WHERE email = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, email))
}

// GetAll retrieves all users.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, name, email, eco_score, created_at FROM users ORDER BY created_at`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.EcoScore, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// UpdateEcoScore stores the latest computed score for a user.
func (r *UserRepository) UpdateEcoScore(ctx context.Context, userID string, score float64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE users SET eco_score = $2 WHERE id = $1`, userID, score)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetHistory returns the aggregated trip history for badge evaluation.
// Aggregates are computed across the user's whole trip set so badge criteria
// stay stable when individual trips are edited.
func (r *UserRepository) GetHistory(ctx context.Context, userID string) (domain.UserHistory, error) {
	var history domain.UserHistory

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(GREATEST(saved_carbon_kg, 0)), 0),
			COALESCE(SUM(CASE WHEN shared THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(crisis_adaptations), 0)
		FROM trips WHERE user_id = $1
	`
	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&history.TripCount,
		&history.CarbonSavedKg,
		&history.SharedTripCount,
		&history.CrisisAdaptations,
	)
	if err != nil {
		return domain.UserHistory{}, err
	}

	destQuery := `
		SELECT COUNT(DISTINCT destination)
		FROM trips, UNNEST(destinations) AS destination
		WHERE user_id = $1
	`
	if err := r.q.QueryRowContext(ctx, destQuery, userID).Scan(&history.DistinctDestinations); err != nil {
		return domain.UserHistory{}, err
	}

	return history, nil
}

// GetEarnedBadges returns the ids of badges the user has earned.
func (r *UserRepository) GetEarnedBadges(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT badge_id FROM user_badges WHERE user_id = $1 ORDER BY earned_at`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// AwardBadge records a locked->earned transition. The conflict clause makes
// re-awarding a no-op, which keeps the transition one-way.
func (r *UserRepository) AwardBadge(ctx context.Context, earned *domain.EarnedBadge) error {
	query := `
		INSERT INTO user_badges (user_id, badge_id, earned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`

	_, err := r.q.ExecContext(ctx, query, earned.UserID, earned.BadgeID, earned.EarnedAt)
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.EcoScore, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
