package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"ecotrip/internal/domain"
	"ecotrip/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip plan and its components.
func (r *TripRepository) Create(ctx context.Context, plan *domain.TripPlan) error {
	query := `
		INSERT INTO trips (id, user_id, name, destinations, start_date, end_date, travelers,
			budget_units, predicted_carbon_kg, carbon_stale, actual_carbon_kg, actual_recorded,
			sustainability_score, saved_carbon_kg, shared, crisis_adaptations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.q.ExecContext(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Name,
		pq.Array(plan.Destinations),
		plan.StartDate,
		plan.EndDate,
		plan.Travelers,
		plan.BudgetUnits,
		plan.PredictedCarbonKg,
		plan.CarbonStale,
		plan.ActualCarbonKg,
		plan.ActualRecorded,
		plan.SustainabilityScore,
		plan.SavedCarbonKg,
		plan.Shared,
		plan.CrisisAdaptations,
		plan.CreatedAt,
	)
	if err != nil {
		return err
	}

	return r.insertComponents(ctx, plan.ID, plan.Components)
}

// GetByID retrieves a trip plan with its components.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.TripPlan, error) {
	query := `
		SELECT id, user_id, name, destinations, start_date, end_date, travelers,
			budget_units, predicted_carbon_kg, carbon_stale, actual_carbon_kg, actual_recorded,
			sustainability_score, saved_carbon_kg, shared, crisis_adaptations, created_at
		FROM trips WHERE id = $1
	`

	var plan domain.TripPlan
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Name,
		pq.Array(&plan.Destinations),
		&plan.StartDate,
		&plan.EndDate,
		&plan.Travelers,
		&plan.BudgetUnits,
		&plan.PredictedCarbonKg,
		&plan.CarbonStale,
		&plan.ActualCarbonKg,
		&plan.ActualRecorded,
		&plan.SustainabilityScore,
		&plan.SavedCarbonKg,
		&plan.Shared,
		&plan.CrisisAdaptations,
		&plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	components, err := r.componentsForTrip(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Components = components

	return &plan, nil
}

// GetAll retrieves all trip plans.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.TripPlan, error) {
	return r.list(ctx, `
		SELECT id, user_id, name, destinations, start_date, end_date, travelers,
			budget_units, predicted_carbon_kg, carbon_stale, actual_carbon_kg, actual_recorded,
			sustainability_score, saved_carbon_kg, shared, crisis_adaptations, created_at
		FROM trips ORDER BY created_at
	`)
}

// GetByUser retrieves all trip plans owned by a user.
func (r *TripRepository) GetByUser(ctx context.Context, userID string) ([]*domain.TripPlan, error) {
	return r.list(ctx, `
		SELECT id, user_id, name, destinations, start_date, end_date, travelers,
			budget_units, predicted_carbon_kg, carbon_stale, actual_carbon_kg, actual_recorded,
			sustainability_score, saved_carbon_kg, shared, crisis_adaptations, created_at
		FROM trips WHERE user_id = $1 ORDER BY created_at
	`, userID)
}

// Update rewrites an existing trip plan and its component list.
func (r *TripRepository) Update(ctx context.Context, plan *domain.TripPlan) error {
	query := `
		UPDATE trips
		SET name = $2, destinations = $3, start_date = $4, end_date = $5, travelers = $6,
			budget_units = $7, predicted_carbon_kg = $8, carbon_stale = $9,
			actual_carbon_kg = $10, actual_recorded = $11, sustainability_score = $12,
			saved_carbon_kg = $13, shared = $14, crisis_adaptations = $15
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query,
		plan.ID,
		plan.Name,
		pq.Array(plan.Destinations),
		plan.StartDate,
		plan.EndDate,
		plan.Travelers,
		plan.BudgetUnits,
		plan.PredictedCarbonKg,
		plan.CarbonStale,
		plan.ActualCarbonKg,
		plan.ActualRecorded,
		plan.SustainabilityScore,
		plan.SavedCarbonKg,
		plan.Shared,
		plan.CrisisAdaptations,
	)
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

	// Component list is rewritten wholesale; the plan is the unit of update.
	if _, err := r.q.ExecContext(ctx, `DELETE FROM trip_components WHERE trip_id = $1`, plan.ID); err != nil {
		return err
	}

	return r.insertComponents(ctx, plan.ID, plan.Components)
}

func (r *TripRepository) list(ctx context.Context, query string, args ...any) ([]*domain.TripPlan, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.TripPlan
	for rows.Next() {
		var plan domain.TripPlan
		if err := rows.Scan(
			&plan.ID,
			&plan.UserID,
			&plan.Name,
			pq.Array(&plan.Destinations),
			&plan.StartDate,
			&plan.EndDate,
			&plan.Travelers,
			&plan.BudgetUnits,
			&plan.PredictedCarbonKg,
			&plan.CarbonStale,
			&plan.ActualCarbonKg,
			&plan.ActualRecorded,
			&plan.SustainabilityScore,
			&plan.SavedCarbonKg,
			&plan.Shared,
			&plan.CrisisAdaptations,
			&plan.CreatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, plan := range plans {
		components, err := r.componentsForTrip(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		plan.Components = components
	}

	return plans, nil
}

func (r *TripRepository) insertComponents(ctx context.Context, tripID string, components []domain.TripComponent) error {
	query := `
		INSERT INTO trip_components (id, trip_id, leg_id, kind, name, cost_units,
			distance_km, cabin_class, nights, certifications, carbon_footprint_kg,
			mode, pinned, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	for _, c := range components {
		_, err := r.q.ExecContext(ctx, query,
			c.ID,
			tripID,
			c.LegID,
			c.Kind,
			c.Name,
			c.CostUnits,
			c.DistanceKm,
			c.Cabin,
			c.Nights,
			c.Certifications,
			c.CarbonFootprintKg,
			c.Mode,
			c.Pinned,
			c.Position,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *TripRepository) componentsForTrip(ctx context.Context, tripID string) ([]domain.TripComponent, error) {
	query := `
		SELECT id, trip_id, leg_id, kind, name, cost_units, distance_km, cabin_class,
			nights, certifications, carbon_footprint_kg, mode, pinned, position
		FROM trip_components WHERE trip_id = $1 ORDER BY position
	`

	rows, err := r.q.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []domain.TripComponent
	for rows.Next() {
		var c domain.TripComponent
		if err := rows.Scan(
			&c.ID,
			&c.TripID,
			&c.LegID,
			&c.Kind,
			&c.Name,
			&c.CostUnits,
			&c.DistanceKm,
			&c.Cabin,
			&c.Nights,
			&c.Certifications,
			&c.CarbonFootprintKg,
			&c.Mode,
			&c.Pinned,
			&c.Position,
		); err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	return components, rows.Err()
}
