package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecotrip/internal/carbon"
	"ecotrip/internal/domain"
	"ecotrip/internal/redis"
	"ecotrip/internal/repository"
)

// planLockTTL bounds how long a plan mutation can hold the single-writer
// lock before it expires on its own.
const planLockTTL = 10 * time.Second

// TripService owns trip plan lifecycle: creation, component edits with
// carbon-cache invalidation, lazy aggregate refresh, predicted-vs-actual
// comparison, and post-trip actual recording.
type TripService struct {
	tripRepo         repository.TripRepository
	benchmarkService *BenchmarkService
	lockStore        redis.LockStoreInterface
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo repository.TripRepository,
	benchmarkService *BenchmarkService,
	lockStore redis.LockStoreInterface,
) *TripService {
	return &TripService{
		tripRepo:         tripRepo,
		benchmarkService: benchmarkService,
		lockStore:        lockStore,
	}
}

// CreateTripRequest contains the parameters for creating a trip plan.
type CreateTripRequest struct {
	UserID       string
	Name         string
	Destinations []string
	StartDate    time.Time
	EndDate      time.Time
	Travelers    int
	BudgetUnits  float64
	Components   []domain.TripComponent
}

// CreateTrip validates and persists a new trip plan. The carbon aggregate is
// computed up front so the plan starts fresh.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.TripPlan, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Name == "" {
		return nil, ErrInvalidName
	}
	if len(req.Destinations) == 0 {
		return nil, ErrNoDestinations
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Travelers < 1 {
		return nil, ErrInvalidTravelers
	}
	if req.BudgetUnits < 0 {
		return nil, ErrInvalidBudget
	}

	plan := &domain.TripPlan{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		Name:         req.Name,
		Destinations: req.Destinations,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Travelers:    req.Travelers,
		BudgetUnits:  req.BudgetUnits,
		CreatedAt:    time.Now(),
	}

	for i, c := range req.Components {
		if c.Kind == "" {
			return nil, fmt.Errorf("component %d: %w", i, ErrInvalidComponent)
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.TripID = plan.ID
		c.Position = i
		plan.Components = append(plan.Components, c)
	}

	summary := carbon.Aggregate(plan.Components)
	plan.PredictedCarbonKg = summary.TotalKg
	plan.CarbonStale = false

	if err := s.tripRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// GetTrip retrieves a trip plan, refreshing its carbon aggregate if a prior
// edit left it stale.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	plan, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.refreshCarbon(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// GetAllTrips retrieves all trip plans.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.TripPlan, error) {
	return s.tripRepo.GetAll(ctx)
}

// CalculateCarbon aggregates an arbitrary component list. Components with
// malformed numeric fields contribute conservative estimates, never errors.
func (s *TripService) CalculateCarbon(components []domain.TripComponent) (domain.CarbonSummary, error) {
	for i, c := range components {
		if c.Kind == "" {
			return domain.CarbonSummary{}, fmt.Errorf("component %d: %w", i, ErrInvalidComponent)
		}
	}
	return carbon.Aggregate(components), nil
}

// TripCarbon returns the (fresh) carbon summary for a stored trip.
func (s *TripService) TripCarbon(ctx context.Context, tripID string) (*domain.TripPlan, domain.CarbonSummary, error) {
	plan, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, domain.CarbonSummary{}, err
	}
	return plan, carbon.Aggregate(plan.Components), nil
}

// AddComponent appends a component to a trip plan.
func (s *TripService) AddComponent(ctx context.Context, tripID string, component domain.TripComponent) (*domain.TripPlan, error) {
	if component.Kind == "" {
		return nil, ErrInvalidComponent
	}

	return s.mutate(ctx, tripID, func(plan *domain.TripPlan) error {
		if component.ID == "" {
			component.ID = uuid.New().String()
		}
		component.TripID = plan.ID
		component.Position = len(plan.Components)
		plan.Components = append(plan.Components, component)
		return nil
	})
}

// ReplaceComponent swaps a component in place, keeping its position.
func (s *TripService) ReplaceComponent(ctx context.Context, tripID, componentID string, replacement domain.TripComponent) (*domain.TripPlan, error) {
	if componentID == "" {
		return nil, ErrInvalidComponentID
	}
	if replacement.Kind == "" {
		return nil, ErrInvalidComponent
	}

	return s.mutate(ctx, tripID, func(plan *domain.TripPlan) error {
		existing := plan.ComponentByID(componentID)
		if existing == nil {
			return fmt.Errorf("trip %s component %s: %w", tripID, componentID, repository.ErrNotFound)
		}
		if replacement.ID == "" {
			replacement.ID = uuid.New().String()
		}
		replacement.TripID = plan.ID
		replacement.LegID = existing.LegID
		replacement.Position = existing.Position
		*existing = replacement
		return nil
	})
}

// RemoveComponent deletes a component from a trip plan.
func (s *TripService) RemoveComponent(ctx context.Context, tripID, componentID string) (*domain.TripPlan, error) {
	if componentID == "" {
		return nil, ErrInvalidComponentID
	}

	return s.mutate(ctx, tripID, func(plan *domain.TripPlan) error {
		for i := range plan.Components {
			if plan.Components[i].ID == componentID {
				plan.Components = append(plan.Components[:i], plan.Components[i+1:]...)
				for j := range plan.Components {
					plan.Components[j].Position = j
				}
				return nil
			}
		}
		return fmt.Errorf("trip %s component %s: %w", tripID, componentID, repository.ErrNotFound)
	})
}

// RecordActual stores post-trip tracked emissions and fixes the carbon-saved
// figure used by badge criteria.
func (s *TripService) RecordActual(ctx context.Context, tripID string, actualKg float64) (*domain.TripPlan, error) {
	if actualKg < 0 {
		return nil, ErrInvalidActualCarbon
	}

	return s.mutate(ctx, tripID, func(plan *domain.TripPlan) error {
		benchmark, err := s.benchmarkService.ForTrip(ctx, plan)
		if err != nil {
			return err
		}

		plan.ActualCarbonKg = actualKg
		plan.ActualRecorded = true

		saved := benchmark.ReferenceCarbonKg - actualKg
		if saved < 0 {
			saved = 0
		}
		plan.SavedCarbonKg = saved
		return nil
	})
}

// Compare returns the predicted-vs-actual comparison for a completed trip.
func (s *TripService) Compare(ctx context.Context, tripID string) (*domain.CarbonComparison, error) {
	plan, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !plan.ActualRecorded {
		return nil, fmt.Errorf("trip %s: %w", tripID, ErrActualNotRecorded)
	}

	cmp := carbon.Compare(plan.PredictedCarbonKg, plan.ActualCarbonKg)
	return &cmp, nil
}

// mutate runs an edit under the plan's single-writer lock, invalidates the
// cached aggregate, and lazily refreshes it before returning.
func (s *TripService) mutate(ctx context.Context, tripID string, edit func(*domain.TripPlan) error) (*domain.TripPlan, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquirePlanLock(ctx, tripID, planLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, fmt.Errorf("trip %s: %w", tripID, ErrPlanLocked)
		}
		defer func() { _ = s.lockStore.ReleasePlanLock(ctx, tripID) }()
	}

	plan, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := edit(plan); err != nil {
		return nil, err
	}

	// Any edit invalidates the cached aggregate; refresh recomputes it from
	// the component list before the plan is written back.
	plan.CarbonStale = true
	summary := carbon.Aggregate(plan.Components)
	plan.PredictedCarbonKg = summary.TotalKg
	plan.CarbonStale = false

	if err := s.tripRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// refreshCarbon recomputes a stale cached aggregate on read.
func (s *TripService) refreshCarbon(ctx context.Context, plan *domain.TripPlan) error {
	if !plan.CarbonStale {
		return nil
	}

	summary := carbon.Aggregate(plan.Components)
	plan.PredictedCarbonKg = summary.TotalKg
	plan.CarbonStale = false

	return s.tripRepo.Update(ctx, plan)
}
