package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"ecotrip/internal/carbon"
	"ecotrip/internal/domain"
	"ecotrip/internal/redis"
	"ecotrip/internal/repository"
)

// PlannerService selects itinerary components that minimize emissions under
// a budget ceiling. Selection is per leg with a proportional budget
// allocation and a slack-borrowing second pass, so a plan is always produced
// and identical inputs always yield identical selections.
type PlannerService struct {
	tripRepo            repository.TripRepository
	catalogRepo         repository.CatalogRepository
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(
	tripRepo repository.TripRepository,
	catalogRepo repository.CatalogRepository,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
) *PlannerService {
	return &PlannerService{
		tripRepo:            tripRepo,
		catalogRepo:         catalogRepo,
		lockStore:           lockStore,
		notificationService: notificationService,
	}
}

// LegRequest describes one leg a plan needs a component for.
type LegRequest struct {
	LegID       string
	Destination string
	Kind        domain.ComponentKind
}

// GeneratePlanRequest contains the constraints for building a plan.
type GeneratePlanRequest struct {
	UserID       string
	Name         string
	Destinations []string
	StartDate    time.Time
	EndDate      time.Time
	Travelers    int
	BudgetUnits  float64
	Legs         []LegRequest
}

// LegIssue reports a leg the optimizer could not serve.
type LegIssue struct {
	LegID string
	Err   error
}

// PlanResult is the outcome of plan generation or optimization. Budget
// infeasibility is never an error: the cheapest available candidate is
// selected and BudgetExceeded is set instead.
type PlanResult struct {
	Plan           *domain.TripPlan
	BudgetExceeded bool
	LegIssues      []LegIssue
}

// legPool pairs a leg with its candidate components, pre-sorted for
// deterministic selection.
type legPool struct {
	legID      string
	candidates []domain.TripComponent
}

// GeneratePlan builds a new trip plan from constraints and per-leg candidate
// pools. Legs with empty pools are reported in LegIssues; the remaining legs
// are still optimized.
func (s *PlannerService) GeneratePlan(ctx context.Context, req GeneratePlanRequest) (*PlanResult, error) {
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
	if len(req.Legs) == 0 {
		return nil, ErrNoLegs
	}

	pools := make([]legPool, 0, len(req.Legs))
	for _, leg := range req.Legs {
		candidates, err := s.catalogRepo.GetCandidates(ctx, leg.Destination, leg.Kind)
		if err != nil {
			return nil, fmt.Errorf("leg %s: %w", leg.LegID, err)
		}
		pools = append(pools, legPool{legID: leg.LegID, candidates: candidates})
	}

	selection, exceeded, issues := selectComponents(pools, req.BudgetUnits)

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

	for i, leg := range req.Legs {
		chosen, ok := selection[leg.LegID]
		if !ok {
			continue
		}
		component := chosen
		// Component ids derive from leg and catalog ids so identical inputs
		// build identical plans.
		component.ID = leg.LegID + "-" + chosen.ID
		component.TripID = plan.ID
		component.LegID = leg.LegID
		component.Position = i
		plan.Components = append(plan.Components, component)
	}

	summary := carbon.Aggregate(plan.Components)
	plan.PredictedCarbonKg = summary.TotalKg
	plan.CarbonStale = false

	if err := s.tripRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return &PlanResult{Plan: plan, BudgetExceeded: exceeded, LegIssues: issues}, nil
}

// OptimizeTrip re-runs per-leg selection for the replaceable components of
// an existing trip, preserving pinned ones.
func (s *PlannerService) OptimizeTrip(ctx context.Context, tripID string) (*PlanResult, error) {
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

	previousKg := carbon.Aggregate(plan.Components).TotalKg

	// Pinned components keep their slice of the budget; only the rest is
	// reallocated.
	budget := plan.BudgetUnits
	var pools []legPool
	replaceable := make(map[string]int) // leg id -> component index
	for i, component := range plan.Components {
		if component.Pinned {
			budget -= component.CostUnits
			continue
		}

		legID := component.LegID
		if legID == "" {
			legID = component.ID
		}

		pool, err := s.candidatesAcrossDestinations(ctx, plan, component.Kind)
		if err != nil {
			return nil, err
		}
		pools = append(pools, legPool{legID: legID, candidates: pool})
		replaceable[legID] = i
	}
	if budget < 0 {
		budget = 0
	}

	selection, exceeded, issues := selectComponents(pools, budget)

	for legID, idx := range replaceable {
		chosen, ok := selection[legID]
		if !ok {
			continue
		}
		current := plan.Components[idx]
		component := chosen
		component.ID = legID + "-" + chosen.ID
		component.TripID = plan.ID
		component.LegID = current.LegID
		component.Position = current.Position
		plan.Components[idx] = component
	}

	summary := carbon.Aggregate(plan.Components)
	plan.PredictedCarbonKg = summary.TotalKg
	plan.CarbonStale = false

	if err := s.tripRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyPlanOptimized(ctx, plan, previousKg-summary.TotalKg)
	}

	return &PlanResult{Plan: plan, BudgetExceeded: exceeded, LegIssues: issues}, nil
}

func (s *PlannerService) candidatesAcrossDestinations(ctx context.Context, plan *domain.TripPlan, kind domain.ComponentKind) ([]domain.TripComponent, error) {
	seen := make(map[string]bool)
	var pool []domain.TripComponent
	for _, destination := range plan.Destinations {
		candidates, err := s.catalogRepo.GetCandidates(ctx, destination, kind)
		if err != nil {
			return nil, fmt.Errorf("trip %s destination %s: %w", plan.ID, destination, err)
		}
		for _, c := range candidates {
			if !seen[c.ID] {
				seen[c.ID] = true
				pool = append(pool, c)
			}
		}
	}
	return pool, nil
}

// selectComponents picks one candidate per leg minimizing emissions under
// the budget:
//
//  1. allocate the budget across legs in proportion to each leg's cheapest
//     candidate,
//  2. per leg, take the lowest-emission candidate whose cost fits its share,
//  3. legs left unserved borrow the pooled slack of the others,
//  4. any leg still unserved takes its cheapest candidate regardless, and
//     the result is flagged budget-exceeded if the total ends up over.
//
// All ordering is deterministic: candidates sort by (emissions, cost, id)
// and unserved legs are revisited in input order.
func selectComponents(pools []legPool, budget float64) (map[string]domain.TripComponent, bool, []LegIssue) {
	selection := make(map[string]domain.TripComponent)
	var issues []LegIssue

	type rankedCandidate struct {
		component domain.TripComponent
		kg        float64
	}

	ranked := make(map[string][]rankedCandidate)
	minCosts := make(map[string]float64)
	totalMinCost := 0.0
	var served []legPool

	for _, pool := range pools {
		if len(pool.candidates) == 0 {
			issues = append(issues, LegIssue{
				LegID: pool.legID,
				Err:   fmt.Errorf("leg %s: %w", pool.legID, ErrNoCandidatesAvailable),
			})
			continue
		}

		candidates := make([]rankedCandidate, 0, len(pool.candidates))
		minCost := pool.candidates[0].CostUnits
		for _, c := range pool.candidates {
			candidates = append(candidates, rankedCandidate{component: c, kg: carbon.Estimate(c)})
			if c.CostUnits < minCost {
				minCost = c.CostUnits
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].kg != candidates[j].kg {
				return candidates[i].kg < candidates[j].kg
			}
			if candidates[i].component.CostUnits != candidates[j].component.CostUnits {
				return candidates[i].component.CostUnits < candidates[j].component.CostUnits
			}
			return candidates[i].component.ID < candidates[j].component.ID
		})

		ranked[pool.legID] = candidates
		minCosts[pool.legID] = minCost
		totalMinCost += minCost
		served = append(served, pool)
	}

	// Proportional allocation; equal split when every candidate is free.
	shares := make(map[string]float64)
	for _, pool := range served {
		if totalMinCost > 0 {
			shares[pool.legID] = budget * minCosts[pool.legID] / totalMinCost
		} else {
			shares[pool.legID] = budget / float64(len(served))
		}
	}

	// First pass: best emissions within each leg's own share.
	slack := 0.0
	var unserved []string
	for _, pool := range served {
		share := shares[pool.legID]
		picked := false
		for _, candidate := range ranked[pool.legID] {
			if candidate.component.CostUnits <= share {
				selection[pool.legID] = candidate.component
				slack += share - candidate.component.CostUnits
				picked = true
				break
			}
		}
		if !picked {
			unserved = append(unserved, pool.legID)
		}
	}

	// Second pass: borrow pooled slack.
	for _, legID := range unserved {
		limit := shares[legID] + slack
		for _, candidate := range ranked[legID] {
			if candidate.component.CostUnits <= limit {
				selection[legID] = candidate.component
				slack = limit - candidate.component.CostUnits - shares[legID]
				if slack < 0 {
					slack = 0
				}
				break
			}
		}
	}

	// Final fallback: cheapest candidate regardless of emissions. A plan must
	// never fail to produce a result.
	exceeded := false
	for _, legID := range unserved {
		if _, ok := selection[legID]; ok {
			continue
		}
		candidates := ranked[legID]
		cheapest := candidates[0]
		for _, candidate := range candidates[1:] {
			if candidate.component.CostUnits < cheapest.component.CostUnits ||
				(candidate.component.CostUnits == cheapest.component.CostUnits &&
					candidate.component.ID < cheapest.component.ID) {
				cheapest = candidate
			}
		}
		selection[legID] = cheapest.component
	}

	totalCost := 0.0
	for _, component := range selection {
		totalCost += component.CostUnits
	}
	if totalCost > budget {
		exceeded = true
	}

	return selection, exceeded, issues
}
