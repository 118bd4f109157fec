package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecotrip/internal/domain"
	"ecotrip/internal/repository"
	"ecotrip/internal/service"
)

func newTripService(tripRepo *MockTripRepository, lockStore *MockLockStore, benchRepo *MockBenchmarkRepository) *service.TripService {
	benchmarkService := service.NewBenchmarkService(benchRepo, NewMockCacheStore())
	return service.NewTripService(tripRepo, benchmarkService, lockStore)
}

func validCreateRequest() service.CreateTripRequest {
	return service.CreateTripRequest{
		UserID:       "user-1",
		Name:         "Summer in Europe",
		Destinations: []string{"paris", "berlin"},
		StartDate:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
		Travelers:    2,
		BudgetUnits:  3000,
	}
}

func TestCreateTrip_ComputesCarbonUpFront(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	svc := newTripService(tripRepo, NewMockLockStore(), NewMockBenchmarkRepository())

	req := validCreateRequest()
	req.Components = []domain.TripComponent{
		{Kind: domain.KindFlight, Name: "CDG-TXL", DistanceKm: 880, Cabin: domain.CabinEconomy},
		{Kind: domain.KindHotelStay, Name: "Hotel Mitte", Nights: 7},
	}

	plan, err := svc.CreateTrip(ctx, req)
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	if plan.ID == "" {
		t.Error("expected a generated trip id")
	}
	if plan.PredictedCarbonKg <= 0 {
		t.Errorf("expected a positive carbon aggregate, got %f", plan.PredictedCarbonKg)
	}
	if plan.CarbonStale {
		t.Error("a fresh plan should not be carbon-stale")
	}
	if len(plan.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(plan.Components))
	}
	for i, c := range plan.Components {
		if c.TripID != plan.ID {
			t.Errorf("component %d not bound to the plan", i)
		}
		if c.Position != i {
			t.Errorf("component %d has position %d", i, c.Position)
		}
	}
	if tripRepo.CountTrips() != 1 {
		t.Errorf("expected 1 persisted trip, got %d", tripRepo.CountTrips())
	}
}

func TestCreateTrip_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTripService(NewMockTripRepository(), NewMockLockStore(), NewMockBenchmarkRepository())

	cases := []struct {
		name    string
		mutate  func(*service.CreateTripRequest)
		wantErr error
	}{
		{"missing user", func(r *service.CreateTripRequest) { r.UserID = "" }, service.ErrInvalidUserID},
		{"missing name", func(r *service.CreateTripRequest) { r.Name = "" }, service.ErrInvalidName},
		{"no destinations", func(r *service.CreateTripRequest) { r.Destinations = nil }, service.ErrNoDestinations},
		{"end before start", func(r *service.CreateTripRequest) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }, service.ErrInvalidDateRange},
		{"zero travelers", func(r *service.CreateTripRequest) { r.Travelers = 0 }, service.ErrInvalidTravelers},
		{"negative budget", func(r *service.CreateTripRequest) { r.BudgetUnits = -1 }, service.ErrInvalidBudget},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.CreateTrip(ctx, req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAddComponent_RefreshesAggregate(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	lockStore := NewMockLockStore()
	svc := newTripService(tripRepo, lockStore, NewMockBenchmarkRepository())

	plan, err := svc.CreateTrip(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}
	if plan.PredictedCarbonKg != 0 {
		t.Fatalf("expected empty plan to have 0 kg, got %f", plan.PredictedCarbonKg)
	}

	updated, err := svc.AddComponent(ctx, plan.ID, domain.TripComponent{
		Kind:              domain.KindActivity,
		Name:              "Jet ski rental",
		CarbonFootprintKg: 35,
	})
	if err != nil {
		t.Fatalf("failed to add component: %v", err)
	}

	if updated.PredictedCarbonKg != 35 {
		t.Errorf("expected aggregate 35 kg after the edit, got %f", updated.PredictedCarbonKg)
	}
	if updated.CarbonStale {
		t.Error("aggregate should be refreshed before the plan is returned")
	}
	if lockStore.AcquireCallCount == 0 {
		t.Error("component edits must run under the plan lock")
	}
	if lockStore.IsLocked(plan.ID) {
		t.Error("plan lock should be released after the edit")
	}
}

func TestRemoveComponent_ReindexesPositions(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	svc := newTripService(tripRepo, NewMockLockStore(), NewMockBenchmarkRepository())

	req := validCreateRequest()
	req.Components = []domain.TripComponent{
		{ID: "c-1", Kind: domain.KindActivity, CarbonFootprintKg: 10},
		{ID: "c-2", Kind: domain.KindActivity, CarbonFootprintKg: 20},
		{ID: "c-3", Kind: domain.KindActivity, CarbonFootprintKg: 30},
	}
	plan, err := svc.CreateTrip(ctx, req)
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	updated, err := svc.RemoveComponent(ctx, plan.ID, "c-2")
	if err != nil {
		t.Fatalf("failed to remove component: %v", err)
	}

	if len(updated.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(updated.Components))
	}
	if updated.Components[0].ID != "c-1" || updated.Components[1].ID != "c-3" {
		t.Errorf("unexpected component order: %s, %s", updated.Components[0].ID, updated.Components[1].ID)
	}
	if updated.Components[1].Position != 1 {
		t.Errorf("expected position to be reindexed to 1, got %d", updated.Components[1].Position)
	}
	if updated.PredictedCarbonKg != 40 {
		t.Errorf("expected aggregate 40 kg, got %f", updated.PredictedCarbonKg)
	}
}

func TestReplaceComponent_KeepsPosition(t *testing.T) {
	ctx := context.Background()
	svc := newTripService(NewMockTripRepository(), NewMockLockStore(), NewMockBenchmarkRepository())

	req := validCreateRequest()
	req.Components = []domain.TripComponent{
		{ID: "c-1", Kind: domain.KindActivity, CarbonFootprintKg: 10},
		{ID: "c-2", Kind: domain.KindActivity, CarbonFootprintKg: 20},
	}
	plan, err := svc.CreateTrip(ctx, req)
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	updated, err := svc.ReplaceComponent(ctx, plan.ID, "c-1", domain.TripComponent{
		ID:   "c-1b",
		Kind: domain.KindGroundTransport, DistanceKm: 100, Mode: domain.ModeRail,
	})
	if err != nil {
		t.Fatalf("failed to replace component: %v", err)
	}

	if updated.Components[0].ID != "c-1b" {
		t.Errorf("expected replacement at position 0, got %s", updated.Components[0].ID)
	}
	if updated.Components[0].Position != 0 {
		t.Errorf("replacement should keep position 0, got %d", updated.Components[0].Position)
	}

	_, err = svc.ReplaceComponent(ctx, plan.ID, "no-such-component", domain.TripComponent{Kind: domain.KindActivity})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected not found for a missing component, got %v", err)
	}
}

func TestMutate_RejectedWhenPlanLocked(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	lockStore := NewMockLockStore()
	lockStore.ForceAcquireFailure = true
	svc := newTripService(tripRepo, lockStore, NewMockBenchmarkRepository())

	tripRepo.AddTrip(&domain.TripPlan{ID: "trip-1", UserID: "user-1"})

	_, err := svc.AddComponent(ctx, "trip-1", domain.TripComponent{Kind: domain.KindActivity})
	if !errors.Is(err, service.ErrPlanLocked) {
		t.Errorf("expected ErrPlanLocked, got %v", err)
	}
}

func TestGetTrip_RefreshesStaleAggregate(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	svc := newTripService(tripRepo, NewMockLockStore(), NewMockBenchmarkRepository())

	// Seed a plan whose cached aggregate is stale and wrong.
	tripRepo.AddTrip(&domain.TripPlan{
		ID:     "trip-stale",
		UserID: "user-1",
		Components: []domain.TripComponent{
			{ID: "c-1", Kind: domain.KindActivity, CarbonFootprintKg: 75},
		},
		PredictedCarbonKg: 9999,
		CarbonStale:       true,
	})

	plan, err := svc.GetTrip(ctx, "trip-stale")
	if err != nil {
		t.Fatalf("failed to get trip: %v", err)
	}

	if plan.PredictedCarbonKg != 75 {
		t.Errorf("expected refreshed aggregate 75 kg, got %f", plan.PredictedCarbonKg)
	}
	if plan.CarbonStale {
		t.Error("aggregate should no longer be stale after the read")
	}

	// The refresh is written back.
	stored := tripRepo.GetTrip("trip-stale")
	if stored.CarbonStale || stored.PredictedCarbonKg != 75 {
		t.Errorf("refresh not persisted: stale=%v kg=%f", stored.CarbonStale, stored.PredictedCarbonKg)
	}
}

func TestRecordActual_FixesSavedCarbon(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	benchRepo := NewMockBenchmarkRepository()
	benchRepo.SetGlobal(&domain.Benchmark{
		Signature:         domain.BenchmarkSignature{Region: domain.RegionGlobal},
		ReferenceCarbonKg: 1000,
	})
	svc := newTripService(tripRepo, NewMockLockStore(), benchRepo)

	req := validCreateRequest()
	req.Components = []domain.TripComponent{
		{ID: "c-1", Kind: domain.KindActivity, CarbonFootprintKg: 500},
	}
	plan, err := svc.CreateTrip(ctx, req)
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	updated, err := svc.RecordActual(ctx, plan.ID, 600)
	if err != nil {
		t.Fatalf("failed to record actual: %v", err)
	}

	if !updated.ActualRecorded {
		t.Error("expected the actual figure to be marked recorded")
	}
	if updated.ActualCarbonKg != 600 {
		t.Errorf("expected actual 600 kg, got %f", updated.ActualCarbonKg)
	}
	if updated.SavedCarbonKg != 400 {
		t.Errorf("expected 400 kg saved versus the 1000 kg reference, got %f", updated.SavedCarbonKg)
	}

	// Exceeding the reference never goes negative.
	worse, err := svc.RecordActual(ctx, plan.ID, 1500)
	if err != nil {
		t.Fatalf("failed to record actual: %v", err)
	}
	if worse.SavedCarbonKg != 0 {
		t.Errorf("expected saved carbon to clamp at 0, got %f", worse.SavedCarbonKg)
	}
}

func TestRecordActual_RejectsNegative(t *testing.T) {
	ctx := context.Background()
	svc := newTripService(NewMockTripRepository(), NewMockLockStore(), NewMockBenchmarkRepository())

	_, err := svc.RecordActual(ctx, "trip-1", -5)
	if !errors.Is(err, service.ErrInvalidActualCarbon) {
		t.Errorf("expected ErrInvalidActualCarbon, got %v", err)
	}
}

func TestCompare_RequiresRecordedActual(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	benchRepo := NewMockBenchmarkRepository()
	benchRepo.SetGlobal(&domain.Benchmark{
		Signature:         domain.BenchmarkSignature{Region: domain.RegionGlobal},
		ReferenceCarbonKg: 1000,
	})
	svc := newTripService(tripRepo, NewMockLockStore(), benchRepo)

	req := validCreateRequest()
	req.Components = []domain.TripComponent{
		{ID: "c-1", Kind: domain.KindActivity, CarbonFootprintKg: 500},
	}
	plan, err := svc.CreateTrip(ctx, req)
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	// No actual yet.
	if _, err := svc.Compare(ctx, plan.ID); !errors.Is(err, service.ErrActualNotRecorded) {
		t.Errorf("expected ErrActualNotRecorded, got %v", err)
	}

	// 510 against a 500 prediction sits on the edge of the equality band.
	if _, err := svc.RecordActual(ctx, plan.ID, 510); err != nil {
		t.Fatalf("failed to record actual: %v", err)
	}

	cmp, err := svc.Compare(ctx, plan.ID)
	if err != nil {
		t.Fatalf("failed to compare: %v", err)
	}
	if cmp.Comparison != domain.ComparisonEqual {
		t.Errorf("expected EQUAL within the band, got %s", cmp.Comparison)
	}
}

func TestCalculateCarbon_RejectsKindlessComponents(t *testing.T) {
	svc := newTripService(NewMockTripRepository(), NewMockLockStore(), NewMockBenchmarkRepository())

	_, err := svc.CalculateCarbon([]domain.TripComponent{{Name: "mystery"}})
	if !errors.Is(err, service.ErrInvalidComponent) {
		t.Errorf("expected ErrInvalidComponent, got %v", err)
	}

	summary, err := svc.CalculateCarbon([]domain.TripComponent{
		{Kind: domain.KindGroundTransport, DistanceKm: 200, Mode: domain.ModeBus},
	})
	if err != nil {
		t.Fatalf("failed to calculate carbon: %v", err)
	}
	if summary.TotalKg <= 0 {
		t.Errorf("expected a positive total, got %f", summary.TotalKg)
	}
}
