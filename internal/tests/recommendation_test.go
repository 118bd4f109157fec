package tests

import (
	"context"
	"testing"

	"ecotrip/internal/domain"
	"ecotrip/internal/service"
)

func newRecommendationService(tripRepo *MockTripRepository, catalogRepo *MockCatalogRepository) *service.RecommendationService {
	return service.NewRecommendationService(tripRepo, catalogRepo, service.DefaultRecommendationConfig())
}

func seedCarTrip(tripRepo *MockTripRepository) {
	tripRepo.AddTrip(&domain.TripPlan{
		ID:           "trip-1",
		UserID:       "user-1",
		Destinations: []string{"paris"},
		Components: []domain.TripComponent{
			// 400 km by car: 68 kg.
			{ID: "comp-car", Kind: domain.KindGroundTransport, Name: "Rental car", CostUnits: 100, DistanceKm: 400, Mode: domain.ModeCar},
		},
	})
}

func TestRecommendations_SuggestsCheaperCleanerAlternative(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	catalogRepo := NewMockCatalogRepository()
	svc := newRecommendationService(tripRepo, catalogRepo)

	seedCarTrip(tripRepo)
	catalogRepo.SetCandidates("paris", domain.KindGroundTransport, []domain.TripComponent{
		// 400 km by rail: 14 kg, an 80% reduction, within the cost tolerance.
		{ID: "cat-train", Kind: domain.KindGroundTransport, Name: "TGV", CostUnits: 110, DistanceKm: 400, Mode: domain.ModeRail},
	})

	recs, err := svc.ForTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("failed to generate recommendations: %v", err)
	}

	var alternative *domain.Recommendation
	for i := range recs {
		if recs[i].Type == domain.RecommendationAlternative {
			alternative = &recs[i]
			break
		}
	}
	if alternative == nil {
		t.Fatal("expected an alternative recommendation")
	}
	if alternative.AlternativeComponentID != "cat-train" {
		t.Errorf("expected the rail candidate, got %s", alternative.AlternativeComponentID)
	}
	if alternative.AppliesToComponentID != "comp-car" {
		t.Errorf("expected the alternative to target the car, got %s", alternative.AppliesToComponentID)
	}
	if alternative.CarbonReductionKg <= 0 {
		t.Errorf("expected a positive reduction, got %f", alternative.CarbonReductionKg)
	}
	if alternative.CostDeltaUnits != 10 {
		t.Errorf("expected a 10 unit cost delta, got %f", alternative.CostDeltaUnits)
	}
}

func TestRecommendations_FiltersWeakAndExpensiveAlternatives(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	catalogRepo := NewMockCatalogRepository()
	svc := newRecommendationService(tripRepo, catalogRepo)

	seedCarTrip(tripRepo)
	catalogRepo.SetCandidates("paris", domain.KindGroundTransport, []domain.TripComponent{
		// Barely cleaner: 380 km by car is a 5% reduction, below the 10% bar.
		{ID: "cat-short-car", Kind: domain.KindGroundTransport, Name: "Shorter route", CostUnits: 90, DistanceKm: 380, Mode: domain.ModeCar},
		// Clean but far over the 25% cost tolerance.
		{ID: "cat-gold-train", Kind: domain.KindGroundTransport, Name: "Luxury rail", CostUnits: 300, DistanceKm: 400, Mode: domain.ModeRail},
	})

	recs, err := svc.ForTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("failed to generate recommendations: %v", err)
	}

	for _, rec := range recs {
		if rec.Type == domain.RecommendationAlternative {
			t.Errorf("expected no alternatives, got one for %s", rec.AlternativeComponentID)
		}
	}
}

func TestRecommendations_AlternativesRankedByReduction(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	catalogRepo := NewMockCatalogRepository()
	svc := newRecommendationService(tripRepo, catalogRepo)

	seedCarTrip(tripRepo)
	catalogRepo.SetCandidates("paris", domain.KindGroundTransport, []domain.TripComponent{
		{ID: "cat-bus", Kind: domain.KindGroundTransport, Name: "Coach", CostUnits: 60, DistanceKm: 400, Mode: domain.ModeBus},
		{ID: "cat-train", Kind: domain.KindGroundTransport, Name: "TGV", CostUnits: 110, DistanceKm: 400, Mode: domain.ModeRail},
	})

	recs, err := svc.ForTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("failed to generate recommendations: %v", err)
	}

	var alternatives []domain.Recommendation
	for _, rec := range recs {
		if rec.Type == domain.RecommendationAlternative {
			alternatives = append(alternatives, rec)
		}
	}
	if len(alternatives) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(alternatives))
	}
	// Rail saves more than bus, so it ranks first; reductions never increase
	// down the list.
	if alternatives[0].AlternativeComponentID != "cat-train" {
		t.Errorf("expected the biggest reduction first, got %s", alternatives[0].AlternativeComponentID)
	}
	for i := 1; i < len(alternatives); i++ {
		if alternatives[i].CarbonReductionKg > alternatives[i-1].CarbonReductionKg {
			t.Errorf("reductions out of order at %d: %f > %f",
				i, alternatives[i].CarbonReductionKg, alternatives[i-1].CarbonReductionKg)
		}
	}
}

func TestRecommendations_OneTipPerPresentCategory(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	catalogRepo := NewMockCatalogRepository()
	svc := newRecommendationService(tripRepo, catalogRepo)

	tripRepo.AddTrip(&domain.TripPlan{
		ID:           "trip-1",
		UserID:       "user-1",
		Destinations: []string{"paris"},
		Components: []domain.TripComponent{
			{ID: "c-flight", Kind: domain.KindFlight, DistanceKm: 900, Cabin: domain.CabinEconomy},
			{ID: "c-hotel", Kind: domain.KindHotelStay, Nights: 3},
			{ID: "c-hotel-2", Kind: domain.KindHotelStay, Nights: 2},
		},
	})

	recs, err := svc.ForTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("failed to generate recommendations: %v", err)
	}

	tipsByCategory := map[domain.Category]int{}
	for _, rec := range recs {
		if rec.Type == domain.RecommendationTip {
			tipsByCategory[rec.Category]++
		}
	}

	// One tip each for flights and accommodation, despite two hotel stays.
	if tipsByCategory[domain.CategoryFlights] != 1 {
		t.Errorf("expected 1 flights tip, got %d", tipsByCategory[domain.CategoryFlights])
	}
	if tipsByCategory[domain.CategoryAccommodation] != 1 {
		t.Errorf("expected 1 accommodation tip, got %d", tipsByCategory[domain.CategoryAccommodation])
	}
	if tipsByCategory[domain.CategoryActivities] != 0 {
		t.Errorf("expected no activities tip, got %d", tipsByCategory[domain.CategoryActivities])
	}
}

func TestRecommendations_WarnsOnHighImpactComponent(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	catalogRepo := NewMockCatalogRepository()
	svc := newRecommendationService(tripRepo, catalogRepo)

	tripRepo.AddTrip(&domain.TripPlan{
		ID:           "trip-1",
		UserID:       "user-1",
		Destinations: []string{"tokyo"},
		Components: []domain.TripComponent{
			// Long-haul first class: well over the 500 kg flight threshold.
			{ID: "c-flight", Kind: domain.KindFlight, Name: "Tokyo first class", DistanceKm: 9700, Cabin: domain.CabinFirst},
			// Modest hotel stay, below its threshold.
			{ID: "c-hotel", Kind: domain.KindHotelStay, Name: "Ryokan", Nights: 3},
		},
	})

	recs, err := svc.ForTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("failed to generate recommendations: %v", err)
	}

	var warnings []domain.Recommendation
	for _, rec := range recs {
		if rec.Type == domain.RecommendationWarning {
			warnings = append(warnings, rec)
		}
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].AppliesToComponentID != "c-flight" {
		t.Errorf("expected the warning on the flight, got %s", warnings[0].AppliesToComponentID)
	}
	if warnings[0].Impact != domain.ImpactHigh {
		t.Errorf("expected high impact, got %s", warnings[0].Impact)
	}
}
