package tests

import (
	"context"
	"testing"
	"time"

	"ecotrip/internal/domain"
	"ecotrip/internal/service"
)

func TestComputeScore_BenchmarkGainAndBadgeBonus(t *testing.T) {
	// 800 kg predicted against a 1000 kg reference with 2 badges:
	// 500 + (200/1000)*500 + 10*2 = 620.
	benchmark := &domain.Benchmark{ReferenceCarbonKg: 1000}

	score := service.ComputeScore(800, benchmark, 2)

	if score.Value != 620 {
		t.Errorf("expected score 620, got %f", score.Value)
	}
	if score.Level != "Eco Champion" {
		t.Errorf("expected Eco Champion, got %s", score.Level)
	}
	if score.BadgeBonus != 20 {
		t.Errorf("expected badge bonus 20, got %f", score.BadgeBonus)
	}
	if score.BenchmarkKg != 1000 {
		t.Errorf("expected benchmark 1000 kg, got %f", score.BenchmarkKg)
	}
}

func TestComputeScore_BenchmarkGainCapped(t *testing.T) {
	// A near-zero trip against a huge reference would earn 500 gain uncapped;
	// the benchmark component caps at 300.
	benchmark := &domain.Benchmark{ReferenceCarbonKg: 10000}

	score := service.ComputeScore(1, benchmark, 0)

	if score.Value != 800 {
		t.Errorf("expected 500 base + 300 capped gain = 800, got %f", score.Value)
	}
}

func TestComputeScore_BadgeBonusCapped(t *testing.T) {
	// 50 badges would be 500 points uncapped; the bonus caps at 200.
	score := service.ComputeScore(1000, &domain.Benchmark{ReferenceCarbonKg: 1000}, 50)

	if score.BadgeBonus != 200 {
		t.Errorf("expected badge bonus capped at 200, got %f", score.BadgeBonus)
	}
	if score.Value != 700 {
		t.Errorf("expected 500 + 0 + 200 = 700, got %f", score.Value)
	}
}

func TestComputeScore_ClampedToRange(t *testing.T) {
	// Emissions far above the reference drive the score down, but never below 0.
	low := service.ComputeScore(100000, &domain.Benchmark{ReferenceCarbonKg: 100}, 0)
	if low.Value < 0 {
		t.Errorf("score below floor: %f", low.Value)
	}
	if low.Value > 1000 {
		t.Errorf("score above ceiling: %f", low.Value)
	}
}

func TestComputeScore_MonotoneInCarbon(t *testing.T) {
	// More emissions never raise the score.
	benchmark := &domain.Benchmark{ReferenceCarbonKg: 1000}
	previous := service.ComputeScore(0, benchmark, 0).Value
	for kg := 100.0; kg <= 3000; kg += 100 {
		current := service.ComputeScore(kg, benchmark, 0).Value
		if current > previous {
			t.Errorf("score increased from %f to %f when emissions rose to %f kg", previous, current, kg)
		}
		previous = current
	}
}

func TestComputeScore_NoBenchmark(t *testing.T) {
	// Without a benchmark only the base and badge bonus apply.
	score := service.ComputeScore(500, nil, 3)

	if score.Value != 530 {
		t.Errorf("expected 500 + 30 = 530, got %f", score.Value)
	}
	if score.BenchmarkKg != 0 {
		t.Errorf("expected no benchmark figure, got %f", score.BenchmarkKg)
	}
}

func TestLevelFor_TierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		level string
	}{
		{1000, "Eco Legend"},
		{900, "Eco Legend"},
		{899, "Eco Hero"},
		{800, "Eco Hero"},
		{600, "Eco Champion"},
		{400, "Eco Friendly"},
		{200, "Eco Aware"},
		{0, "Eco Novice"},
	}

	for _, tc := range cases {
		if got := domain.LevelFor(tc.score); got != tc.level {
			t.Errorf("score %f: expected %s, got %s", tc.score, tc.level, got)
		}
	}
}

func TestScoreTrip_PersistsAndInvalidatesLeaderboard(t *testing.T) {
	ctx := context.Background()
	tripRepo := NewMockTripRepository()
	userRepo := NewMockUserRepository()
	benchRepo := NewMockBenchmarkRepository()
	cacheStore := NewMockCacheStore()

	benchRepo.SetGlobal(&domain.Benchmark{
		Signature:         domain.BenchmarkSignature{Region: domain.RegionGlobal},
		ReferenceCarbonKg: 1000,
	})

	userRepo.AddUser(&domain.User{ID: "user-1", Name: "Ada", CreatedAt: time.Now()})
	userRepo.SetEarnedBadges("user-1", []string{"first-steps", "storm-rider"})

	// Cached column is deliberately wrong; scoring must recompute from the
	// component list.
	tripRepo.AddTrip(&domain.TripPlan{
		ID:     "trip-1",
		UserID: "user-1",
		Destinations: []string{"paris"},
		StartDate:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
		Travelers:    2,
		Components: []domain.TripComponent{
			{ID: "c-1", Kind: domain.KindActivity, CarbonFootprintKg: 800},
		},
		PredictedCarbonKg: 12345,
		CarbonStale:       true,
	})

	benchmarkService := service.NewBenchmarkService(benchRepo, cacheStore)
	svc := service.NewScoreService(tripRepo, userRepo, benchmarkService, cacheStore)

	score, err := svc.ScoreTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("failed to score trip: %v", err)
	}

	// 500 + (200/1000)*500 + 10*2 = 620.
	if score.Value != 620 {
		t.Errorf("expected score 620, got %f", score.Value)
	}
	if score.CarbonKg != 800 {
		t.Errorf("expected the recomputed 800 kg aggregate, got %f", score.CarbonKg)
	}

	stored := tripRepo.GetTrip("trip-1")
	if stored.SustainabilityScore != 620 {
		t.Errorf("score not written back to the trip: %f", stored.SustainabilityScore)
	}
	if stored.PredictedCarbonKg != 800 || stored.CarbonStale {
		t.Errorf("aggregate not refreshed on the trip: kg=%f stale=%v", stored.PredictedCarbonKg, stored.CarbonStale)
	}

	user := userRepo.GetUser("user-1")
	if user.EcoScore != 620 {
		t.Errorf("score not written to the user: %f", user.EcoScore)
	}
	if cacheStore.InvalidateLeaderboardCallCount == 0 {
		t.Error("scoring should invalidate the leaderboard cache")
	}
}
