package service

import (
	"context"

	"ecotrip/internal/carbon"
	"ecotrip/internal/domain"
	"ecotrip/internal/redis"
	"ecotrip/internal/repository"
)

// Score formula parameters. Constants are tunable, the shape is not: beating
// the benchmark moves the score proportionally but no single trip can swing
// it unboundedly.
const (
	scoreBase        = 500.0
	scoreScale       = 500.0
	maxBenchmarkGain = 300.0
	badgePoints      = 10.0
	maxBadgeBonus    = 200.0
	scoreFloor       = 0.0
	scoreCeiling     = 1000.0
)

// ScoreService converts carbon aggregates, benchmarks, and badge counts into
// EcoScores.
type ScoreService struct {
	tripRepo         repository.TripRepository
	userRepo         repository.UserRepository
	benchmarkService *BenchmarkService
	cacheStore       redis.CacheStoreInterface
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	tripRepo repository.TripRepository,
	userRepo repository.UserRepository,
	benchmarkService *BenchmarkService,
	cacheStore redis.CacheStoreInterface,
) *ScoreService {
	return &ScoreService{
		tripRepo:         tripRepo,
		userRepo:         userRepo,
		benchmarkService: benchmarkService,
		cacheStore:       cacheStore,
	}
}

// ComputeScore derives an EcoScore from a trip's predicted emissions, its
// benchmark, and the owner's badge count. Pure: same inputs, same score.
func ComputeScore(predictedCarbonKg float64, benchmark *domain.Benchmark, badgeCount int) domain.EcoScore {
	score := scoreBase

	if benchmark != nil && benchmark.ReferenceCarbonKg > 0 {
		gain := (benchmark.ReferenceCarbonKg - predictedCarbonKg) / benchmark.ReferenceCarbonKg * scoreScale
		if gain > maxBenchmarkGain {
			gain = maxBenchmarkGain
		}
		score += gain
	}

	badgeBonus := badgePoints * float64(badgeCount)
	if badgeBonus > maxBadgeBonus {
		badgeBonus = maxBadgeBonus
	}
	score += badgeBonus

	if score < scoreFloor {
		score = scoreFloor
	}
	if score > scoreCeiling {
		score = scoreCeiling
	}

	result := domain.EcoScore{
		Value:      score,
		Level:      domain.LevelFor(score),
		BadgeBonus: badgeBonus,
		CarbonKg:   predictedCarbonKg,
	}
	if benchmark != nil {
		result.BenchmarkKg = benchmark.ReferenceCarbonKg
	}
	return result
}

// ScoreTrip computes the EcoScore for a stored trip plan. The carbon
// aggregate is recomputed from the component list, never trusted from the
// cached column, and the resulting score is written back to the trip and the
// owning user for leaderboard use.
func (s *ScoreService) ScoreTrip(ctx context.Context, tripID string) (*domain.EcoScore, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	plan, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	benchmark, err := s.benchmarkService.ForTrip(ctx, plan)
	if err != nil {
		return nil, err
	}

	earned, err := s.userRepo.GetEarnedBadges(ctx, plan.UserID)
	if err != nil {
		return nil, err
	}

	summary := carbon.Aggregate(plan.Components)
	score := ComputeScore(summary.TotalKg, benchmark, len(earned))

	// Persisted copies are caches for the dashboard and leaderboard; the
	// score stays recomputable from first principles.
	plan.PredictedCarbonKg = summary.TotalKg
	plan.CarbonStale = false
	plan.SustainabilityScore = score.Value
	if err := s.tripRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateEcoScore(ctx, plan.UserID, score.Value); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateLeaderboard(ctx)
	}

	return &score, nil
}
