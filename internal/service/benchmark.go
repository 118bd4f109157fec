package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"ecotrip/internal/domain"
	"ecotrip/internal/redis"
	"ecotrip/internal/repository"
)

// Signature bucketing parameters. Trips of roughly the same shape share a
// signature so benchmark rows stay coarse.
const (
	durationBucketDays = 3
	maxTravelerBucket  = 6
)

// destinationRegions maps known destination names to a coarse region class.
// Refreshed together with the benchmark rows; unknown destinations are
// treated as intercontinental so the comparison baseline is never too easy.
var destinationRegions = map[string]domain.RegionClass{
	"paris":     domain.RegionContinental,
	"berlin":    domain.RegionContinental,
	"rome":      domain.RegionContinental,
	"madrid":    domain.RegionContinental,
	"amsterdam": domain.RegionContinental,
	"lisbon":    domain.RegionContinental,
	"london":    domain.RegionContinental,
	"local":     domain.RegionDomestic,
	"domestic":  domain.RegionDomestic,
	"tokyo":     domain.RegionIntercontinental,
	"new york":  domain.RegionIntercontinental,
	"sydney":    domain.RegionIntercontinental,
	"bangkok":   domain.RegionIntercontinental,
	"nairobi":   domain.RegionIntercontinental,
	"rio":       domain.RegionIntercontinental,
}

// regionRank orders region classes from narrowest to widest; a trip's class
// is the widest class among its destinations.
var regionRank = map[domain.RegionClass]int{
	domain.RegionDomestic:         0,
	domain.RegionContinental:      1,
	domain.RegionIntercontinental: 2,
}

// BenchmarkService resolves reference emissions figures for trip shapes.
// Lookups go through the Redis cache first, then Postgres, then the global
// average fallback, so scoring and optimization always have a comparison
// point.
type BenchmarkService struct {
	benchmarkRepo repository.BenchmarkRepository
	cacheStore    redis.CacheStoreInterface
}

// NewBenchmarkService creates a new BenchmarkService.
func NewBenchmarkService(benchmarkRepo repository.BenchmarkRepository, cacheStore redis.CacheStoreInterface) *BenchmarkService {
	return &BenchmarkService{
		benchmarkRepo: benchmarkRepo,
		cacheStore:    cacheStore,
	}
}

// Signature canonicalizes trip parameters into a benchmark key: duration
// rounded to the nearest 3-day bucket, traveler count capped at 6, and the
// destination set mapped to its widest region class.
func Signature(destinations []string, durationDays, travelers int) domain.BenchmarkSignature {
	bucket := int(math.Round(float64(durationDays)/durationBucketDays)) * durationBucketDays
	if bucket < durationBucketDays {
		bucket = durationBucketDays
	}

	if travelers < 1 {
		travelers = 1
	}
	if travelers > maxTravelerBucket {
		travelers = maxTravelerBucket
	}

	return domain.BenchmarkSignature{
		Region:       classifyRegion(destinations),
		DurationDays: bucket,
		Travelers:    travelers,
	}
}

func classifyRegion(destinations []string) domain.RegionClass {
	widest := domain.RegionDomestic
	for _, dest := range destinations {
		region, ok := destinationRegions[strings.ToLower(strings.TrimSpace(dest))]
		if !ok {
			region = domain.RegionIntercontinental
		}
		if regionRank[region] > regionRank[widest] {
			widest = region
		}
	}
	return widest
}

// Lookup resolves a benchmark for a signature. A novel signature falls back
// to the global average; ErrBenchmarkUnavailable only occurs when even the
// fallback row is missing.
func (s *BenchmarkService) Lookup(ctx context.Context, sig domain.BenchmarkSignature) (*domain.Benchmark, error) {
	// Cache errors degrade to a DB read; they never fail the lookup.
	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetBenchmark(ctx, sig); err == nil && cached != nil {
			return cached, nil
		}
	}

	benchmark, err := s.benchmarkRepo.GetBySignature(ctx, sig)
	if errors.Is(err, repository.ErrNotFound) {
		benchmark, err = s.benchmarkRepo.GetGlobal(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("signature %s/%dd/%dp: %w", sig.Region, sig.DurationDays, sig.Travelers, ErrBenchmarkUnavailable)
		}
	}
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetBenchmark(ctx, sig, benchmark)
	}

	return benchmark, nil
}

// ForTrip resolves the benchmark for an existing trip plan.
func (s *BenchmarkService) ForTrip(ctx context.Context, plan *domain.TripPlan) (*domain.Benchmark, error) {
	sig := Signature(plan.Destinations, plan.DurationDays(), plan.Travelers)
	return s.Lookup(ctx, sig)
}
