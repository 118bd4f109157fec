package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecotrip/internal/domain"
	"ecotrip/internal/service"
)

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSignature_DurationBucketing(t *testing.T) {
	cases := []struct {
		days   int
		bucket int
	}{
		{1, 3},  // rounds below the minimum bucket
		{2, 3},  // rounds to 3
		{3, 3},  // exact
		{4, 3},  // rounds down
		{5, 6},  // rounds up
		{7, 6},  // rounds down to 6
		{8, 9},  // rounds up to 9
		{14, 15},
	}

	for _, tc := range cases {
		sig := service.Signature([]string{"paris"}, tc.days, 2)
		if sig.DurationDays != tc.bucket {
			t.Errorf("%d days: expected bucket %d, got %d", tc.days, tc.bucket, sig.DurationDays)
		}
	}
}

func TestSignature_TravelerClamping(t *testing.T) {
	cases := []struct {
		travelers int
		want      int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{6, 6},
		{7, 6},
		{40, 6},
	}

	for _, tc := range cases {
		sig := service.Signature([]string{"paris"}, 6, tc.travelers)
		if sig.Travelers != tc.want {
			t.Errorf("%d travelers: expected %d, got %d", tc.travelers, tc.want, sig.Travelers)
		}
	}
}

func TestSignature_RegionClassification(t *testing.T) {
	cases := []struct {
		name         string
		destinations []string
		want         domain.RegionClass
	}{
		{"domestic only", []string{"local"}, domain.RegionDomestic},
		{"continental", []string{"paris", "berlin"}, domain.RegionContinental},
		{"widest class wins", []string{"paris", "tokyo"}, domain.RegionIntercontinental},
		{"unknown destination is conservative", []string{"atlantis"}, domain.RegionIntercontinental},
		{"case and whitespace insensitive", []string{"  Paris "}, domain.RegionContinental},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := service.Signature(tc.destinations, 6, 2)
			if sig.Region != tc.want {
				t.Errorf("expected %s, got %s", tc.want, sig.Region)
			}
		})
	}
}

func TestLookup_ExactSignatureHit(t *testing.T) {
	ctx := context.Background()
	benchRepo := NewMockBenchmarkRepository()
	cacheStore := NewMockCacheStore()
	svc := service.NewBenchmarkService(benchRepo, cacheStore)

	sig := domain.BenchmarkSignature{Region: domain.RegionContinental, DurationDays: 6, Travelers: 2}
	benchRepo.AddBenchmark(&domain.Benchmark{Signature: sig, ReferenceCarbonKg: 850})

	benchmark, err := svc.Lookup(ctx, sig)
	if err != nil {
		t.Fatalf("failed to look up benchmark: %v", err)
	}
	if benchmark.ReferenceCarbonKg != 850 {
		t.Errorf("expected 850 kg reference, got %f", benchmark.ReferenceCarbonKg)
	}

	// The resolved row is cached under the requested signature.
	if !cacheStore.HasCachedBenchmark(sig) {
		t.Error("expected the benchmark to be cached after lookup")
	}
}

func TestLookup_CacheSkipsRepository(t *testing.T) {
	ctx := context.Background()
	benchRepo := NewMockBenchmarkRepository()
	cacheStore := NewMockCacheStore()
	svc := service.NewBenchmarkService(benchRepo, cacheStore)

	sig := domain.BenchmarkSignature{Region: domain.RegionContinental, DurationDays: 6, Travelers: 2}
	benchRepo.AddBenchmark(&domain.Benchmark{Signature: sig, ReferenceCarbonKg: 850})

	if _, err := svc.Lookup(ctx, sig); err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	countAfterFirst := benchRepo.GetBySignatureCallCount

	if _, err := svc.Lookup(ctx, sig); err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if benchRepo.GetBySignatureCallCount != countAfterFirst {
		t.Error("second lookup should be served from the cache")
	}
}

func TestLookup_NovelSignatureFallsBackToGlobal(t *testing.T) {
	ctx := context.Background()
	benchRepo := NewMockBenchmarkRepository()
	svc := service.NewBenchmarkService(benchRepo, NewMockCacheStore())

	benchRepo.SetGlobal(&domain.Benchmark{
		Signature:         domain.BenchmarkSignature{Region: domain.RegionGlobal},
		ReferenceCarbonKg: 1200,
	})

	sig := domain.BenchmarkSignature{Region: domain.RegionIntercontinental, DurationDays: 12, Travelers: 4}
	benchmark, err := svc.Lookup(ctx, sig)
	if err != nil {
		t.Fatalf("expected the global fallback, got error: %v", err)
	}
	if benchmark.ReferenceCarbonKg != 1200 {
		t.Errorf("expected the global 1200 kg reference, got %f", benchmark.ReferenceCarbonKg)
	}
	if benchRepo.GetGlobalCallCount == 0 {
		t.Error("expected the global row to be consulted")
	}
}

func TestLookup_UnavailableWithoutFallback(t *testing.T) {
	ctx := context.Background()
	svc := service.NewBenchmarkService(NewMockBenchmarkRepository(), NewMockCacheStore())

	sig := domain.BenchmarkSignature{Region: domain.RegionDomestic, DurationDays: 3, Travelers: 1}
	_, err := svc.Lookup(ctx, sig)
	if !errors.Is(err, service.ErrBenchmarkUnavailable) {
		t.Errorf("expected ErrBenchmarkUnavailable, got %v", err)
	}
}

func TestForTrip_UsesTripShape(t *testing.T) {
	ctx := context.Background()
	benchRepo := NewMockBenchmarkRepository()
	svc := service.NewBenchmarkService(benchRepo, NewMockCacheStore())

	plan := &domain.TripPlan{
		Destinations: []string{"paris", "berlin"},
		StartDate:    mustDate("2026-06-01"),
		EndDate:      mustDate("2026-06-08"), // 7 days, buckets to 6
		Travelers:    9,                      // clamps to 6
	}
	sig := domain.BenchmarkSignature{Region: domain.RegionContinental, DurationDays: 6, Travelers: 6}
	benchRepo.AddBenchmark(&domain.Benchmark{Signature: sig, ReferenceCarbonKg: 2000})

	benchmark, err := svc.ForTrip(ctx, plan)
	if err != nil {
		t.Fatalf("failed to resolve benchmark: %v", err)
	}
	if benchmark.ReferenceCarbonKg != 2000 {
		t.Errorf("expected the bucketed signature to match, got %f", benchmark.ReferenceCarbonKg)
	}
}
