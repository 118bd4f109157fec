package redis

import (
	"context"
	"time"

	"ecotrip/internal/domain"
)

// CacheStoreInterface defines the caching operations services depend on.
type CacheStoreInterface interface {
	GetBenchmark(ctx context.Context, sig domain.BenchmarkSignature) (*domain.Benchmark, error)
	SetBenchmark(ctx context.Context, sig domain.BenchmarkSignature, benchmark *domain.Benchmark) error
	GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
	SetLeaderboard(ctx context.Context, entries []domain.LeaderboardEntry) error
	InvalidateLeaderboard(ctx context.Context) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquirePlanLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error)
	ReleasePlanLock(ctx context.Context, tripID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
