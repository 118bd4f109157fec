package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ecotrip/internal/domain"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// Benchmarks are refreshed out-of-band and change rarely.
	BenchmarkCacheTTL = 10 * time.Minute
	// The leaderboard is cheap to rebuild but read on every dashboard load.
	LeaderboardCacheTTL = 60 * time.Second
)

// Key prefixes
const (
	benchmarkCachePrefix = "cache:benchmark:"
	leaderboardCacheKey  = "cache:leaderboard"
)

// benchmarkKey builds the cache key from the canonical signature.
func benchmarkKey(sig domain.BenchmarkSignature) string {
	return fmt.Sprintf("%s%s:%d:%d", benchmarkCachePrefix, sig.Region, sig.DurationDays, sig.Travelers)
}

// GetBenchmark retrieves a benchmark from cache. A nil result with nil error
// is a cache miss.
func (s *CacheStore) GetBenchmark(ctx context.Context, sig domain.BenchmarkSignature) (*domain.Benchmark, error) {
	data, err := s.client.Get(ctx, benchmarkKey(sig)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var benchmark domain.Benchmark
	if err := json.Unmarshal(data, &benchmark); err != nil {
		return nil, err
	}
	return &benchmark, nil
}

// SetBenchmark stores a benchmark in cache under the requested signature.
// The cached row may be the fallback benchmark, so the key comes from the
// request, not from the row.
func (s *CacheStore) SetBenchmark(ctx context.Context, sig domain.BenchmarkSignature, benchmark *domain.Benchmark) error {
	data, err := json.Marshal(benchmark)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, benchmarkKey(sig), data, BenchmarkCacheTTL).Err()
}

// GetLeaderboard retrieves the cached ranked leaderboard. A nil result with
// nil error is a cache miss.
func (s *CacheStore) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	data, err := s.client.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetLeaderboard stores the ranked leaderboard in cache.
func (s *CacheStore) SetLeaderboard(ctx context.Context, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, leaderboardCacheKey, data, LeaderboardCacheTTL).Err()
}

// InvalidateLeaderboard drops the cached leaderboard after scores or badges
// change.
func (s *CacheStore) InvalidateLeaderboard(ctx context.Context) error {
	return s.client.Del(ctx, leaderboardCacheKey).Err()
}
