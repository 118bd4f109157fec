package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquirePlanLock attempts to acquire the single-writer lock for a trip plan.
// Returns true if the lock was acquired, false if another writer holds it.
func (s *LockStore) AcquirePlanLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:plan:%s", tripID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleasePlanLock releases the lock for the given trip plan.
func (s *LockStore) ReleasePlanLock(ctx context.Context, tripID string) error {
	key := fmt.Sprintf("lock:plan:%s", tripID)

	return s.client.Del(ctx, key).Err()
}
