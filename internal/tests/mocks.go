package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"ecotrip/internal/domain"
	"ecotrip/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.TripPlan

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.TripPlan),
	}
}

// AddTrip adds a trip plan to the mock repository.
func (m *MockTripRepository) AddTrip(plan *domain.TripPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[plan.ID] = plan
}

func (m *MockTripRepository) Create(ctx context.Context, plan *domain.TripPlan) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[plan.ID] = copyPlan(plan)
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.TripPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	plan, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	return copyPlan(plan), nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.TripPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.TripPlan, 0, len(m.trips))
	for _, p := range m.trips {
		result = append(result, copyPlan(p))
	}
	return result, nil
}

func (m *MockTripRepository) GetByUser(ctx context.Context, userID string) ([]*domain.TripPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TripPlan
	for _, p := range m.trips {
		if p.UserID == userID {
			result = append(result, copyPlan(p))
		}
	}
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, plan *domain.TripPlan) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	m.trips[plan.ID] = copyPlan(plan)
	return nil
}

// GetTrip returns the stored trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.TripPlan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// copyPlan clones a plan including its component list so callers never share
// a backing array with the store.
func copyPlan(plan *domain.TripPlan) *domain.TripPlan {
	clone := *plan
	clone.Components = make([]domain.TripComponent, len(plan.Components))
	copy(clone.Components, plan.Components)
	clone.Destinations = make([]string, len(plan.Destinations))
	copy(clone.Destinations, plan.Destinations)
	return &clone
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	history map[string]domain.UserHistory
	earned  map[string][]string

	// Counters for verification
	AwardBadgeCallCount     int32
	UpdateEcoScoreCallCount int32

	// Error injection
	AwardBadgeError error
	GetHistoryError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[string]*domain.User),
		history: make(map[string]domain.UserHistory),
		earned:  make(map[string][]string),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

// SetHistory sets the aggregated history for a user.
func (m *MockUserRepository) SetHistory(userID string, history domain.UserHistory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[userID] = history
}

// SetEarnedBadges seeds the earned badge ids for a user.
func (m *MockUserRepository) SetEarnedBadges(userID string, badgeIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.earned[userID] = badgeIDs
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) UpdateEcoScore(ctx context.Context, userID string, score float64) error {
	atomic.AddInt32(&m.UpdateEcoScoreCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.EcoScore = score
	return nil
}

func (m *MockUserRepository) GetHistory(ctx context.Context, userID string) (domain.UserHistory, error) {
	if m.GetHistoryError != nil {
		return domain.UserHistory{}, m.GetHistoryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history[userID], nil
}

func (m *MockUserRepository) GetEarnedBadges(ctx context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]string, len(m.earned[userID]))
	copy(result, m.earned[userID])
	return result, nil
}

func (m *MockUserRepository) AwardBadge(ctx context.Context, earned *domain.EarnedBadge) error {
	atomic.AddInt32(&m.AwardBadgeCallCount, 1)
	if m.AwardBadgeError != nil {
		return m.AwardBadgeError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Awarding an already earned badge is a no-op, like ON CONFLICT DO NOTHING.
	for _, id := range m.earned[earned.UserID] {
		if id == earned.BadgeID {
			return nil
		}
	}
	m.earned[earned.UserID] = append(m.earned[earned.UserID], earned.BadgeID)
	return nil
}

// GetUser returns the user for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// ──────────────────────────────────────────────
// MOCK CATALOG REPOSITORY
// ──────────────────────────────────────────────

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mu         sync.RWMutex
	candidates map[string][]domain.TripComponent

	// Error injection
	GetCandidatesError error
}

// NewMockCatalogRepository creates a new mock catalog repository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		candidates: make(map[string][]domain.TripComponent),
	}
}

// SetCandidates sets the candidate pool for a destination and kind.
func (m *MockCatalogRepository) SetCandidates(destination string, kind domain.ComponentKind, components []domain.TripComponent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates[destination+"/"+string(kind)] = components
}

func (m *MockCatalogRepository) GetCandidates(ctx context.Context, destination string, kind domain.ComponentKind) ([]domain.TripComponent, error) {
	if m.GetCandidatesError != nil {
		return nil, m.GetCandidatesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	pool := m.candidates[destination+"/"+string(kind)]
	result := make([]domain.TripComponent, len(pool))
	copy(result, pool)
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK BENCHMARK REPOSITORY
// ──────────────────────────────────────────────

// MockBenchmarkRepository is a mock implementation of BenchmarkRepository.
type MockBenchmarkRepository struct {
	mu         sync.RWMutex
	benchmarks map[domain.BenchmarkSignature]*domain.Benchmark
	global     *domain.Benchmark

	// Counters for verification
	GetBySignatureCallCount int32
	GetGlobalCallCount      int32
}

// NewMockBenchmarkRepository creates a new mock benchmark repository.
func NewMockBenchmarkRepository() *MockBenchmarkRepository {
	return &MockBenchmarkRepository{
		benchmarks: make(map[domain.BenchmarkSignature]*domain.Benchmark),
	}
}

// AddBenchmark adds a benchmark row for a signature.
func (m *MockBenchmarkRepository) AddBenchmark(benchmark *domain.Benchmark) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.benchmarks[benchmark.Signature] = benchmark
}

// SetGlobal sets the global fallback benchmark.
func (m *MockBenchmarkRepository) SetGlobal(benchmark *domain.Benchmark) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.global = benchmark
}

func (m *MockBenchmarkRepository) GetBySignature(ctx context.Context, sig domain.BenchmarkSignature) (*domain.Benchmark, error) {
	atomic.AddInt32(&m.GetBySignatureCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	benchmark, ok := m.benchmarks[sig]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *benchmark
	return &copy, nil
}

func (m *MockBenchmarkRepository) GetGlobal(ctx context.Context) (*domain.Benchmark, error) {
	atomic.AddInt32(&m.GetGlobalCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.global == nil {
		return nil, repository.ErrNotFound
	}
	copy := *m.global
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu          sync.RWMutex
	benchmarks  map[domain.BenchmarkSignature]*domain.Benchmark
	leaderboard []domain.LeaderboardEntry

	// Counters for verification
	InvalidateLeaderboardCallCount int32
	SetBenchmarkCallCount          int32

	// Error injection
	GetBenchmarkError error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		benchmarks: make(map[domain.BenchmarkSignature]*domain.Benchmark),
	}
}

func (m *MockCacheStore) GetBenchmark(ctx context.Context, sig domain.BenchmarkSignature) (*domain.Benchmark, error) {
	if m.GetBenchmarkError != nil {
		return nil, m.GetBenchmarkError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	benchmark, ok := m.benchmarks[sig]
	if !ok {
		return nil, nil // Cache miss is not an error.
	}
	copy := *benchmark
	return &copy, nil
}

func (m *MockCacheStore) SetBenchmark(ctx context.Context, sig domain.BenchmarkSignature, benchmark *domain.Benchmark) error {
	atomic.AddInt32(&m.SetBenchmarkCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.benchmarks[sig] = benchmark
	return nil
}

func (m *MockCacheStore) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.leaderboard == nil {
		return nil, nil
	}
	result := make([]domain.LeaderboardEntry, len(m.leaderboard))
	copy(result, m.leaderboard)
	return result, nil
}

func (m *MockCacheStore) SetLeaderboard(ctx context.Context, entries []domain.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboard = entries
	return nil
}

func (m *MockCacheStore) InvalidateLeaderboard(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateLeaderboardCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboard = nil
	return nil
}

// HasCachedBenchmark checks whether a signature is cached (for assertions).
func (m *MockCacheStore) HasCachedBenchmark(sig domain.BenchmarkSignature) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.benchmarks[sig]
	return ok
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquirePlanLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:plan:" + tripID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleasePlanLock(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:plan:"+tripID)
	return nil
}

// IsLocked checks if a plan is locked (for test assertions).
func (m *MockLockStore) IsLocked(tripID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:plan:"+tripID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
