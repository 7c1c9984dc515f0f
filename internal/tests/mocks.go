package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"tourops/internal/domain"
	"tourops/internal/redis"
	"tourops/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RESERVATION REPOSITORY
// ──────────────────────────────────────────────

// MockReservationRepository is a mock implementation of ReservationRepository.
type MockReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]*domain.Reservation
	order        []string

	// Counters for verification
	CreateCallCount  int32
	UpdateCallCount  int32
	GetAllCallCount  int32
	GetByIDCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	GetAllError error
}

// NewMockReservationRepository creates a new mock reservation repository.
func NewMockReservationRepository() *MockReservationRepository {
	return &MockReservationRepository{
		reservations: make(map[string]*domain.Reservation),
	}
}

// AddReservation seeds a reservation into the mock repository.
func (m *MockReservationRepository) AddReservation(reservation *domain.Reservation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[reservation.ID]; !ok {
		m.order = append(m.order, reservation.ID)
	}
	m.reservations[reservation.ID] = reservation
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[reservation.ID]; !ok {
		m.order = append(m.order, reservation.ID)
	}
	m.reservations[reservation.ID] = reservation
	return nil
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *reservation
	return &copy, nil
}

func (m *MockReservationRepository) GetAll(ctx context.Context) ([]*domain.Reservation, error) {
	atomic.AddInt32(&m.GetAllCallCount, 1)
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Preserve insertion order; list stability matters to the pipeline.
	result := make([]*domain.Reservation, 0, len(m.order))
	for _, id := range m.order {
		copy := *m.reservations[id]
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[reservation.ID]; !ok {
		return repository.ErrNotFound
	}
	m.reservations[reservation.ID] = reservation
	return nil
}

// GetReservation returns the stored reservation for test assertions.
func (m *MockReservationRepository) GetReservation(id string) *domain.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reservations[id]
}

// CountReservations returns the number of stored reservations.
func (m *MockReservationRepository) CountReservations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reservations)
}

// ──────────────────────────────────────────────
// MOCK FEEDBACK REPOSITORY
// ──────────────────────────────────────────────

// MockFeedbackRepository is a mock implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Feedback

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockFeedbackRepository creates a new mock feedback repository.
func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{
		entries: make(map[string]*domain.Feedback),
	}
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[feedback.ID] = feedback
	return nil
}

func (m *MockFeedbackRepository) GetByReservationID(ctx context.Context, reservationID string) (*domain.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.entries {
		if f.ReservationID == reservationID {
			copy := *f
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockFeedbackRepository) GetAll(ctx context.Context) ([]*domain.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Feedback, 0, len(m.entries))
	for _, f := range m.entries {
		copy := *f
		result = append(result, &copy)
	}
	return result, nil
}

// CountEntries returns the number of stored feedback entries.
func (m *MockFeedbackRepository) CountEntries() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ──────────────────────────────────────────────
// MOCK RESERVATION CACHE
// ──────────────────────────────────────────────

// MockReservationCache is an in-memory stand-in for the Redis cache.
type MockReservationCache struct {
	mu           sync.Mutex
	reservations map[string]*domain.Reservation
	stats        map[string]*redis.CachedStats
	generation   int64

	// Counters for verification
	GetReservationCallCount int32
	SetReservationCallCount int32
	GetStatsCallCount       int32
	SetStatsCallCount       int32
	InvalidateCallCount     int32
	BumpGenerationCallCount int32

	// Error injection
	GetReservationError error
	GetStatsError       error
}

// NewMockReservationCache creates a new mock cache.
func NewMockReservationCache() *MockReservationCache {
	return &MockReservationCache{
		reservations: make(map[string]*domain.Reservation),
		stats:        make(map[string]*redis.CachedStats),
	}
}

var _ redis.ReservationCacheInterface = (*MockReservationCache)(nil)

func (m *MockReservationCache) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	atomic.AddInt32(&m.GetReservationCallCount, 1)
	if m.GetReservationError != nil {
		return nil, m.GetReservationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	copy := *reservation
	return &copy, nil
}

func (m *MockReservationCache) SetReservation(ctx context.Context, reservation *domain.Reservation) error {
	atomic.AddInt32(&m.SetReservationCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *reservation
	m.reservations[reservation.ID] = &copy
	return nil
}

func (m *MockReservationCache) InvalidateReservation(ctx context.Context, id string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reservations, id)
	return nil
}

func (m *MockReservationCache) GetStats(ctx context.Context, key string) (*redis.CachedStats, error) {
	atomic.AddInt32(&m.GetStatsCallCount, 1)
	if m.GetStatsError != nil {
		return nil, m.GetStatsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats[key], nil
}

func (m *MockReservationCache) SetStats(ctx context.Context, key string, stats *redis.CachedStats) error {
	atomic.AddInt32(&m.SetStatsCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[key] = stats
	return nil
}

func (m *MockReservationCache) Generation(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation, nil
}

func (m *MockReservationCache) BumpGeneration(ctx context.Context) error {
	atomic.AddInt32(&m.BumpGenerationCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	return nil
}

// StatsEntryCount returns the number of cached stats keys.
func (m *MockReservationCache) StatsEntryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stats)
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
