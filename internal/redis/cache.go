package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tourops/internal/domain"
)

// CacheStore caches reservation records and derived export statistics in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	ReservationCacheTTL = 30 * time.Second // reservations mutate during back-office work
	StatsCacheTTL       = 60 * time.Second // stats are cheap to recompute but hit on every keystroke
)

// Key prefixes
const (
	reservationCachePrefix = "cache:reservation:"
	statsCachePrefix       = "cache:stats:"
	statsGenerationKey     = "cache:stats:generation"
)

// CachedStats mirrors the aggregate statistics of a filtered list.
type CachedStats struct {
	TotalReservations int     `json:"total_reservations"`
	TotalTourists     int     `json:"total_tourists"`
	TotalRevenue      float64 `json:"total_revenue"`
	AvgTicket         float64 `json:"avg_ticket"`
}

// GetReservation retrieves a reservation from cache. A nil result with nil
// error is a cache miss.
func (s *CacheStore) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	data, err := s.client.Get(ctx, reservationCachePrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var reservation domain.Reservation
	if err := json.Unmarshal(data, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// SetReservation stores a reservation in cache for the detail view.
func (s *CacheStore) SetReservation(ctx context.Context, reservation *domain.Reservation) error {
	data, err := json.Marshal(reservation)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, reservationCachePrefix+reservation.ID, data, ReservationCacheTTL).Err()
}

// InvalidateReservation removes a reservation from cache.
func (s *CacheStore) InvalidateReservation(ctx context.Context, id string) error {
	return s.client.Del(ctx, reservationCachePrefix+id).Err()
}

// GetStats retrieves cached export stats for a criteria key. A nil result
// with nil error is a cache miss.
func (s *CacheStore) GetStats(ctx context.Context, key string) (*CachedStats, error) {
	data, err := s.client.Get(ctx, statsCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats CachedStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores export stats for a criteria key.
func (s *CacheStore) SetStats(ctx context.Context, key string, stats *CachedStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsCachePrefix+key, data, StatsCacheTTL).Err()
}

// Generation returns the current stats generation counter. Stats cache keys
// embed the generation, so bumping it invalidates every cached aggregate at
// once without scanning keys.
func (s *CacheStore) Generation(ctx context.Context) (int64, error) {
	gen, err := s.client.Get(ctx, statsGenerationKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}

// BumpGeneration invalidates all cached stats by advancing the generation.
func (s *CacheStore) BumpGeneration(ctx context.Context) error {
	return s.client.Incr(ctx, statsGenerationKey).Err()
}
