package redis

import (
	"context"

	"tourops/internal/domain"
)

// ReservationCacheInterface defines the cache operations the services use.
type ReservationCacheInterface interface {
	GetReservation(ctx context.Context, id string) (*domain.Reservation, error)
	SetReservation(ctx context.Context, reservation *domain.Reservation) error
	InvalidateReservation(ctx context.Context, id string) error
	GetStats(ctx context.Context, key string) (*CachedStats, error)
	SetStats(ctx context.Context, key string, stats *CachedStats) error
	Generation(ctx context.Context) (int64, error)
	BumpGeneration(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var _ ReservationCacheInterface = (*CacheStore)(nil)
