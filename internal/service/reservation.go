package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"time"

	"github.com/google/uuid"

	"tourops/internal/domain"
	"tourops/internal/redis"
	"tourops/internal/repository"
)

// ReservationService owns the reservation list pipeline (filter, paginate,
// aggregate) and the field-by-field mutations of the lifecycle. All filtering
// happens in memory over the full collection; the repository only supplies
// and persists records.
type ReservationService struct {
	repo     repository.ReservationRepository
	cache    redis.ReservationCacheInterface
	notifier *NotificationService
}

// NewReservationService creates a new ReservationService. The cache may be
// nil, in which case every aggregate is recomputed.
func NewReservationService(
	repo repository.ReservationRepository,
	cache redis.ReservationCacheInterface,
	notifier *NotificationService,
) *ReservationService {
	return &ReservationService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
	}
}

// ListResult is the outcome of a reservation list query: one visible page
// plus the statistics of the whole filtered set.
type ListResult struct {
	Page  Page
	Stats ExportStats
}

// List loads the reservation collection, applies the criteria, and returns
// the requested page together with the export stats of all matching records.
func (s *ReservationService) List(ctx context.Context, criteria FilterCriteria, pageSize, pageIndex int) (*ListResult, error) {
	reservations, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterReservations(reservations, criteria)
	page := Paginate(filtered, pageSize, pageIndex)

	stats, ok := s.cachedStats(ctx, criteria)
	if !ok {
		stats = Aggregate(filtered)
		s.storeStats(ctx, criteria, stats)
	}

	return &ListResult{Page: page, Stats: stats}, nil
}

// Get retrieves a single reservation, serving repeat detail-view lookups from
// cache. Cache failures degrade to the repository.
func (s *ReservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	if id == "" {
		return nil, ErrInvalidReservationID
	}

	if s.cache != nil {
		cached, err := s.cache.GetReservation(ctx, id)
		if err != nil {
			log.Printf("reservation cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetReservation(ctx, reservation); err != nil {
			log.Printf("reservation cache write failed: %v", err)
		}
	}
	return reservation, nil
}

// Create validates and persists a new reservation. Status and payment status
// default to pending; ID and timestamps are assigned here.
func (s *ReservationService) Create(ctx context.Context, reservation *domain.Reservation) error {
	if reservation.Status == "" {
		reservation.Status = domain.ReservationStatusPending
	}
	if reservation.PaymentStatus == "" {
		reservation.PaymentStatus = domain.PaymentStatusPending
	}
	if err := validateReservation(reservation); err != nil {
		return err
	}

	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	reservation.IsRated = false

	if err := s.repo.Create(ctx, reservation); err != nil {
		return err
	}

	s.invalidate(ctx, reservation.ID)
	if s.notifier != nil {
		_ = s.notifier.NotifyReservationCreated(ctx, reservation)
	}
	return nil
}

// ChangeStatus transitions a reservation to a new lifecycle status.
// Cancelled and completed reservations are terminal.
func (s *ReservationService) ChangeStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if id == "" {
		return nil, ErrInvalidReservationID
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status == status {
		return reservation, nil
	}
	if reservation.Status == domain.ReservationStatusCancelled {
		return nil, ErrReservationCancelled
	}
	if reservation.Status == domain.ReservationStatusCompleted {
		return nil, ErrReservationCompleted
	}

	previous := reservation.Status
	reservation.Status = status
	reservation.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.invalidate(ctx, reservation.ID)
	if s.notifier != nil {
		_ = s.notifier.NotifyStatusChanged(ctx, reservation, previous)
	}
	return reservation, nil
}

// UpdatePayment sets the payment status of a reservation.
func (s *ReservationService) UpdatePayment(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Reservation, error) {
	if id == "" {
		return nil, ErrInvalidReservationID
	}
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reservation.PaymentStatus = status
	reservation.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.invalidate(ctx, reservation.ID)
	if s.notifier != nil {
		_ = s.notifier.NotifyPaymentUpdated(ctx, reservation)
	}
	return reservation, nil
}

// MarkRated flags a completed reservation as rated. Used by the feedback flow.
func (s *ReservationService) MarkRated(ctx context.Context, reservation *domain.Reservation) error {
	if reservation.Status != domain.ReservationStatusCompleted {
		return ErrReservationNotCompleted
	}
	if reservation.IsRated {
		return ErrAlreadyRated
	}

	reservation.IsRated = true
	reservation.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, reservation); err != nil {
		return err
	}
	s.invalidate(ctx, reservation.ID)
	return nil
}

func validateReservation(r *domain.Reservation) error {
	switch {
	case r.ClientName == "":
		return ErrInvalidClientName
	case r.ClientPhone == "":
		return ErrInvalidClientPhone
	case r.TourName == "":
		return ErrInvalidTourName
	case r.Date.IsZero():
		return ErrInvalidDate
	case r.Adults < 1:
		return ErrInvalidAdults
	case r.Children < 0:
		return ErrInvalidChildren
	case r.Total < 0:
		return ErrInvalidTotal
	case !r.Status.Valid():
		return ErrInvalidStatus
	case !r.PaymentStatus.Valid():
		return ErrInvalidPaymentStatus
	}
	for _, group := range r.Groups {
		if group.CompanionsCount < 0 {
			return ErrInvalidChildren
		}
	}
	return nil
}

// cachedStats looks up the aggregate for the criteria in the stats cache.
// Cache failures degrade to recomputation.
func (s *ReservationService) cachedStats(ctx context.Context, criteria FilterCriteria) (ExportStats, bool) {
	if s.cache == nil {
		return ExportStats{}, false
	}

	cached, err := s.cache.GetStats(ctx, s.statsKey(ctx, criteria))
	if err != nil {
		log.Printf("stats cache read failed: %v", err)
		return ExportStats{}, false
	}
	if cached == nil {
		return ExportStats{}, false
	}
	return ExportStats{
		TotalReservations: cached.TotalReservations,
		TotalTourists:     cached.TotalTourists,
		TotalRevenue:      cached.TotalRevenue,
		AvgTicket:         cached.AvgTicket,
	}, true
}

func (s *ReservationService) storeStats(ctx context.Context, criteria FilterCriteria, stats ExportStats) {
	if s.cache == nil {
		return
	}
	err := s.cache.SetStats(ctx, s.statsKey(ctx, criteria), &redis.CachedStats{
		TotalReservations: stats.TotalReservations,
		TotalTourists:     stats.TotalTourists,
		TotalRevenue:      stats.TotalRevenue,
		AvgTicket:         stats.AvgTicket,
	})
	if err != nil {
		log.Printf("stats cache write failed: %v", err)
	}
}

// statsKey builds a cache key from the stats generation and a hash of the
// criteria, so any mutation invalidates all aggregates at once.
func (s *ReservationService) statsKey(ctx context.Context, criteria FilterCriteria) string {
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		gen = 0
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|%s",
		criteria.SearchTerm,
		criteria.StatusFilter,
		criteria.DateFrom,
		criteria.DateTo,
		criteria.CustomerFilter,
		criteria.MinPassengers,
		criteria.MaxPassengers,
	)
	return fmt.Sprintf("%d:%x", gen, h.Sum64())
}

// invalidate drops the cached copy of a reservation and all cached stats.
func (s *ReservationService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateReservation(ctx, id); err != nil {
		log.Printf("reservation cache invalidation failed: %v", err)
	}
	if err := s.cache.BumpGeneration(ctx); err != nil {
		log.Printf("stats cache invalidation failed: %v", err)
	}
}
