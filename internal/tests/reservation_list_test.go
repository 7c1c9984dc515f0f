package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tourops/internal/domain"
	"tourops/internal/service"
)

func seedListFixture(repo *MockReservationRepository, n int) {
	for i := 0; i < n; i++ {
		status := domain.ReservationStatusConfirmed
		if i%3 == 0 {
			status = domain.ReservationStatusPending
		}
		repo.AddReservation(&domain.Reservation{
			ID:            fmt.Sprintf("res-%03d", i+1),
			TourName:      "Valle Sagrado",
			ClientName:    fmt.Sprintf("Cliente %d", i+1),
			ClientPhone:   "+51 999 000 000",
			Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Adults:        2,
			Children:      i % 2,
			Total:         100,
			Status:        status,
			PaymentStatus: domain.PaymentStatusPending,
		})
	}
}

// ──────────────────────────────────────────────
// 1. LIST PIPELINE WIRING
// ──────────────────────────────────────────────

func TestList_ReturnsPageAndFullSetStats(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 23)
	svc := newReservationService(repo, NewMockReservationCache())

	result, err := svc.List(context.Background(), service.FilterCriteria{}, 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Page.Items) != 10 {
		t.Errorf("expected 10 items on page 2, got %d", len(result.Page.Items))
	}
	if result.Page.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", result.Page.TotalPages)
	}
	if result.Page.Items[0].ID != "res-011" {
		t.Errorf("expected page 2 to start at res-011, got %s", result.Page.Items[0].ID)
	}

	// Stats cover all 23 matching records, not the visible page.
	if result.Stats.TotalReservations != 23 {
		t.Errorf("expected stats over 23 records, got %d", result.Stats.TotalReservations)
	}
	if result.Stats.TotalRevenue != 2300 {
		t.Errorf("expected revenue 2300, got %f", result.Stats.TotalRevenue)
	}
}

func TestList_FilterNarrowsPageAndStatsTogether(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 23)
	svc := newReservationService(repo, NewMockReservationCache())

	criteria := service.FilterCriteria{StatusFilter: string(domain.ReservationStatusPending)}
	result, err := svc.List(context.Background(), criteria, 10, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Indexes 0,3,6,... of 23 records: 8 pending reservations.
	if result.Stats.TotalReservations != 8 {
		t.Errorf("expected 8 pending reservations, got %d", result.Stats.TotalReservations)
	}
	for _, item := range result.Page.Items {
		if item.Status != domain.ReservationStatusPending {
			t.Errorf("reservation %s leaked through the status filter", item.ID)
		}
	}
}

func TestList_StalePageIndexClamps(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 23)
	svc := newReservationService(repo, NewMockReservationCache())

	result, err := svc.List(context.Background(), service.FilterCriteria{}, 10, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Page.PageIndex != 3 {
		t.Errorf("expected index clamped to 3, got %d", result.Page.PageIndex)
	}
}

// ──────────────────────────────────────────────
// 2. STATS CACHING
// ──────────────────────────────────────────────

func TestList_StatsComeFromCacheOnRepeat(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 5)
	cache := NewMockReservationCache()
	svc := newReservationService(repo, cache)

	criteria := service.FilterCriteria{SearchTerm: "cliente"}

	first, err := svc.List(context.Background(), criteria, 10, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.SetStatsCallCount != 1 {
		t.Fatalf("expected one stats write after a miss, got %d", cache.SetStatsCallCount)
	}

	second, err := svc.List(context.Background(), criteria, 10, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.SetStatsCallCount != 1 {
		t.Errorf("expected no second stats write, got %d", cache.SetStatsCallCount)
	}
	if first.Stats != second.Stats {
		t.Errorf("cached stats diverged: %+v vs %+v", first.Stats, second.Stats)
	}
}

func TestList_DifferentCriteriaUseDifferentKeys(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 5)
	cache := NewMockReservationCache()
	svc := newReservationService(repo, cache)

	if _, err := svc.List(context.Background(), service.FilterCriteria{}, 10, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.List(context.Background(), service.FilterCriteria{StatusFilter: "pendiente"}, 10, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.StatsEntryCount() != 2 {
		t.Errorf("expected 2 cached stats entries, got %d", cache.StatsEntryCount())
	}
}

func TestList_MutationInvalidatesStats(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 5)
	cache := NewMockReservationCache()
	svc := newReservationService(repo, cache)

	criteria := service.FilterCriteria{}
	if _, err := svc.List(context.Background(), criteria, 10, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A status change bumps the generation, so the next list recomputes.
	if _, err := svc.ChangeStatus(context.Background(), "res-002", domain.ReservationStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.BumpGenerationCallCount != 1 {
		t.Fatalf("expected one generation bump, got %d", cache.BumpGenerationCallCount)
	}

	result, err := svc.List(context.Background(), criteria, 10, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.SetStatsCallCount != 2 {
		t.Errorf("expected a fresh stats write after invalidation, got %d writes", cache.SetStatsCallCount)
	}
	if result.Stats.TotalReservations != 5 {
		t.Errorf("expected 5 reservations, got %d", result.Stats.TotalReservations)
	}
}

func TestList_CacheFailureDegradesToRecompute(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 5)
	cache := NewMockReservationCache()
	cache.GetStatsError = ErrMockTimeout
	svc := newReservationService(repo, cache)

	result, err := svc.List(context.Background(), service.FilterCriteria{}, 10, 1)
	if err != nil {
		t.Fatalf("cache failures must not fail the list: %v", err)
	}
	if result.Stats.TotalReservations != 5 {
		t.Errorf("expected recomputed stats, got %+v", result.Stats)
	}
}

// ──────────────────────────────────────────────
// 3. DETAIL-VIEW CACHING
// ──────────────────────────────────────────────

func TestGet_RepeatLookupServedFromCache(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 3)
	cache := NewMockReservationCache()
	svc := newReservationService(repo, cache)

	first, err := svc.Get(context.Background(), "res-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.GetByIDCallCount != 1 {
		t.Fatalf("expected one repository read after a miss, got %d", repo.GetByIDCallCount)
	}
	if cache.SetReservationCallCount != 1 {
		t.Fatalf("expected the miss to populate the cache, got %d writes", cache.SetReservationCallCount)
	}

	second, err := svc.Get(context.Background(), "res-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.GetByIDCallCount != 1 {
		t.Errorf("expected the repeat lookup to skip the repository, got %d reads", repo.GetByIDCallCount)
	}
	if second.ID != first.ID || second.ClientName != first.ClientName {
		t.Errorf("cached reservation diverged: %+v vs %+v", second, first)
	}
}

func TestGet_MutationInvalidatesCachedReservation(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 3)
	cache := NewMockReservationCache()
	svc := newReservationService(repo, cache)

	if _, err := svc.Get(context.Background(), "res-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ChangeStatus(context.Background(), "res-001", domain.ReservationStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.InvalidateCallCount == 0 {
		t.Fatal("expected the mutation to invalidate the cached reservation")
	}

	// The next lookup must miss the cache and see the new status.
	reads := repo.GetByIDCallCount
	updated, err := svc.Get(context.Background(), "res-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.GetByIDCallCount != reads+1 {
		t.Error("expected the post-mutation lookup to reach the repository")
	}
	if updated.Status != domain.ReservationStatusCancelled {
		t.Errorf("expected cancelada after invalidation, got %s", updated.Status)
	}
}

func TestGet_CacheFailureFallsBackToRepository(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 3)
	cache := NewMockReservationCache()
	cache.GetReservationError = ErrMockTimeout
	svc := newReservationService(repo, cache)

	reservation, err := svc.Get(context.Background(), "res-001")
	if err != nil {
		t.Fatalf("cache failures must not fail the lookup: %v", err)
	}
	if reservation.ID != "res-001" {
		t.Errorf("expected res-001 from the repository, got %s", reservation.ID)
	}
}

func TestList_NilCacheIsSupported(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedListFixture(repo, 5)
	svc := service.NewReservationService(repo, nil, nil)

	result, err := svc.List(context.Background(), service.FilterCriteria{}, 10, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.TotalReservations != 5 {
		t.Errorf("expected 5 reservations, got %d", result.Stats.TotalReservations)
	}
}
