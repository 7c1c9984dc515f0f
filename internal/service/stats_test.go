package service

import (
	"math"
	"testing"

	"tourops/internal/domain"
)

func TestAggregate_SumsFilteredList(t *testing.T) {
	t.Parallel()

	list := []*domain.Reservation{
		{Adults: 2, Children: 1, Total: 150},
		{Adults: 4, Children: 0, Total: 400},
		{Adults: 1, Children: 2, Total: 90},
	}

	stats := Aggregate(list)
	if stats.TotalReservations != 3 {
		t.Errorf("expected 3 reservations, got %d", stats.TotalReservations)
	}
	if stats.TotalTourists != 10 {
		t.Errorf("expected 10 tourists, got %d", stats.TotalTourists)
	}
	if stats.TotalRevenue != 640 {
		t.Errorf("expected revenue 640, got %f", stats.TotalRevenue)
	}
	want := 640.0 / 3.0
	if math.Abs(stats.AvgTicket-want) > 1e-9 {
		t.Errorf("expected avg ticket %f, got %f", want, stats.AvgTicket)
	}
}

func TestAggregate_EmptyListIsAllZero(t *testing.T) {
	t.Parallel()

	stats := Aggregate(nil)
	if stats.TotalReservations != 0 || stats.TotalTourists != 0 ||
		stats.TotalRevenue != 0 || stats.AvgTicket != 0 {
		t.Errorf("expected zero stats for empty list, got %+v", stats)
	}
}

func TestAggregate_ReflectsFilterNotPage(t *testing.T) {
	t.Parallel()

	// Stats run over the whole filtered list; pagination must not change them.
	list := makeReservations(23)
	for _, r := range list {
		r.Total = 10
	}

	filtered := FilterReservations(list, FilterCriteria{})
	statsAll := Aggregate(filtered)

	page := Paginate(filtered, 10, 2)
	if len(page.Items) == len(filtered) {
		t.Fatal("test needs a page smaller than the list")
	}

	if statsAll.TotalReservations != 23 {
		t.Errorf("expected stats over all 23 records, got %d", statsAll.TotalReservations)
	}
	if statsAll.TotalRevenue != 230 {
		t.Errorf("expected revenue 230, got %f", statsAll.TotalRevenue)
	}
}
