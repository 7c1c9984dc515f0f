package service

import (
	"testing"
	"time"

	"tourops/internal/domain"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleReservations() []*domain.Reservation {
	return []*domain.Reservation{
		{
			ID:         "res-001",
			TourName:   "Valle Sagrado",
			ClientName: "Maria Lopez",
			Date:       day("2024-03-10"),
			Adults:     2,
			Children:   1,
			Status:     domain.ReservationStatusConfirmed,
		},
		{
			ID:         "res-002",
			TourName:   "Laguna Humantay",
			ClientName: "John Smith",
			Date:       day("2024-03-15"),
			Adults:     4,
			Children:   0,
			Status:     domain.ReservationStatusPending,
		},
		{
			ID:         "res-003",
			TourName:   "Montaña de Colores",
			ClientName: "Maria Fernanda Ruiz",
			Date:       day("2024-04-02"),
			Adults:     1,
			Children:   2,
			Status:     domain.ReservationStatusConfirmed,
		},
		{
			ID:         "res-004",
			TourName:   "City Tour Cusco",
			ClientName: "Pedro Alvarez",
			Date:       day("2024-04-20"),
			Adults:     6,
			Children:   3,
			Status:     domain.ReservationStatusCancelled,
		},
	}
}

func ids(list []*domain.Reservation) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []*domain.Reservation, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	t.Parallel()

	list := sampleReservations()
	got := FilterReservations(list, FilterCriteria{})
	assertIDs(t, got, "res-001", "res-002", "res-003", "res-004")

	// "all" disables the status filter the same way.
	got = FilterReservations(list, FilterCriteria{StatusFilter: "all"})
	assertIDs(t, got, "res-001", "res-002", "res-003", "res-004")
}

func TestFilter_IsIdempotent(t *testing.T) {
	t.Parallel()

	list := sampleReservations()
	criteria := FilterCriteria{StatusFilter: "confirmada", SearchTerm: "maria"}

	once := FilterReservations(list, criteria)
	twice := FilterReservations(once, criteria)
	assertIDs(t, twice, ids(once)...)
}

func TestFilter_AddingCriteriaNeverGrowsResult(t *testing.T) {
	t.Parallel()

	list := sampleReservations()
	base := FilterReservations(list, FilterCriteria{StatusFilter: "confirmada"})
	narrowed := FilterReservations(list, FilterCriteria{
		StatusFilter:   "confirmada",
		CustomerFilter: "maria",
	})

	if len(narrowed) > len(base) {
		t.Fatalf("narrowed result has %d items, base only %d", len(narrowed), len(base))
	}
	// Every narrowed item must be in the base result.
	baseSet := make(map[string]bool)
	for _, r := range base {
		baseSet[r.ID] = true
	}
	for _, r := range narrowed {
		if !baseSet[r.ID] {
			t.Fatalf("reservation %s appeared after narrowing", r.ID)
		}
	}
}

func TestFilter_TextSearchMatchesTourClientAndID(t *testing.T) {
	t.Parallel()

	list := sampleReservations()

	testCases := []struct {
		name string
		term string
		want []string
	}{
		{name: "tour name, case-insensitive", term: "HUMANTAY", want: []string{"res-002"}},
		{name: "client name substring", term: "maria", want: []string{"res-001", "res-003"}},
		{name: "reservation id", term: "res-004", want: []string{"res-004"}},
		{name: "accented tour name", term: "montaña", want: []string{"res-003"}},
		{name: "no match", term: "machu picchu", want: []string{}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterReservations(list, FilterCriteria{SearchTerm: tc.term})
			assertIDs(t, got, tc.want...)
		})
	}
}

func TestFilter_StatusRequiresExactMatch(t *testing.T) {
	t.Parallel()

	list := sampleReservations()
	got := FilterReservations(list, FilterCriteria{StatusFilter: "confirmada"})
	assertIDs(t, got, "res-001", "res-003")

	// An unknown status matches nothing rather than erroring.
	got = FilterReservations(list, FilterCriteria{StatusFilter: "confirm"})
	assertIDs(t, got)
}

func TestFilter_DateRangeUpperBoundCoversWholeDay(t *testing.T) {
	t.Parallel()

	// A reservation timestamped late on the boundary day must still match a
	// date-only upper bound; one millisecond into the next day must not.
	lateOnDay := day("2024-03-15").Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
	nextDay := lateOnDay.Add(time.Millisecond)

	list := []*domain.Reservation{
		{ID: "res-edge", Date: lateOnDay, Adults: 1},
		{ID: "res-over", Date: nextDay, Adults: 1},
	}

	got := FilterReservations(list, FilterCriteria{DateTo: "2024-03-15"})
	assertIDs(t, got, "res-edge")
}

func TestFilter_DateRangeLowerBoundIsExact(t *testing.T) {
	t.Parallel()

	list := sampleReservations()

	testCases := []struct {
		name     string
		from, to string
		want     []string
	}{
		{name: "from only", from: "2024-04-01", want: []string{"res-003", "res-004"}},
		{name: "to only", to: "2024-03-15", want: []string{"res-001", "res-002"}},
		{name: "both bounds", from: "2024-03-12", to: "2024-04-02", want: []string{"res-002", "res-003"}},
		{name: "from equals reservation date", from: "2024-03-10", to: "2024-03-10", want: []string{"res-001"}},
		{name: "unparseable bound is ignored", from: "not-a-date", want: []string{"res-001", "res-002", "res-003", "res-004"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterReservations(list, FilterCriteria{DateFrom: tc.from, DateTo: tc.to})
			assertIDs(t, got, tc.want...)
		})
	}
}

func TestFilter_PassengerRange(t *testing.T) {
	t.Parallel()

	list := sampleReservations()

	testCases := []struct {
		name     string
		min, max string
		want     []string
	}{
		{name: "min only", min: "4", want: []string{"res-002", "res-004"}},
		{name: "max only", max: "3", want: []string{"res-001", "res-003"}},
		{name: "min and max", min: "3", max: "4", want: []string{"res-001", "res-002", "res-003"}},
		{name: "loose input keeps leading digits", min: "4 people", want: []string{"res-002", "res-004"}},
		{name: "no leading digits means no constraint", min: "abc", want: []string{"res-001", "res-002", "res-003", "res-004"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterReservations(list, FilterCriteria{MinPassengers: tc.min, MaxPassengers: tc.max})
			assertIDs(t, got, tc.want...)
		})
	}
}

func TestFilter_CombinedCriteria(t *testing.T) {
	t.Parallel()

	list := sampleReservations()

	// Search + status + date window, all must hold.
	got := FilterReservations(list, FilterCriteria{
		SearchTerm:   "maria",
		StatusFilter: "confirmada",
		DateFrom:     "2024-04-01",
	})
	assertIDs(t, got, "res-003")
}

func TestParseLooseInt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "12", want: 12, wantOK: true},
		{in: "12ab", want: 12, wantOK: true},
		{in: "  7 ", want: 7, wantOK: true},
		{in: "+3", want: 3, wantOK: true},
		{in: "-5", want: -5, wantOK: true},
		{in: "", wantOK: false},
		{in: "abc", wantOK: false},
		{in: "-", wantOK: false},
	}

	for _, tc := range testCases {
		got, ok := parseLooseInt(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("parseLooseInt(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}
