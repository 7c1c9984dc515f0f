package service

import (
	"strings"
	"time"

	"tourops/internal/domain"
)

// FilterCriteria holds the active constraints narrowing a reservation list.
// Every field is a raw form input: an empty or unparseable value means "no
// constraint", never zero. Criteria are ephemeral and rebuilt per query.
type FilterCriteria struct {
	SearchTerm     string
	StatusFilter   string // "" or "all" = no constraint
	DateFrom       string // YYYY-MM-DD
	DateTo         string // YYYY-MM-DD, inclusive whole day
	CustomerFilter string
	MinPassengers  string
	MaxPassengers  string
}

// IsEmpty reports whether no constraint is active.
func (c FilterCriteria) IsEmpty() bool {
	return c.SearchTerm == "" &&
		(c.StatusFilter == "" || c.StatusFilter == "all") &&
		c.DateFrom == "" && c.DateTo == "" &&
		c.CustomerFilter == "" &&
		c.MinPassengers == "" && c.MaxPassengers == ""
}

// FilterReservations applies every active criterion with AND semantics and
// returns the matching reservations in their original order. Empty criteria
// act as the identity filter. Invalid criteria never produce an error; they
// are treated as absent.
func FilterReservations(reservations []*domain.Reservation, criteria FilterCriteria) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		if matchesAll(reservation, criteria) {
			out = append(out, reservation)
		}
	}
	return out
}

func matchesAll(r *domain.Reservation, c FilterCriteria) bool {
	return matchesText(r, c.SearchTerm) &&
		matchesStatus(r, c.StatusFilter) &&
		matchesDateRange(r, c.DateFrom, c.DateTo) &&
		matchesCustomer(r, c.CustomerFilter) &&
		matchesPassengerRange(r, c.MinPassengers, c.MaxPassengers)
}

// matchesText is a case-insensitive substring test against the tour name,
// client name and reservation ID.
func matchesText(r *domain.Reservation, term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.TourName), t) ||
		strings.Contains(strings.ToLower(r.ClientName), t) ||
		strings.Contains(strings.ToLower(r.ID), t)
}

// matchesStatus requires an exact status match; "all" disables the filter.
func matchesStatus(r *domain.Reservation, filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	return string(r.Status) == filter
}

// matchesDateRange checks the reservation date against an optional range.
// The lower bound is the exact start of dateFrom; the upper bound is dateTo
// extended to 23:59:59.999, so a date-only dateTo covers its whole day. The
// asymmetry is intentional: callers pass raw date-only strings.
func matchesDateRange(r *domain.Reservation, fromStr, toStr string) bool {
	if from, ok := parseDate(fromStr); ok && r.Date.Before(from) {
		return false
	}
	if to, ok := parseDate(toStr); ok {
		endOfDay := to.Add(24*time.Hour - time.Millisecond)
		if r.Date.After(endOfDay) {
			return false
		}
	}
	return true
}

// matchesCustomer is a case-insensitive substring test against the client name.
func matchesCustomer(r *domain.Reservation, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.ClientName), strings.ToLower(filter))
}

// matchesPassengerRange checks adults+children against optional min/max bounds.
func matchesPassengerRange(r *domain.Reservation, minStr, maxStr string) bool {
	passengers := r.TotalPassengers()
	if min, ok := parseLooseInt(minStr); ok && passengers < min {
		return false
	}
	if max, ok := parseLooseInt(maxStr); ok && passengers > max {
		return false
	}
	return true
}

// parseDate parses a YYYY-MM-DD criteria value. Anything unparseable counts
// as "no constraint".
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseLooseInt parses the leading integer of a form input, the way the
// dashboard's number fields coerce their values. "12ab" parses as 12; a value
// with no leading digits counts as "no constraint".
func parseLooseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	i := 0
	negative := false
	if s[0] == '+' || s[0] == '-' {
		negative = s[0] == '-'
		i++
	}

	n := 0
	digits := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}
