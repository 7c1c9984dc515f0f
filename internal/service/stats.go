package service

import "tourops/internal/domain"

// ExportStats summarizes a filtered reservation list. It is recomputed from
// the filtered (not paginated) list on every criteria change, so it always
// reflects all matching records regardless of the visible page.
type ExportStats struct {
	TotalReservations int
	TotalTourists     int
	TotalRevenue      float64
	AvgTicket         float64
}

// Aggregate reduces a reservation list into summary statistics. An empty list
// yields all-zero stats; the average is never a division by zero.
func Aggregate(list []*domain.Reservation) ExportStats {
	stats := ExportStats{TotalReservations: len(list)}
	for _, reservation := range list {
		stats.TotalTourists += reservation.TotalPassengers()
		stats.TotalRevenue += reservation.Total
	}
	if stats.TotalReservations > 0 {
		stats.AvgTicket = stats.TotalRevenue / float64(stats.TotalReservations)
	}
	return stats
}
