package domain

import "time"

// Feedback is a client rating for a completed reservation. A reservation may
// only be rated once, and only after it has been completed.
type Feedback struct {
	ID            string
	ReservationID string
	Rating        int // 1-5
	Comment       string
	CreatedAt     time.Time
}
