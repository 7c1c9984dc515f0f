package domain

import "time"

// Guide represents a tour guide managed by the back office.
type Guide struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Languages []string
	Active    bool
	CreatedAt time.Time
}
