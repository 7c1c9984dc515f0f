package domain

import "time"

// Agency represents a partner agency that sends clients to the operator.
type Agency struct {
	ID          string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Commission  float64 // percentage, 0-100
	CreatedAt   time.Time
}
