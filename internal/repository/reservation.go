package repository

import (
	"context"

	"tourops/internal/domain"
)

// ReservationRepository defines the persistence operations for reservations.
type ReservationRepository interface {
	// Create persists a new reservation with its groups and tourists.
	Create(ctx context.Context, reservation *domain.Reservation) error

	// GetByID retrieves a reservation by ID.
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)

	// GetAll retrieves all reservations ordered by tour date, then departure time.
	GetAll(ctx context.Context) ([]*domain.Reservation, error)

	// Update updates an existing reservation.
	Update(ctx context.Context, reservation *domain.Reservation) error
}
