package repository

import (
	"context"

	"tourops/internal/domain"
)

// FeedbackRepository defines the persistence operations for client feedback.
type FeedbackRepository interface {
	// Create persists a new feedback entry.
	Create(ctx context.Context, feedback *domain.Feedback) error

	// GetByReservationID retrieves the feedback left for a reservation.
	GetByReservationID(ctx context.Context, reservationID string) (*domain.Feedback, error)

	// GetAll retrieves all feedback entries.
	GetAll(ctx context.Context) ([]*domain.Feedback, error)
}
