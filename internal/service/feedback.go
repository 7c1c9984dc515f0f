package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tourops/internal/domain"
	"tourops/internal/repository"
)

// FeedbackService handles client ratings for completed reservations.
type FeedbackService struct {
	feedbackRepo       repository.FeedbackRepository
	reservationService *ReservationService
	notifier           *NotificationService
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	reservationService *ReservationService,
	notifier *NotificationService,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo:       feedbackRepo,
		reservationService: reservationService,
		notifier:           notifier,
	}
}

// Submit records feedback for a reservation and marks it rated. The
// reservation must be completed and not yet rated. The feedback row is
// written before the rated flag, so a failed write leaves the reservation
// unrated and the submission retryable.
func (s *FeedbackService) Submit(ctx context.Context, reservationID string, rating int, comment string) (*domain.Feedback, error) {
	if reservationID == "" {
		return nil, ErrInvalidReservationID
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	reservation, err := s.reservationService.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != domain.ReservationStatusCompleted {
		return nil, ErrReservationNotCompleted
	}
	if reservation.IsRated {
		return nil, ErrAlreadyRated
	}

	feedback := &domain.Feedback{
		ID:            uuid.New().String(),
		ReservationID: reservationID,
		Rating:        rating,
		Comment:       comment,
		CreatedAt:     time.Now(),
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	if err := s.reservationService.MarkRated(ctx, reservation); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyFeedbackReceived(ctx, feedback)
	}
	return feedback, nil
}
