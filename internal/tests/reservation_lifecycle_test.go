package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourops/internal/domain"
	"tourops/internal/repository"
	"tourops/internal/service"
)

func validReservation() *domain.Reservation {
	return &domain.Reservation{
		TourName:       "Valle Sagrado",
		Date:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:           "07:30",
		ClientName:     "Maria Lopez",
		ClientPhone:    "+51 999 888 777",
		PickupLocation: "Plaza de Armas",
		Adults:         2,
		Children:       1,
		Total:          150,
	}
}

func newReservationService(repo *MockReservationRepository, cache *MockReservationCache) *service.ReservationService {
	return service.NewReservationService(repo, cache, nil)
}

// ──────────────────────────────────────────────
// 1. RESERVATION CREATION
// ──────────────────────────────────────────────

func TestReservationCreation_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	svc := newReservationService(repo, NewMockReservationCache())

	reservation := validReservation()
	if err := svc.Create(context.Background(), reservation); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if reservation.ID == "" {
		t.Error("expected reservation ID to be assigned")
	}
	if reservation.Status != domain.ReservationStatusPending {
		t.Errorf("expected status pendiente, got %s", reservation.Status)
	}
	if reservation.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected payment status pendiente, got %s", reservation.PaymentStatus)
	}
	if reservation.IsRated {
		t.Error("new reservations must not be rated")
	}
	if repo.CreateCallCount != 1 {
		t.Errorf("expected Create to be called once, called %d times", repo.CreateCallCount)
	}
}

func TestReservationCreation_InvalidInput_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*domain.Reservation)
		wantErr error
	}{
		{
			name:    "missing client name",
			mutate:  func(r *domain.Reservation) { r.ClientName = "" },
			wantErr: service.ErrInvalidClientName,
		},
		{
			name:    "missing client phone",
			mutate:  func(r *domain.Reservation) { r.ClientPhone = "" },
			wantErr: service.ErrInvalidClientPhone,
		},
		{
			name:    "missing tour name",
			mutate:  func(r *domain.Reservation) { r.TourName = "" },
			wantErr: service.ErrInvalidTourName,
		},
		{
			name:    "zero date",
			mutate:  func(r *domain.Reservation) { r.Date = time.Time{} },
			wantErr: service.ErrInvalidDate,
		},
		{
			name:    "no adults",
			mutate:  func(r *domain.Reservation) { r.Adults = 0 },
			wantErr: service.ErrInvalidAdults,
		},
		{
			name:    "negative children",
			mutate:  func(r *domain.Reservation) { r.Children = -1 },
			wantErr: service.ErrInvalidChildren,
		},
		{
			name:    "negative total",
			mutate:  func(r *domain.Reservation) { r.Total = -10 },
			wantErr: service.ErrInvalidTotal,
		},
		{
			name:    "unknown status",
			mutate:  func(r *domain.Reservation) { r.Status = "programada" },
			wantErr: service.ErrInvalidStatus,
		},
		{
			name:    "unknown payment status",
			mutate:  func(r *domain.Reservation) { r.PaymentStatus = "debe" },
			wantErr: service.ErrInvalidPaymentStatus,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := NewMockReservationRepository()
			svc := newReservationService(repo, NewMockReservationCache())

			reservation := validReservation()
			tc.mutate(reservation)

			err := svc.Create(context.Background(), reservation)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
			if repo.CreateCallCount != 0 {
				t.Error("rejected reservations must not reach the repository")
			}
		})
	}
}

func TestReservationCreation_ZeroTotalIsAllowed(t *testing.T) {
	t.Parallel()

	// Courtesy bookings carry a zero total.
	repo := NewMockReservationRepository()
	svc := newReservationService(repo, NewMockReservationCache())

	reservation := validReservation()
	reservation.Total = 0
	if err := svc.Create(context.Background(), reservation); err != nil {
		t.Fatalf("expected no error for zero total, got: %v", err)
	}
}

func TestReservationCreation_RepositoryFailurePropagates(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	repo.CreateError = ErrMockDBConstraint
	svc := newReservationService(repo, NewMockReservationCache())

	err := svc.Create(context.Background(), validReservation())
	if !errors.Is(err, ErrMockDBConstraint) {
		t.Fatalf("expected repository error to propagate, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. STATUS TRANSITIONS
// ──────────────────────────────────────────────

func seedReservation(repo *MockReservationRepository, status domain.ReservationStatus) *domain.Reservation {
	reservation := validReservation()
	reservation.ID = "res-100"
	reservation.Status = status
	reservation.PaymentStatus = domain.PaymentStatusPending
	repo.AddReservation(reservation)
	return reservation
}

func TestStatusChange_PendingToConfirmed(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedReservation(repo, domain.ReservationStatusPending)
	svc := newReservationService(repo, NewMockReservationCache())

	updated, err := svc.ChangeStatus(context.Background(), "res-100", domain.ReservationStatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ReservationStatusConfirmed {
		t.Errorf("expected confirmada, got %s", updated.Status)
	}
	if repo.GetReservation("res-100").Status != domain.ReservationStatusConfirmed {
		t.Error("expected the new status to be persisted")
	}
}

func TestStatusChange_TerminalStatesAreFinal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		current domain.ReservationStatus
		wantErr error
	}{
		{name: "cancelled is final", current: domain.ReservationStatusCancelled, wantErr: service.ErrReservationCancelled},
		{name: "completed is final", current: domain.ReservationStatusCompleted, wantErr: service.ErrReservationCompleted},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := NewMockReservationRepository()
			seedReservation(repo, tc.current)
			svc := newReservationService(repo, NewMockReservationCache())

			_, err := svc.ChangeStatus(context.Background(), "res-100", domain.ReservationStatusConfirmed)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
			if repo.UpdateCallCount != 0 {
				t.Error("terminal reservations must not be updated")
			}
		})
	}
}

func TestStatusChange_SameStatusIsNoOp(t *testing.T) {
	t.Parallel()

	// Re-applying the current status succeeds without touching the store,
	// including on terminal states.
	repo := NewMockReservationRepository()
	seedReservation(repo, domain.ReservationStatusCancelled)
	svc := newReservationService(repo, NewMockReservationCache())

	updated, err := svc.ChangeStatus(context.Background(), "res-100", domain.ReservationStatusCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ReservationStatusCancelled {
		t.Errorf("expected cancelada, got %s", updated.Status)
	}
	if repo.UpdateCallCount != 0 {
		t.Error("no-op transitions must not write")
	}
}

func TestStatusChange_InvalidInputs(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedReservation(repo, domain.ReservationStatusPending)
	svc := newReservationService(repo, NewMockReservationCache())

	if _, err := svc.ChangeStatus(context.Background(), "", domain.ReservationStatusConfirmed); !errors.Is(err, service.ErrInvalidReservationID) {
		t.Errorf("expected ErrInvalidReservationID, got: %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), "res-100", "archivada"); !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got: %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), "res-404", domain.ReservationStatusConfirmed); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. PAYMENT UPDATES
// ──────────────────────────────────────────────

func TestPaymentUpdate_Succeeds(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedReservation(repo, domain.ReservationStatusConfirmed)
	svc := newReservationService(repo, NewMockReservationCache())

	updated, err := svc.UpdatePayment(context.Background(), "res-100", domain.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("expected pagado, got %s", updated.PaymentStatus)
	}
}

func TestPaymentUpdate_UnknownStatusRejected(t *testing.T) {
	t.Parallel()

	repo := NewMockReservationRepository()
	seedReservation(repo, domain.ReservationStatusConfirmed)
	svc := newReservationService(repo, NewMockReservationCache())

	_, err := svc.UpdatePayment(context.Background(), "res-100", "fiado")
	if !errors.Is(err, service.ErrInvalidPaymentStatus) {
		t.Fatalf("expected ErrInvalidPaymentStatus, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 4. FEEDBACK AND THE RATING INVARIANT
// ──────────────────────────────────────────────

func newFeedbackService(reservationRepo *MockReservationRepository, feedbackRepo *MockFeedbackRepository) *service.FeedbackService {
	reservationService := newReservationService(reservationRepo, NewMockReservationCache())
	return service.NewFeedbackService(feedbackRepo, reservationService, nil)
}

func TestFeedback_CompletedReservationCanBeRatedOnce(t *testing.T) {
	t.Parallel()

	reservationRepo := NewMockReservationRepository()
	seedReservation(reservationRepo, domain.ReservationStatusCompleted)
	feedbackRepo := NewMockFeedbackRepository()
	svc := newFeedbackService(reservationRepo, feedbackRepo)

	feedback, err := svc.Submit(context.Background(), "res-100", 5, "Excelente tour")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feedback.Rating != 5 {
		t.Errorf("expected rating 5, got %d", feedback.Rating)
	}
	if !reservationRepo.GetReservation("res-100").IsRated {
		t.Error("expected the reservation to be marked rated")
	}

	// Second rating of the same reservation must fail.
	_, err = svc.Submit(context.Background(), "res-100", 4, "")
	if !errors.Is(err, service.ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got: %v", err)
	}
	if feedbackRepo.CountEntries() != 1 {
		t.Errorf("expected a single feedback entry, got %d", feedbackRepo.CountEntries())
	}
}

func TestFeedback_OnlyCompletedReservations(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.ReservationStatus{
		domain.ReservationStatusPending,
		domain.ReservationStatusConfirmed,
		domain.ReservationStatusInProgress,
		domain.ReservationStatusCancelled,
	} {
		reservationRepo := NewMockReservationRepository()
		seedReservation(reservationRepo, status)
		svc := newFeedbackService(reservationRepo, NewMockFeedbackRepository())

		_, err := svc.Submit(context.Background(), "res-100", 5, "")
		if !errors.Is(err, service.ErrReservationNotCompleted) {
			t.Errorf("status %s: expected ErrReservationNotCompleted, got: %v", status, err)
		}
	}
}

func TestFeedback_FailedWriteLeavesReservationRetryable(t *testing.T) {
	t.Parallel()

	// The feedback row is written before the rated flag. A failed write must
	// leave the reservation unrated so the client can retry the submission.
	reservationRepo := NewMockReservationRepository()
	seedReservation(reservationRepo, domain.ReservationStatusCompleted)
	feedbackRepo := NewMockFeedbackRepository()
	feedbackRepo.CreateError = ErrMockTimeout
	svc := newFeedbackService(reservationRepo, feedbackRepo)

	_, err := svc.Submit(context.Background(), "res-100", 5, "Excelente tour")
	if !errors.Is(err, ErrMockTimeout) {
		t.Fatalf("expected the write error to propagate, got: %v", err)
	}
	if reservationRepo.GetReservation("res-100").IsRated {
		t.Fatal("a failed feedback write must not mark the reservation rated")
	}
	if feedbackRepo.CountEntries() != 0 {
		t.Fatalf("expected no stored feedback, got %d", feedbackRepo.CountEntries())
	}

	// The retry goes through once the store recovers.
	feedbackRepo.CreateError = nil
	feedback, err := svc.Submit(context.Background(), "res-100", 5, "Excelente tour")
	if err != nil {
		t.Fatalf("expected the retry to succeed, got: %v", err)
	}
	if feedback.Rating != 5 {
		t.Errorf("expected rating 5, got %d", feedback.Rating)
	}
	if !reservationRepo.GetReservation("res-100").IsRated {
		t.Error("expected the reservation to be marked rated after the retry")
	}
	if feedbackRepo.CountEntries() != 1 {
		t.Errorf("expected a single feedback entry, got %d", feedbackRepo.CountEntries())
	}
}

func TestFeedback_RatingOutOfRangeRejected(t *testing.T) {
	t.Parallel()

	reservationRepo := NewMockReservationRepository()
	seedReservation(reservationRepo, domain.ReservationStatusCompleted)
	svc := newFeedbackService(reservationRepo, NewMockFeedbackRepository())

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Submit(context.Background(), "res-100", rating, "")
		if !errors.Is(err, service.ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got: %v", rating, err)
		}
	}
}
