package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tourops/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationReservationCreated NotificationType = "RESERVATION_CREATED"
	NotificationStatusChanged      NotificationType = "STATUS_CHANGED"
	NotificationPaymentUpdated     NotificationType = "PAYMENT_UPDATED"
	NotificationVoucherSent        NotificationType = "VOUCHER_SENT"
	NotificationFeedbackReceived   NotificationType = "FEEDBACK_RECEIVED"
)

// Notification represents a notification to be delivered to the back office.
type Notification struct {
	ID            string
	Type          NotificationType
	ReservationID string
	Message       string
	CreatedAt     time.Time
}

// NotificationService handles notification delivery. It currently logs the
// events; a push or e-mail channel can be plugged in behind the same calls.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyReservationCreated notifies the back office of a new reservation.
func (s *NotificationService) NotifyReservationCreated(ctx context.Context, reservation *domain.Reservation) error {
	return s.send(ctx, Notification{
		ID:            uuid.New().String(),
		Type:          NotificationReservationCreated,
		ReservationID: reservation.ID,
		Message:       fmt.Sprintf("Nueva reserva de %s para %s", reservation.ClientName, reservation.TourName),
		CreatedAt:     time.Now(),
	})
}

// NotifyStatusChanged notifies a reservation lifecycle transition.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, reservation *domain.Reservation, previous domain.ReservationStatus) error {
	return s.send(ctx, Notification{
		ID:            uuid.New().String(),
		Type:          NotificationStatusChanged,
		ReservationID: reservation.ID,
		Message:       fmt.Sprintf("Reserva %s: %s -> %s", reservation.ID, previous, reservation.Status),
		CreatedAt:     time.Now(),
	})
}

// NotifyPaymentUpdated notifies a payment status change.
func (s *NotificationService) NotifyPaymentUpdated(ctx context.Context, reservation *domain.Reservation) error {
	return s.send(ctx, Notification{
		ID:            uuid.New().String(),
		Type:          NotificationPaymentUpdated,
		ReservationID: reservation.ID,
		Message:       fmt.Sprintf("Pago de la reserva %s: %s", reservation.ID, reservation.PaymentStatus),
		CreatedAt:     time.Now(),
	})
}

// NotifyVoucherSent notifies that a voucher was e-mailed to the client.
func (s *NotificationService) NotifyVoucherSent(ctx context.Context, reservation *domain.Reservation) error {
	return s.send(ctx, Notification{
		ID:            uuid.New().String(),
		Type:          NotificationVoucherSent,
		ReservationID: reservation.ID,
		Message:       fmt.Sprintf("Voucher de la reserva %s enviado a %s", reservation.ID, reservation.ClientEmail),
		CreatedAt:     time.Now(),
	})
}

// NotifyFeedbackReceived notifies that a client rated a reservation.
func (s *NotificationService) NotifyFeedbackReceived(ctx context.Context, feedback *domain.Feedback) error {
	return s.send(ctx, Notification{
		ID:            uuid.New().String(),
		Type:          NotificationFeedbackReceived,
		ReservationID: feedback.ReservationID,
		Message:       fmt.Sprintf("Reserva %s calificada con %d/5", feedback.ReservationID, feedback.Rating),
		CreatedAt:     time.Now(),
	})
}

func (s *NotificationService) send(_ context.Context, n Notification) error {
	log.Printf("[NOTIFICATION] type=%s reservation=%s message=%q", n.Type, n.ReservationID, n.Message)
	return nil
}
