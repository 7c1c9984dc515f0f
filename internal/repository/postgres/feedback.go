package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
	"tourops/internal/repository"
)

// FeedbackRepository is a PostgreSQL implementation of repository.FeedbackRepository.
type FeedbackRepository struct {
	q Querier
}

// NewFeedbackRepository creates a new PostgreSQL feedback repository.
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{q: db}
}

// Create persists a new feedback entry.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, reservation_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query,
		feedback.ID,
		feedback.ReservationID,
		feedback.Rating,
		nullString(feedback.Comment),
		feedback.CreatedAt,
	)
	return err
}

// GetByReservationID retrieves the feedback left for a reservation.
func (r *FeedbackRepository) GetByReservationID(ctx context.Context, reservationID string) (*domain.Feedback, error) {
	query := `SELECT id, reservation_id, rating, comment, created_at FROM feedback WHERE reservation_id = $1`

	feedback, err := scanFeedback(r.q.QueryRowContext(ctx, query, reservationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return feedback, nil
}

// GetAll retrieves all feedback entries, newest first.
func (r *FeedbackRepository) GetAll(ctx context.Context) ([]*domain.Feedback, error) {
	query := `SELECT id, reservation_id, rating, comment, created_at FROM feedback ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Feedback
	for rows.Next() {
		feedback, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, feedback)
	}
	return entries, rows.Err()
}

func scanFeedback(s scanner) (*domain.Feedback, error) {
	var feedback domain.Feedback
	var comment sql.NullString
	err := s.Scan(
		&feedback.ID,
		&feedback.ReservationID,
		&feedback.Rating,
		&comment,
		&feedback.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		feedback.Comment = comment.String
	}
	return &feedback, nil
}
