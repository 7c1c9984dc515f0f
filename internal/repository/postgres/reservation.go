package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
	"tourops/internal/repository"
)

// ReservationRepository is a PostgreSQL implementation of repository.ReservationRepository.
type ReservationRepository struct {
	q Querier
}

// NewReservationRepository creates a new PostgreSQL reservation repository.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{q: db}
}

// NewReservationRepositoryWithTx creates a reservation repository using a transaction.
func NewReservationRepositoryWithTx(tx *sql.Tx) *ReservationRepository {
	return &ReservationRepository{q: tx}
}

const reservationColumns = `
	id, tour_name, date, departure_time, client_name, client_phone, client_email,
	pickup_location, special_requirements, adults, children, total,
	price_per_adult, price_per_child, status, payment_status, is_rated,
	created_at, updated_at
`

// Create persists a new reservation with its groups and tourists.
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.q.ExecContext(ctx, query,
		reservation.ID,
		reservation.TourName,
		reservation.Date,
		reservation.Time,
		reservation.ClientName,
		reservation.ClientPhone,
		nullString(reservation.ClientEmail),
		reservation.PickupLocation,
		nullString(reservation.SpecialRequirements),
		reservation.Adults,
		reservation.Children,
		reservation.Total,
		nullFloat(reservation.PricePerAdult),
		nullFloat(reservation.PricePerChild),
		reservation.Status,
		reservation.PaymentStatus,
		reservation.IsRated,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return r.replaceParties(ctx, reservation)
}

// GetByID retrieves a reservation by ID.
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadParties(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// GetAll retrieves all reservations ordered by tour date, then departure time.
func (r *ReservationRepository) GetAll(ctx context.Context) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY date, departure_time, created_at`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, reservation := range reservations {
		if err := r.loadParties(ctx, reservation); err != nil {
			return nil, err
		}
	}
	return reservations, nil
}

// Update updates an existing reservation and replaces its groups and tourists.
func (r *ReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		UPDATE reservations
		SET tour_name = $1, date = $2, departure_time = $3, client_name = $4,
			client_phone = $5, client_email = $6, pickup_location = $7,
			special_requirements = $8, adults = $9, children = $10, total = $11,
			price_per_adult = $12, price_per_child = $13, status = $14,
			payment_status = $15, is_rated = $16, updated_at = $17
		WHERE id = $18
	`

	result, err := r.q.ExecContext(ctx, query,
		reservation.TourName,
		reservation.Date,
		reservation.Time,
		reservation.ClientName,
		reservation.ClientPhone,
		nullString(reservation.ClientEmail),
		reservation.PickupLocation,
		nullString(reservation.SpecialRequirements),
		reservation.Adults,
		reservation.Children,
		reservation.Total,
		nullFloat(reservation.PricePerAdult),
		nullFloat(reservation.PricePerChild),
		reservation.Status,
		reservation.PaymentStatus,
		reservation.IsRated,
		reservation.UpdatedAt,
		reservation.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return r.replaceParties(ctx, reservation)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(s scanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var clientEmail sql.NullString
	var specialRequirements sql.NullString
	var pricePerAdult sql.NullFloat64
	var pricePerChild sql.NullFloat64

	err := s.Scan(
		&reservation.ID,
		&reservation.TourName,
		&reservation.Date,
		&reservation.Time,
		&reservation.ClientName,
		&reservation.ClientPhone,
		&clientEmail,
		&reservation.PickupLocation,
		&specialRequirements,
		&reservation.Adults,
		&reservation.Children,
		&reservation.Total,
		&pricePerAdult,
		&pricePerChild,
		&reservation.Status,
		&reservation.PaymentStatus,
		&reservation.IsRated,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientEmail.Valid {
		reservation.ClientEmail = clientEmail.String
	}
	if specialRequirements.Valid {
		reservation.SpecialRequirements = specialRequirements.String
	}
	if pricePerAdult.Valid {
		reservation.PricePerAdult = pricePerAdult.Float64
	}
	if pricePerChild.Valid {
		reservation.PricePerChild = pricePerChild.Float64
	}

	return &reservation, nil
}

// loadParties loads the groups and tourists belonging to a reservation.
func (r *ReservationRepository) loadParties(ctx context.Context, reservation *domain.Reservation) error {
	rows, err := r.q.QueryContext(ctx, `
		SELECT representative_name, representative_phone, companions_count
		FROM reservation_groups WHERE reservation_id = $1 ORDER BY position
	`, reservation.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var group domain.TouristGroup
		if err := rows.Scan(&group.RepresentativeName, &group.RepresentativePhone, &group.CompanionsCount); err != nil {
			return err
		}
		reservation.Groups = append(reservation.Groups, group)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	touristRows, err := r.q.QueryContext(ctx, `
		SELECT name, document_number, age, phone
		FROM reservation_tourists WHERE reservation_id = $1 ORDER BY position
	`, reservation.ID)
	if err != nil {
		return err
	}
	defer touristRows.Close()

	for touristRows.Next() {
		var tourist domain.GroupMember
		var age sql.NullInt64
		var phone sql.NullString
		if err := touristRows.Scan(&tourist.Name, &tourist.DocumentNumber, &age, &phone); err != nil {
			return err
		}
		if age.Valid {
			tourist.Age = int(age.Int64)
		}
		if phone.Valid {
			tourist.Phone = phone.String
		}
		reservation.Tourists = append(reservation.Tourists, tourist)
	}
	return touristRows.Err()
}

// replaceParties rewrites the groups and tourists of a reservation.
func (r *ReservationRepository) replaceParties(ctx context.Context, reservation *domain.Reservation) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM reservation_groups WHERE reservation_id = $1`, reservation.ID); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM reservation_tourists WHERE reservation_id = $1`, reservation.ID); err != nil {
		return err
	}

	for i, group := range reservation.Groups {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO reservation_groups (reservation_id, position, representative_name, representative_phone, companions_count)
			VALUES ($1, $2, $3, $4, $5)
		`, reservation.ID, i, group.RepresentativeName, group.RepresentativePhone, group.CompanionsCount)
		if err != nil {
			return err
		}
	}

	for i, tourist := range reservation.Tourists {
		var age sql.NullInt64
		if tourist.Age > 0 {
			age = sql.NullInt64{Int64: int64(tourist.Age), Valid: true}
		}
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO reservation_tourists (reservation_id, position, name, document_number, age, phone)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, reservation.ID, i, tourist.Name, tourist.DocumentNumber, age, nullString(tourist.Phone))
		if err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
