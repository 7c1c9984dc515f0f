package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
	"tourops/internal/repository"
)

// AgencyRepository is a PostgreSQL implementation of repository.AgencyRepository.
type AgencyRepository struct {
	q Querier
}

// NewAgencyRepository creates a new PostgreSQL agency repository.
func NewAgencyRepository(db *sql.DB) *AgencyRepository {
	return &AgencyRepository{q: db}
}

// Create persists a new agency.
func (r *AgencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	query := `
		INSERT INTO agencies (id, name, contact_name, phone, email, commission, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		agency.ID,
		agency.Name,
		agency.ContactName,
		agency.Phone,
		agency.Email,
		agency.Commission,
		agency.CreatedAt,
	)
	return err
}

// GetByID retrieves an agency by ID.
func (r *AgencyRepository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	query := `SELECT id, name, contact_name, phone, email, commission, created_at FROM agencies WHERE id = $1`

	var agency domain.Agency
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&agency.ID,
		&agency.Name,
		&agency.ContactName,
		&agency.Phone,
		&agency.Email,
		&agency.Commission,
		&agency.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &agency, nil
}

// GetAll retrieves all agencies ordered by name.
func (r *AgencyRepository) GetAll(ctx context.Context) ([]*domain.Agency, error) {
	query := `SELECT id, name, contact_name, phone, email, commission, created_at FROM agencies ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agencies []*domain.Agency
	for rows.Next() {
		var agency domain.Agency
		if err := rows.Scan(
			&agency.ID,
			&agency.Name,
			&agency.ContactName,
			&agency.Phone,
			&agency.Email,
			&agency.Commission,
			&agency.CreatedAt,
		); err != nil {
			return nil, err
		}
		agencies = append(agencies, &agency)
	}
	return agencies, rows.Err()
}

// Update updates an existing agency.
func (r *AgencyRepository) Update(ctx context.Context, agency *domain.Agency) error {
	query := `
		UPDATE agencies
		SET name = $1, contact_name = $2, phone = $3, email = $4, commission = $5
		WHERE id = $6
	`
	result, err := r.q.ExecContext(ctx, query,
		agency.Name,
		agency.ContactName,
		agency.Phone,
		agency.Email,
		agency.Commission,
		agency.ID,
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
	return nil
}
