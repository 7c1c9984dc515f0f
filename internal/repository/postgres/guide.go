package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"tourops/internal/domain"
	"tourops/internal/repository"
)

// GuideRepository is a PostgreSQL implementation of repository.GuideRepository.
type GuideRepository struct {
	q Querier
}

// NewGuideRepository creates a new PostgreSQL guide repository.
func NewGuideRepository(db *sql.DB) *GuideRepository {
	return &GuideRepository{q: db}
}

// Create persists a new guide.
func (r *GuideRepository) Create(ctx context.Context, guide *domain.Guide) error {
	query := `
		INSERT INTO guides (id, name, phone, email, languages, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		guide.ID,
		guide.Name,
		guide.Phone,
		guide.Email,
		pq.Array(guide.Languages),
		guide.Active,
		guide.CreatedAt,
	)
	return err
}

// GetByID retrieves a guide by ID.
func (r *GuideRepository) GetByID(ctx context.Context, id string) (*domain.Guide, error) {
	query := `SELECT id, name, phone, email, languages, active, created_at FROM guides WHERE id = $1`

	var guide domain.Guide
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&guide.ID,
		&guide.Name,
		&guide.Phone,
		&guide.Email,
		pq.Array(&guide.Languages),
		&guide.Active,
		&guide.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &guide, nil
}

// GetAll retrieves all guides ordered by name.
func (r *GuideRepository) GetAll(ctx context.Context) ([]*domain.Guide, error) {
	query := `SELECT id, name, phone, email, languages, active, created_at FROM guides ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []*domain.Guide
	for rows.Next() {
		var guide domain.Guide
		if err := rows.Scan(
			&guide.ID,
			&guide.Name,
			&guide.Phone,
			&guide.Email,
			pq.Array(&guide.Languages),
			&guide.Active,
			&guide.CreatedAt,
		); err != nil {
			return nil, err
		}
		guides = append(guides, &guide)
	}
	return guides, rows.Err()
}

// Update updates an existing guide.
func (r *GuideRepository) Update(ctx context.Context, guide *domain.Guide) error {
	query := `
		UPDATE guides
		SET name = $1, phone = $2, email = $3, languages = $4, active = $5
		WHERE id = $6
	`
	result, err := r.q.ExecContext(ctx, query,
		guide.Name,
		guide.Phone,
		guide.Email,
		pq.Array(guide.Languages),
		guide.Active,
		guide.ID,
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
