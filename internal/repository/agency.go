package repository

import (
	"context"

	"tourops/internal/domain"
)

// AgencyRepository defines the persistence operations for partner agencies.
type AgencyRepository interface {
	// Create persists a new agency.
	Create(ctx context.Context, agency *domain.Agency) error

	// GetByID retrieves an agency by ID.
	GetByID(ctx context.Context, id string) (*domain.Agency, error)

	// GetAll retrieves all agencies.
	GetAll(ctx context.Context) ([]*domain.Agency, error)

	// Update updates an existing agency.
	Update(ctx context.Context, agency *domain.Agency) error
}
