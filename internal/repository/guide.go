package repository

import (
	"context"

	"tourops/internal/domain"
)

// GuideRepository defines the persistence operations for guides.
type GuideRepository interface {
	// Create persists a new guide.
	Create(ctx context.Context, guide *domain.Guide) error

	// GetByID retrieves a guide by ID.
	GetByID(ctx context.Context, id string) (*domain.Guide, error)

	// GetAll retrieves all guides.
	GetAll(ctx context.Context) ([]*domain.Guide, error)

	// Update updates an existing guide.
	Update(ctx context.Context, guide *domain.Guide) error
}
