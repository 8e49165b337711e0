package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// AdvancedPatternRepository defines the interface for pattern persistence operations.
type AdvancedPatternRepository interface {
	// Create creates a new pattern in the database.
	Create(ctx context.Context, pattern *entity.AdvancedPattern) error

	// FindByID retrieves a pattern by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdvancedPattern, error)

	// FindActiveByOwner retrieves all active patterns for an owner.
	FindActiveByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID) ([]*entity.AdvancedPattern, error)

	// Update updates an existing pattern in the database.
	Update(ctx context.Context, pattern *entity.AdvancedPattern) error

	// Delete soft-deletes a pattern.
	Delete(ctx context.Context, id uuid.UUID) error
}
