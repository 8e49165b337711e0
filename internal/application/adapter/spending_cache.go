package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// SpendingCache caches per-month spending reports. Any status or
// transaction mutation for a month must invalidate its cached report.
type SpendingCache interface {
	// Get retrieves the cached report for an owner and month, if present.
	Get(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) (*valueobject.SpendingReport, error)

	// Set stores a report for an owner and month.
	Set(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int, report *valueobject.SpendingReport) error

	// Invalidate drops the cached report for an owner and month.
	Invalidate(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) error
}
