package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// TransactionFilter narrows transaction queries.
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	// IncludeIgnored keeps ignored transactions in the result set.
	IncludeIgnored bool
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByOwner retrieves transactions for an owner matching the filter.
	FindByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindByMonth retrieves an owner's transactions dated within the given month.
	FindByMonth(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) ([]*entity.Transaction, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// UpdateBatch persists a batch of modified transactions.
	UpdateBatch(ctx context.Context, transactions []*entity.Transaction) error
}
