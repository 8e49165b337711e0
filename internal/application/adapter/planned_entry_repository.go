package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// PlannedEntryRepository defines the interface for planned entry persistence operations.
type PlannedEntryRepository interface {
	// Create creates a new planned entry in the database.
	Create(ctx context.Context, entry *entity.PlannedEntry) error

	// FindByID retrieves a planned entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PlannedEntry, error)

	// FindActiveByOwner retrieves all active planned entries for an owner.
	FindActiveByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID) ([]*entity.PlannedEntry, error)

	// FindRecurrentTemplates retrieves active recurring templates (entries
	// without a parent) for an owner.
	FindRecurrentTemplates(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID) ([]*entity.PlannedEntry, error)

	// FindInstanceOfTemplate retrieves the month instance generated from a
	// recurring template, if one exists.
	FindInstanceOfTemplate(ctx context.Context, parentEntryID uuid.UUID, month, year int) (*entity.PlannedEntry, error)

	// FindByCategoryAndMonth retrieves an owner's entries for a category
	// relevant to the given month.
	FindByCategoryAndMonth(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, categoryID uuid.UUID, month, year int) ([]*entity.PlannedEntry, error)

	// Update updates an existing planned entry in the database.
	Update(ctx context.Context, entry *entity.PlannedEntry) error

	// Deactivate soft-deletes a planned entry, keeping its status history.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// PlannedEntryStatusRepository defines persistence for per-month entry statuses.
type PlannedEntryStatusRepository interface {
	// Create inserts a status record. Fails if one already exists for
	// (entry, month, year).
	Create(ctx context.Context, status *entity.PlannedEntryStatus) error

	// FindByEntryAndMonth retrieves the status record for an entry and month.
	FindByEntryAndMonth(ctx context.Context, entryID uuid.UUID, month, year int) (*entity.PlannedEntryStatus, error)

	// FindByMonth retrieves all status records of the given entries for a month.
	FindByMonth(ctx context.Context, entryIDs []uuid.UUID, month, year int) ([]*entity.PlannedEntryStatus, error)

	// FindByMatchedTransaction retrieves the status, if any, holding a
	// match to the transaction in the given month.
	FindByMatchedTransaction(ctx context.Context, transactionID uuid.UUID, month, year int) (*entity.PlannedEntryStatus, error)

	// UpdateWithGuard persists a status mutation only if the stored
	// record is still in expectedStatus. Returns ErrStaleStatus when the
	// guard fails, enforcing the at-most-one-match invariant under
	// concurrent writers.
	UpdateWithGuard(ctx context.Context, status *entity.PlannedEntryStatus, expectedStatus entity.EntryStatus) error
}
