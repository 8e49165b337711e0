package plannedentry

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// DeactivatePlannedEntryInput represents the input for deactivation.
type DeactivatePlannedEntryInput struct {
	EntryID   uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
}

// DeactivatePlannedEntryUseCase soft-deletes a planned entry. Entries
// are never hard-deleted while referenced by status history.
type DeactivatePlannedEntryUseCase struct {
	entryRepo adapter.PlannedEntryRepository
}

// NewDeactivatePlannedEntryUseCase creates a new DeactivatePlannedEntryUseCase instance.
func NewDeactivatePlannedEntryUseCase(entryRepo adapter.PlannedEntryRepository) *DeactivatePlannedEntryUseCase {
	return &DeactivatePlannedEntryUseCase{entryRepo: entryRepo}
}

// Execute deactivates the entry.
func (uc *DeactivatePlannedEntryUseCase) Execute(ctx context.Context, input DeactivatePlannedEntryInput) error {
	entry, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return err
	}
	if entry.OwnerType != input.OwnerType || entry.OwnerID != input.OwnerID {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeNotAuthorizedEntry,
			"planned entry does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyEntry,
		)
	}

	return uc.entryRepo.Deactivate(ctx, entry.ID)
}
