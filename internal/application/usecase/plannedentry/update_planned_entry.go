package plannedentry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// UpdatePlannedEntryInput represents the input for planned entry update.
// Nil pointer fields are left unchanged.
type UpdatePlannedEntryInput struct {
	EntryID   uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID

	CategoryID         *uuid.UUID
	Description        *string
	DescriptionPattern *string
	AmountMin          *decimal.Decimal
	AmountMax          *decimal.Decimal
	ExpectedDayStart   *int
	ExpectedDayEnd     *int
	IsRecurrent        *bool
}

// UpdatePlannedEntryOutput represents the output of planned entry update.
type UpdatePlannedEntryOutput struct {
	Entry *entity.PlannedEntry
}

// UpdatePlannedEntryUseCase handles planned entry updates. Status
// history is untouched; editing the definition never rewrites past
// months.
type UpdatePlannedEntryUseCase struct {
	entryRepo    adapter.PlannedEntryRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdatePlannedEntryUseCase creates a new UpdatePlannedEntryUseCase instance.
func NewUpdatePlannedEntryUseCase(
	entryRepo adapter.PlannedEntryRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdatePlannedEntryUseCase {
	return &UpdatePlannedEntryUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the planned entry update.
func (uc *UpdatePlannedEntryUseCase) Execute(ctx context.Context, input UpdatePlannedEntryInput) (*UpdatePlannedEntryOutput, error) {
	entry, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}
	if entry.OwnerType != input.OwnerType || entry.OwnerID != input.OwnerID {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeNotAuthorizedEntry,
			"planned entry does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyEntry,
		)
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.OwnerType != input.OwnerType || category.OwnerID != input.OwnerID {
			return nil, domainerror.NewPlannedEntryError(
				domainerror.ErrCodeNotAuthorizedEntry,
				"category does not belong to caller",
				domainerror.ErrNotAuthorizedToModifyEntry,
			)
		}
		entry.CategoryID = *input.CategoryID
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.DescriptionPattern != nil {
		entry.DescriptionPattern = *input.DescriptionPattern
	}

	amountMin, amountMax := entry.AmountMin, entry.AmountMax
	if input.AmountMin != nil {
		amountMin = *input.AmountMin
	}
	if input.AmountMax != nil {
		amountMax = *input.AmountMax
	}
	if err := validateAmountRange(amountMin, amountMax); err != nil {
		return nil, err
	}
	if amountMax.IsZero() {
		amountMax = amountMin
	}
	entry.AmountMin, entry.AmountMax = amountMin, amountMax

	dayStart, dayEnd := entry.ExpectedDayStart, entry.ExpectedDayEnd
	if input.ExpectedDayStart != nil {
		dayStart = *input.ExpectedDayStart
	}
	if input.ExpectedDayEnd != nil {
		dayEnd = *input.ExpectedDayEnd
	}
	if err := validateDayRange(dayStart, dayEnd); err != nil {
		return nil, err
	}
	if dayEnd == 0 {
		dayEnd = dayStart
	}
	entry.ExpectedDayStart, entry.ExpectedDayEnd = dayStart, dayEnd

	if input.IsRecurrent != nil {
		entry.IsRecurrent = *input.IsRecurrent
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return &UpdatePlannedEntryOutput{Entry: entry}, nil
}
