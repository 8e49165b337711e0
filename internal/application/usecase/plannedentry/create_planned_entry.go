// Package plannedentry contains planned entry use cases.
package plannedentry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// CreatePlannedEntryInput represents the input for planned entry creation.
// AmountMax left zero means a single-amount entry (AmountMin is used for
// both bounds); ExpectedDayEnd left zero mirrors ExpectedDayStart.
type CreatePlannedEntryInput struct {
	OwnerType          entity.OwnerType
	OwnerID            uuid.UUID
	CategoryID         uuid.UUID
	Description        string
	DescriptionPattern string
	AmountMin          decimal.Decimal
	AmountMax          decimal.Decimal
	ExpectedDayStart   int
	ExpectedDayEnd     int
	Type               entity.EntryType
	IsRecurrent        bool
}

// CreatePlannedEntryOutput represents the output of planned entry creation.
type CreatePlannedEntryOutput struct {
	Entry *entity.PlannedEntry
}

// CreatePlannedEntryUseCase handles planned entry creation logic.
type CreatePlannedEntryUseCase struct {
	entryRepo    adapter.PlannedEntryRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreatePlannedEntryUseCase creates a new CreatePlannedEntryUseCase instance.
func NewCreatePlannedEntryUseCase(
	entryRepo adapter.PlannedEntryRepository,
	categoryRepo adapter.CategoryRepository,
) *CreatePlannedEntryUseCase {
	return &CreatePlannedEntryUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the planned entry creation.
func (uc *CreatePlannedEntryUseCase) Execute(ctx context.Context, input CreatePlannedEntryInput) (*CreatePlannedEntryOutput, error) {
	if input.Type != entity.EntryTypeExpense && input.Type != entity.EntryTypeIncome {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidEntryType,
			"entry type must be 'expense' or 'income'",
			domainerror.ErrInvalidEntryType,
		)
	}

	if err := validateAmountRange(input.AmountMin, input.AmountMax); err != nil {
		return nil, err
	}
	if err := validateDayRange(input.ExpectedDayStart, input.ExpectedDayEnd); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, err
	}
	if category.OwnerType != input.OwnerType || category.OwnerID != input.OwnerID {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeNotAuthorizedEntry,
			"category does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyEntry,
		)
	}

	entry := entity.NewPlannedEntry(
		input.OwnerType,
		input.OwnerID,
		input.CategoryID,
		input.Description,
		input.DescriptionPattern,
		input.AmountMin,
		input.AmountMax,
		input.ExpectedDayStart,
		input.ExpectedDayEnd,
		input.Type,
		input.IsRecurrent,
	)

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return &CreatePlannedEntryOutput{Entry: entry}, nil
}

func validateAmountRange(min, max decimal.Decimal) error {
	if min.IsNegative() || max.IsNegative() {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidAmountRange,
			"amounts must not be negative",
			domainerror.ErrInvalidAmountRange,
		)
	}
	if !max.IsZero() && max.LessThan(min) {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidAmountRange,
			"amount_max must not be less than amount_min",
			domainerror.ErrInvalidAmountRange,
		)
	}
	return nil
}

func validateDayRange(start, end int) error {
	if start == 0 && end == 0 {
		return nil
	}
	if start < 1 || start > 31 || (end != 0 && (end < 1 || end > 31)) {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidDayRange,
			"expected days must be within 1-31",
			domainerror.ErrInvalidDayRange,
		)
	}
	if end != 0 && end < start {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidDayRange,
			"expected_day_end must not be before expected_day_start",
			domainerror.ErrInvalidDayRange,
		)
	}
	return nil
}
