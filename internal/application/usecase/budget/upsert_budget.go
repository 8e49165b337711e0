// Package budget contains category budget use cases.
package budget

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// UpsertBudgetInput represents the input for creating or updating a budget.
type UpsertBudgetInput struct {
	OwnerType     entity.OwnerType
	OwnerID       uuid.UUID
	CategoryID    uuid.UUID
	Month         int
	Year          int
	Type          entity.BudgetType
	PlannedAmount decimal.Decimal
}

// UpsertBudgetOutput represents the output of the upsert.
type UpsertBudgetOutput struct {
	Budget *entity.CategoryBudget
}

// UpsertBudgetUseCase creates or updates the single budget for a
// (category, month, year). Consolidated budgets are locked.
type UpsertBudgetUseCase struct {
	budgetRepo   adapter.CategoryBudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpsertBudgetUseCase creates a new UpsertBudgetUseCase instance.
func NewUpsertBudgetUseCase(
	budgetRepo adapter.CategoryBudgetRepository,
	categoryRepo adapter.CategoryRepository,
) *UpsertBudgetUseCase {
	return &UpsertBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the upsert.
func (uc *UpsertBudgetUseCase) Execute(ctx context.Context, input UpsertBudgetInput) (*UpsertBudgetOutput, error) {
	if _, err := valueobject.NewMonthRef(input.Month, input.Year); err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid month reference",
			domainerror.ErrInvalidMonth,
		)
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetType,
			"budget type must be 'fixed', 'calculated' or 'maior'",
			domainerror.ErrInvalidBudgetType,
		)
	}
	if input.PlannedAmount.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"planned amount must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.OwnerType != input.OwnerType || category.OwnerID != input.OwnerID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"category does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	existing, err := uc.budgetRepo.FindByCategoryAndMonth(ctx, input.CategoryID, input.Month, input.Year)
	if err != nil && !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, err
	}

	if existing == nil {
		budget := entity.NewCategoryBudget(
			input.OwnerType,
			input.OwnerID,
			input.CategoryID,
			input.Month,
			input.Year,
			input.Type,
			input.PlannedAmount,
		)
		if err := uc.budgetRepo.Create(ctx, budget); err != nil {
			return nil, err
		}
		return &UpsertBudgetOutput{Budget: budget}, nil
	}

	if existing.IsConsolidated {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetConsolidated,
			"budget is consolidated and cannot be edited",
			domainerror.ErrBudgetConsolidated,
		)
	}

	existing.Type = input.Type
	existing.PlannedAmount = input.PlannedAmount
	existing.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return &UpsertBudgetOutput{Budget: existing}, nil
}
