package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// ConsolidateBudgetInput represents the input for consolidation.
type ConsolidateBudgetInput struct {
	BudgetID  uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
}

// ConsolidateBudgetOutput represents the output of consolidation.
type ConsolidateBudgetOutput struct {
	Budget *entity.CategoryBudget
}

// ConsolidateBudgetUseCase locks a budget after its month has ended,
// freezing calculated/maior budgets at their resolved effective amount.
// Consolidating twice is an idempotent no-op.
type ConsolidateBudgetUseCase struct {
	budgetRepo adapter.CategoryBudgetRepository
	entryRepo  adapter.PlannedEntryRepository
}

// NewConsolidateBudgetUseCase creates a new ConsolidateBudgetUseCase instance.
func NewConsolidateBudgetUseCase(
	budgetRepo adapter.CategoryBudgetRepository,
	entryRepo adapter.PlannedEntryRepository,
) *ConsolidateBudgetUseCase {
	return &ConsolidateBudgetUseCase{
		budgetRepo: budgetRepo,
		entryRepo:  entryRepo,
	}
}

// Execute performs the consolidation.
func (uc *ConsolidateBudgetUseCase) Execute(ctx context.Context, input ConsolidateBudgetInput) (*ConsolidateBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	if budget.OwnerType != input.OwnerType || budget.OwnerID != input.OwnerID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"category budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}
	if budget.IsConsolidated {
		return &ConsolidateBudgetOutput{Budget: budget}, nil
	}

	month := valueobject.MonthRef{Month: budget.Month, Year: budget.Year}
	if !month.IsPast(time.Now().UTC()) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMonthNotEnded,
			"cannot consolidate a budget before its month ends",
			domainerror.ErrMonthNotEnded,
		)
	}

	calculated, err := calculatedSum(ctx, uc.entryRepo, budget)
	if err != nil {
		return nil, err
	}

	budget.Consolidate(budget.EffectivePlanned(calculated))
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}

	return &ConsolidateBudgetOutput{Budget: budget}, nil
}

// calculatedSum totals the planned amounts of the category's entries
// relevant to the budget's month.
func calculatedSum(ctx context.Context, entryRepo adapter.PlannedEntryRepository, budget *entity.CategoryBudget) (decimal.Decimal, error) {
	entries, err := entryRepo.FindByCategoryAndMonth(
		ctx, budget.OwnerType, budget.OwnerID, budget.CategoryID, budget.Month, budget.Year,
	)
	if err != nil {
		return decimal.Zero, err
	}

	var sum decimal.Decimal
	for _, e := range entries {
		sum = sum.Add(e.PlannedAmount()).Round(2)
	}
	return sum, nil
}
