package budget

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// GetBudgetProgressInput represents the input for the progress report.
type GetBudgetProgressInput struct {
	BudgetID  uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
}

// GetBudgetProgressOutput represents the output of the progress report.
type GetBudgetProgressOutput struct {
	Progress valueobject.BudgetProgress
}

// SpendingProvider supplies the month's reconciled spending report.
type SpendingProvider interface {
	GetSpending(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) (*valueobject.SpendingReport, error)
}

// GetBudgetProgressUseCase computes the run-rate progress of one budget
// against the month's reconciled spending.
type GetBudgetProgressUseCase struct {
	budgetRepo   adapter.CategoryBudgetRepository
	categoryRepo adapter.CategoryRepository
	entryRepo    adapter.PlannedEntryRepository
	spending     SpendingProvider
	thresholds   valueobject.ProgressThresholds
}

// NewGetBudgetProgressUseCase creates a new GetBudgetProgressUseCase instance.
func NewGetBudgetProgressUseCase(
	budgetRepo adapter.CategoryBudgetRepository,
	categoryRepo adapter.CategoryRepository,
	entryRepo adapter.PlannedEntryRepository,
	spending SpendingProvider,
	thresholds valueobject.ProgressThresholds,
) *GetBudgetProgressUseCase {
	return &GetBudgetProgressUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		entryRepo:    entryRepo,
		spending:     spending,
		thresholds:   thresholds,
	}
}

// CheckBudget computes the progress report for a user's budget. Used by
// the alert sweep.
func (uc *GetBudgetProgressUseCase) CheckBudget(ctx context.Context, user *entity.User, budget *entity.CategoryBudget) (*valueobject.BudgetProgress, error) {
	out, err := uc.Execute(ctx, GetBudgetProgressInput{
		BudgetID:  budget.ID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   user.ID,
	})
	if err != nil {
		return nil, err
	}
	return &out.Progress, nil
}

// Execute computes the progress report.
func (uc *GetBudgetProgressUseCase) Execute(ctx context.Context, input GetBudgetProgressInput) (*GetBudgetProgressOutput, error) {
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

	category, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID)
	if err != nil {
		return nil, err
	}

	// calculated and maior budgets re-derive the planned amount from
	// the month's entries on every read.
	planned := budget.PlannedAmount
	if budget.Type != entity.BudgetTypeFixed && !budget.IsConsolidated {
		calculated, err := calculatedSum(ctx, uc.entryRepo, budget)
		if err != nil {
			return nil, err
		}
		planned = budget.EffectivePlanned(calculated)
	}

	report, err := uc.spending.GetSpending(ctx, input.OwnerType, input.OwnerID, budget.Month, budget.Year)
	if err != nil {
		return nil, err
	}

	actual := report.CategorySpending[budget.CategoryID]
	if category.IsIncome() {
		actual = report.IncomeByCategory[budget.CategoryID]
	}

	progress := valueobject.ComputeProgress(
		budget, planned, actual, category.IsIncome(), time.Now().UTC(), uc.thresholds,
	)
	return &GetBudgetProgressOutput{Progress: progress}, nil
}
