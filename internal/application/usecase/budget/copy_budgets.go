package budget

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// CopyBudgetsInput represents the input for copying a month's budgets.
type CopyBudgetsInput struct {
	OwnerType   entity.OwnerType
	OwnerID     uuid.UUID
	SourceMonth int
	SourceYear  int
	TargetMonth int
	TargetYear  int
}

// CopyBudgetsOutput represents the output of the copy.
type CopyBudgetsOutput struct {
	Copied  int
	Skipped int
}

// CopyBudgetsUseCase copies all budgets from one month to another,
// skipping categories that already have a budget in the target month.
type CopyBudgetsUseCase struct {
	budgetRepo adapter.CategoryBudgetRepository
	logger     *slog.Logger
}

// NewCopyBudgetsUseCase creates a new CopyBudgetsUseCase instance.
func NewCopyBudgetsUseCase(budgetRepo adapter.CategoryBudgetRepository, logger *slog.Logger) *CopyBudgetsUseCase {
	return &CopyBudgetsUseCase{budgetRepo: budgetRepo, logger: logger}
}

// Execute performs the copy.
func (uc *CopyBudgetsUseCase) Execute(ctx context.Context, input CopyBudgetsInput) (*CopyBudgetsOutput, error) {
	if _, err := valueobject.NewMonthRef(input.SourceMonth, input.SourceYear); err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid source month reference",
			domainerror.ErrInvalidMonth,
		)
	}
	if _, err := valueobject.NewMonthRef(input.TargetMonth, input.TargetYear); err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid target month reference",
			domainerror.ErrInvalidMonth,
		)
	}

	source, err := uc.budgetRepo.FindByMonth(ctx, input.OwnerType, input.OwnerID, input.SourceMonth, input.SourceYear)
	if err != nil {
		return nil, err
	}

	out := &CopyBudgetsOutput{}
	for _, b := range source {
		existing, err := uc.budgetRepo.FindByCategoryAndMonth(ctx, b.CategoryID, input.TargetMonth, input.TargetYear)
		if err != nil && !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, err
		}
		if existing != nil {
			out.Skipped++
			continue
		}

		copied := entity.NewCategoryBudget(
			b.OwnerType, b.OwnerID, b.CategoryID,
			input.TargetMonth, input.TargetYear,
			b.Type, b.PlannedAmount,
		)
		if err := uc.budgetRepo.Create(ctx, copied); err != nil {
			return nil, err
		}
		out.Copied++
	}

	uc.logger.InfoContext(ctx, "copied category budgets",
		"source", input.SourceMonth, "target", input.TargetMonth,
		"copied", out.Copied, "skipped", out.Skipped)
	return out, nil
}
