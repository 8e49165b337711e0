package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// ListBudgetsInput represents the input for the budget listing.
type ListBudgetsInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Month     int
	Year      int
}

// ListBudgetsOutput represents the output of the budget listing.
type ListBudgetsOutput struct {
	Budgets []*entity.CategoryBudget
}

// ListBudgetsUseCase lists an owner's category budgets for a month.
type ListBudgetsUseCase struct {
	budgetRepo adapter.CategoryBudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.CategoryBudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{budgetRepo: budgetRepo}
}

// Execute lists the budgets.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	if _, err := valueobject.NewMonthRef(input.Month, input.Year); err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid month reference",
			domainerror.ErrInvalidMonth,
		)
	}

	budgets, err := uc.budgetRepo.FindByMonth(ctx, input.OwnerType, input.OwnerID, input.Month, input.Year)
	if err != nil {
		return nil, err
	}
	return &ListBudgetsOutput{Budgets: budgets}, nil
}
