// Package income contains the income allocation use cases.
package income

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// GetIncomePlanningInput represents the input for the allocation check.
type GetIncomePlanningInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Month     int
	Year      int
}

// GetIncomePlanningOutput represents the output of the allocation check.
type GetIncomePlanningOutput struct {
	Report valueobject.IncomePlanningReport
}

// GetIncomePlanningUseCase compares the month's planned income against
// its planned expense allocation. Dismissed entries count for neither
// side.
type GetIncomePlanningUseCase struct {
	entryRepo        adapter.PlannedEntryRepository
	statusRepo       adapter.PlannedEntryStatusRepository
	tolerancePercent decimal.Decimal
}

// NewGetIncomePlanningUseCase creates a new GetIncomePlanningUseCase instance.
func NewGetIncomePlanningUseCase(
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	tolerancePercent float64,
) *GetIncomePlanningUseCase {
	return &GetIncomePlanningUseCase{
		entryRepo:        entryRepo,
		statusRepo:       statusRepo,
		tolerancePercent: decimal.NewFromFloat(tolerancePercent),
	}
}

// Execute performs the allocation check.
func (uc *GetIncomePlanningUseCase) Execute(ctx context.Context, input GetIncomePlanningInput) (*GetIncomePlanningOutput, error) {
	month, err := valueobject.NewMonthRef(input.Month, input.Year)
	if err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid month reference",
			domainerror.ErrInvalidMonth,
		)
	}

	active, err := uc.entryRepo.FindActiveByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}

	concrete := make([]*entity.PlannedEntry, 0, len(active))
	entryIDs := make([]uuid.UUID, 0, len(active))
	for _, e := range active {
		if e.IsRecurrent {
			continue
		}
		concrete = append(concrete, e)
		entryIDs = append(entryIDs, e.ID)
	}

	statuses, err := uc.statusRepo.FindByMonth(ctx, entryIDs, input.Month, input.Year)
	if err != nil {
		return nil, err
	}
	statusByEntry := make(map[uuid.UUID]*entity.PlannedEntryStatus, len(statuses))
	for _, s := range statuses {
		statusByEntry[s.EntryID] = s
	}

	var totalIncome, totalPlannedExpense decimal.Decimal
	for _, e := range concrete {
		status := statusByEntry[e.ID]
		if e.ParentEntryID != nil && status == nil {
			continue
		}
		if status != nil && status.Status == entity.EntryStatusDismissed {
			continue
		}

		ews := entity.PlannedEntryWithStatus{Entry: e, Status: status}
		if e.IsIncome() {
			totalIncome = totalIncome.Add(ews.SpendingContribution()).Round(2)
			continue
		}
		totalPlannedExpense = totalPlannedExpense.Add(e.PlannedAmount()).Round(2)
	}

	report := valueobject.CheckAllocation(month, totalIncome, totalPlannedExpense, uc.tolerancePercent)
	return &GetIncomePlanningOutput{Report: report}, nil
}
