// Package reconciliation contains the month reconciliation use cases.
package reconciliation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// GetSpendingInput represents the input for the spending report.
type GetSpendingInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Month     int
	Year      int
	// SkipCache forces a recomputation.
	SkipCache bool
}

// GetSpendingOutput represents the output of the spending report.
type GetSpendingOutput struct {
	Report *valueobject.SpendingReport
}

// GetSpendingUseCase computes the month's actual spending per category,
// read-through cached. Every status or transaction mutation for the
// month invalidates the cached report.
type GetSpendingUseCase struct {
	entryRepo       adapter.PlannedEntryRepository
	statusRepo      adapter.PlannedEntryStatusRepository
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.SpendingCache
	logger          *slog.Logger
}

// NewGetSpendingUseCase creates a new GetSpendingUseCase instance.
func NewGetSpendingUseCase(
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.SpendingCache,
	logger *slog.Logger,
) *GetSpendingUseCase {
	return &GetSpendingUseCase{
		entryRepo:       entryRepo,
		statusRepo:      statusRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute computes or fetches the spending report.
func (uc *GetSpendingUseCase) Execute(ctx context.Context, input GetSpendingInput) (*GetSpendingOutput, error) {
	month, err := valueobject.NewMonthRef(input.Month, input.Year)
	if err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid month reference",
			domainerror.ErrInvalidMonth,
		)
	}

	if !input.SkipCache {
		cached, err := uc.cache.Get(ctx, input.OwnerType, input.OwnerID, input.Month, input.Year)
		if err != nil {
			uc.logger.WarnContext(ctx, "spending cache read failed", "error", err)
		} else if cached != nil {
			return &GetSpendingOutput{Report: cached}, nil
		}
	}

	entries, err := uc.loadEntriesWithStatus(ctx, input)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByMonth(ctx, input.OwnerType, input.OwnerID, input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	cats, err := uc.categoryRepo.FindByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}
	categories := make(map[uuid.UUID]*entity.Category, len(cats))
	for _, c := range cats {
		categories[c.ID] = c
	}

	report := valueobject.ComputeActualSpending(month, entries, transactions, categories)
	for _, w := range report.Warnings {
		uc.logger.WarnContext(ctx, "spending data integrity warning", "detail", w)
	}

	if err := uc.cache.Set(ctx, input.OwnerType, input.OwnerID, input.Month, input.Year, report); err != nil {
		uc.logger.WarnContext(ctx, "spending cache write failed", "error", err)
	}

	return &GetSpendingOutput{Report: report}, nil
}

// GetSpending is a convenience form of Execute used by callers that
// only need the report.
func (uc *GetSpendingUseCase) GetSpending(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) (*valueobject.SpendingReport, error) {
	out, err := uc.Execute(ctx, GetSpendingInput{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Month:     month,
		Year:      year,
	})
	if err != nil {
		return nil, err
	}
	return out.Report, nil
}

// loadEntriesWithStatus pairs the owner's concrete month entries with
// their status records. Entries never touched this month read as
// pending without materializing anything.
func (uc *GetSpendingUseCase) loadEntriesWithStatus(ctx context.Context, input GetSpendingInput) ([]*entity.PlannedEntryWithStatus, error) {
	active, err := uc.entryRepo.FindActiveByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}

	concrete := make([]*entity.PlannedEntry, 0, len(active))
	entryIDs := make([]uuid.UUID, 0, len(active))
	for _, e := range active {
		// Recurring templates contribute through their month instances.
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

	result := make([]*entity.PlannedEntryWithStatus, 0, len(concrete))
	for _, e := range concrete {
		status := statusByEntry[e.ID]
		// A month instance belongs only to the month its status lives in.
		if e.ParentEntryID != nil && status == nil {
			continue
		}
		result = append(result, &entity.PlannedEntryWithStatus{Entry: e, Status: status})
	}
	return result, nil
}
