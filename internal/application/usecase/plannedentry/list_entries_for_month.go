package plannedentry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// ListEntriesForMonthInput represents the input for the month listing.
type ListEntriesForMonthInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Month     int
	Year      int
}

// EntryWithEffectiveStatus annotates an entry with its month status,
// including the read-time missed classification.
type EntryWithEffectiveStatus struct {
	Entry           *entity.PlannedEntry
	Status          *entity.PlannedEntryStatus
	EffectiveStatus entity.EntryStatus
}

// ListEntriesForMonthOutput represents the output of the month listing.
type ListEntriesForMonthOutput struct {
	Entries []*EntryWithEffectiveStatus
}

// ListEntriesForMonthUseCase lists an owner's planned entries for a
// month, materializing recurring-template instances and their status
// records on first touch.
type ListEntriesForMonthUseCase struct {
	entryRepo  adapter.PlannedEntryRepository
	statusRepo adapter.PlannedEntryStatusRepository
	logger     *slog.Logger
}

// NewListEntriesForMonthUseCase creates a new ListEntriesForMonthUseCase instance.
func NewListEntriesForMonthUseCase(
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	logger *slog.Logger,
) *ListEntriesForMonthUseCase {
	return &ListEntriesForMonthUseCase{
		entryRepo:  entryRepo,
		statusRepo: statusRepo,
		logger:     logger,
	}
}

// Execute lists the entries with their per-month statuses.
func (uc *ListEntriesForMonthUseCase) Execute(ctx context.Context, input ListEntriesForMonthInput) (*ListEntriesForMonthOutput, error) {
	if _, err := valueobject.NewMonthRef(input.Month, input.Year); err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid month reference",
			domainerror.ErrInvalidMonth,
		)
	}

	entries, err := uc.materializeMonth(ctx, input)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
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

	now := time.Now().UTC()
	result := make([]*EntryWithEffectiveStatus, 0, len(entries))
	for _, e := range entries {
		status := statusByEntry[e.ID]
		if status == nil {
			// First touch of this month for the entry.
			status = entity.NewPlannedEntryStatus(e.ID, input.Month, input.Year)
			if err := uc.statusRepo.Create(ctx, status); err != nil {
				return nil, err
			}
		}

		withStatus := &entity.PlannedEntryWithStatus{Entry: e, Status: status}
		result = append(result, &EntryWithEffectiveStatus{
			Entry:           e,
			Status:          status,
			EffectiveStatus: withStatus.EffectiveStatus(now),
		})
	}

	return &ListEntriesForMonthOutput{Entries: result}, nil
}

// materializeMonth returns the month's concrete entries: non-recurring
// entries plus one generated instance per recurring template.
func (uc *ListEntriesForMonthUseCase) materializeMonth(ctx context.Context, input ListEntriesForMonthInput) ([]*entity.PlannedEntry, error) {
	active, err := uc.entryRepo.FindActiveByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.PlannedEntry, 0, len(active))
	for _, e := range active {
		// Month instances are reached through their template below.
		if e.ParentEntryID != nil {
			continue
		}
		if !e.IsRecurrent {
			entries = append(entries, e)
			continue
		}

		instance, err := uc.entryRepo.FindInstanceOfTemplate(ctx, e.ID, input.Month, input.Year)
		if err != nil && !errors.Is(err, domainerror.ErrPlannedEntryNotFound) {
			return nil, err
		}
		if instance == nil {
			instance = e.MonthInstance()
			if err := uc.entryRepo.Create(ctx, instance); err != nil {
				return nil, err
			}
			// The status record is what ties the instance to its month.
			if err := uc.statusRepo.Create(ctx, entity.NewPlannedEntryStatus(instance.ID, input.Month, input.Year)); err != nil {
				return nil, err
			}
			uc.logger.InfoContext(ctx, "materialized recurring entry instance",
				"template_id", e.ID, "instance_id", instance.ID,
				"month", input.Month, "year", input.Year)
		}
		entries = append(entries, instance)
	}

	return entries, nil
}
