package matching

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// DismissEntryInput represents the input for dismissing an entry.
type DismissEntryInput struct {
	EntryID   uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Month     int
	Year      int
	Reason    string
}

// DismissEntryUseCase marks an entry as dismissed for one month,
// excluding it from spending totals. Dismissing an already dismissed
// entry is an idempotent no-op.
type DismissEntryUseCase struct {
	entryRepo  adapter.PlannedEntryRepository
	statusRepo adapter.PlannedEntryStatusRepository
	cache      adapter.SpendingCache
	publisher  adapter.EventPublisher
	logger     *slog.Logger
}

// NewDismissEntryUseCase creates a new DismissEntryUseCase instance.
func NewDismissEntryUseCase(
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	cache adapter.SpendingCache,
	publisher adapter.EventPublisher,
	logger *slog.Logger,
) *DismissEntryUseCase {
	return &DismissEntryUseCase{
		entryRepo:  entryRepo,
		statusRepo: statusRepo,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute performs the dismissal.
func (uc *DismissEntryUseCase) Execute(ctx context.Context, input DismissEntryInput) error {
	entry, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return err
	}
	if entry.OwnerType != input.OwnerType || entry.OwnerID != input.OwnerID {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeNotAuthorizedEntry,
			"planned entry does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyEntry,
		)
	}

	status, err := uc.statusRepo.FindByEntryAndMonth(ctx, input.EntryID, input.Month, input.Year)
	if err != nil {
		if !errors.Is(err, domainerror.ErrEntryStatusNotFound) {
			return err
		}
		status = entity.NewPlannedEntryStatus(input.EntryID, input.Month, input.Year)
		if err := uc.statusRepo.Create(ctx, status); err != nil {
			return err
		}
	}

	switch status.Status {
	case entity.EntryStatusDismissed:
		// Idempotent.
		return nil
	case entity.EntryStatusMatched:
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeEntryAlreadyMatched,
			"matched entries must be unmatched before dismissal",
			domainerror.ErrEntryAlreadyMatched,
		)
	}

	status.Dismiss(input.Reason)
	if err := uc.statusRepo.UpdateWithGuard(ctx, status, entity.EntryStatusPending); err != nil {
		if errors.Is(err, domainerror.ErrStaleStatus) {
			return domainerror.NewPlannedEntryError(
				domainerror.ErrCodeStaleStatus,
				"planned entry status changed concurrently",
				domainerror.ErrStaleStatus,
			)
		}
		return err
	}

	if err := uc.cache.Invalidate(ctx, input.OwnerType, input.OwnerID, input.Month, input.Year); err != nil {
		uc.logger.WarnContext(ctx, "failed to invalidate spending cache", "error", err)
	}
	event := adapter.EntryStatusEvent{
		EntryID:    input.EntryID,
		Month:      input.Month,
		Year:       input.Year,
		OldStatus:  string(entity.EntryStatusPending),
		NewStatus:  string(entity.EntryStatusDismissed),
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.PublishEntryStatusChanged(ctx, event); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish status event", "error", err)
	}
	return nil
}
