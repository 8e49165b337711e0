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

// UndismissEntryInput represents the input for undismissing an entry.
type UndismissEntryInput struct {
	EntryID   uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Month     int
	Year      int
}

// UndismissEntryUseCase returns a dismissed entry to pending for one
// month. Undismissing a non-dismissed entry is an idempotent no-op.
type UndismissEntryUseCase struct {
	entryRepo  adapter.PlannedEntryRepository
	statusRepo adapter.PlannedEntryStatusRepository
	cache      adapter.SpendingCache
	publisher  adapter.EventPublisher
	logger     *slog.Logger
}

// NewUndismissEntryUseCase creates a new UndismissEntryUseCase instance.
func NewUndismissEntryUseCase(
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	cache adapter.SpendingCache,
	publisher adapter.EventPublisher,
	logger *slog.Logger,
) *UndismissEntryUseCase {
	return &UndismissEntryUseCase{
		entryRepo:  entryRepo,
		statusRepo: statusRepo,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute performs the undismissal.
func (uc *UndismissEntryUseCase) Execute(ctx context.Context, input UndismissEntryInput) error {
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
		return err
	}
	if status.Status != entity.EntryStatusDismissed {
		// Idempotent.
		return nil
	}

	status.Undismiss()
	if err := uc.statusRepo.UpdateWithGuard(ctx, status, entity.EntryStatusDismissed); err != nil {
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
		OldStatus:  string(entity.EntryStatusDismissed),
		NewStatus:  string(entity.EntryStatusPending),
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.PublishEntryStatusChanged(ctx, event); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish status event", "error", err)
	}
	return nil
}
