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

// UnmatchEntryInput represents the input for unmatching an entry.
type UnmatchEntryInput struct {
	EntryID   uuid.UUID
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Month     int
	Year      int
}

// UnmatchEntryUseCase clears an entry's match for one month, returning
// it to pending. The transaction itself is untouched.
type UnmatchEntryUseCase struct {
	entryRepo  adapter.PlannedEntryRepository
	statusRepo adapter.PlannedEntryStatusRepository
	cache      adapter.SpendingCache
	publisher  adapter.EventPublisher
	logger     *slog.Logger
}

// NewUnmatchEntryUseCase creates a new UnmatchEntryUseCase instance.
func NewUnmatchEntryUseCase(
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	cache adapter.SpendingCache,
	publisher adapter.EventPublisher,
	logger *slog.Logger,
) *UnmatchEntryUseCase {
	return &UnmatchEntryUseCase{
		entryRepo:  entryRepo,
		statusRepo: statusRepo,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute performs the unmatch.
func (uc *UnmatchEntryUseCase) Execute(ctx context.Context, input UnmatchEntryInput) error {
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
	if status.Status != entity.EntryStatusMatched {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeEntryNotMatched,
			"planned entry is not matched this month",
			domainerror.ErrEntryNotMatched,
		)
	}

	status.Unmatch()
	if err := uc.statusRepo.UpdateWithGuard(ctx, status, entity.EntryStatusMatched); err != nil {
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
		OldStatus:  string(entity.EntryStatusMatched),
		NewStatus:  string(entity.EntryStatusPending),
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.PublishEntryStatusChanged(ctx, event); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish status event", "error", err)
	}
	return nil
}
