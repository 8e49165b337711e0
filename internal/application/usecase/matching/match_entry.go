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
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// MatchEntryInput represents the input for matching an entry to a transaction.
type MatchEntryInput struct {
	EntryID       uuid.UUID
	TransactionID uuid.UUID
	OwnerType     entity.OwnerType
	OwnerID       uuid.UUID
	Month         int
	Year          int
}

// MatchEntryUseCase links a planned entry to a transaction for one
// month. A transaction can back at most one match per month; the guard
// on the status update plus the unique index on the matched transaction
// keep concurrent writers from both succeeding.
type MatchEntryUseCase struct {
	entryRepo       adapter.PlannedEntryRepository
	statusRepo      adapter.PlannedEntryStatusRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.SpendingCache
	publisher       adapter.EventPublisher
	logger          *slog.Logger
}

// NewMatchEntryUseCase creates a new MatchEntryUseCase instance.
func NewMatchEntryUseCase(
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.SpendingCache,
	publisher adapter.EventPublisher,
	logger *slog.Logger,
) *MatchEntryUseCase {
	return &MatchEntryUseCase{
		entryRepo:       entryRepo,
		statusRepo:      statusRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		publisher:       publisher,
		logger:          logger,
	}
}

// Execute performs the match.
func (uc *MatchEntryUseCase) Execute(ctx context.Context, input MatchEntryInput) error {
	if _, err := valueobject.NewMonthRef(input.Month, input.Year); err != nil {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid month reference",
			domainerror.ErrInvalidMonth,
		)
	}

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

	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return err
	}
	if tx.OwnerType != input.OwnerType || tx.OwnerID != input.OwnerID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"transaction does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	existing, err := uc.statusRepo.FindByMatchedTransaction(ctx, input.TransactionID, input.Month, input.Year)
	if err != nil && !errors.Is(err, domainerror.ErrEntryStatusNotFound) {
		return err
	}
	if existing != nil && existing.EntryID != input.EntryID {
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeTransactionAlreadyMatched,
			"transaction is already matched to another planned entry this month",
			domainerror.ErrTransactionAlreadyMatched,
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
	case entity.EntryStatusMatched:
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeEntryAlreadyMatched,
			"planned entry already has a match this month",
			domainerror.ErrEntryAlreadyMatched,
		)
	case entity.EntryStatusDismissed:
		return domainerror.NewPlannedEntryError(
			domainerror.ErrCodeEntryDismissed,
			"planned entry is dismissed this month",
			domainerror.ErrEntryDismissed,
		)
	}

	status.Match(tx.ID, tx.Amount)
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

	uc.afterTransition(ctx, input, string(entity.EntryStatusPending), string(entity.EntryStatusMatched), tx.ID.String())
	return nil
}

// afterTransition invalidates the month's spending cache and publishes
// the status event. Both are best effort.
func (uc *MatchEntryUseCase) afterTransition(ctx context.Context, input MatchEntryInput, oldStatus, newStatus, transactionID string) {
	if err := uc.cache.Invalidate(ctx, input.OwnerType, input.OwnerID, input.Month, input.Year); err != nil {
		uc.logger.WarnContext(ctx, "failed to invalidate spending cache", "error", err)
	}
	event := adapter.EntryStatusEvent{
		EntryID:       input.EntryID,
		Month:         input.Month,
		Year:          input.Year,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		TransactionID: transactionID,
		OccurredAt:    time.Now().UTC(),
	}
	if err := uc.publisher.PublishEntryStatusChanged(ctx, event); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish status event", "error", err)
	}
}
