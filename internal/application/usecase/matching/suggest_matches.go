// Package matching contains use cases for matching transactions to
// planned entries and driving the per-month status state machine.
package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// SuggestMatchesInput represents the input for match suggestion.
type SuggestMatchesInput struct {
	TransactionID uuid.UUID
	OwnerType     entity.OwnerType
	OwnerID       uuid.UUID
	Month         int
	Year          int
}

// Suggestion pairs a candidate entry with its score.
type Suggestion struct {
	Entry *entity.PlannedEntry
	Score valueobject.MatchScore
}

// SuggestMatchesOutput represents the output of match suggestion.
type SuggestMatchesOutput struct {
	Suggestions []Suggestion
}

// SuggestMatchesUseCase ranks a month's open planned entries against a
// transaction. Read-only; persists nothing.
type SuggestMatchesUseCase struct {
	transactionRepo adapter.TransactionRepository
	entryRepo       adapter.PlannedEntryRepository
	statusRepo      adapter.PlannedEntryStatusRepository
	config          valueobject.MatchingConfig
}

// NewSuggestMatchesUseCase creates a new SuggestMatchesUseCase instance.
func NewSuggestMatchesUseCase(
	transactionRepo adapter.TransactionRepository,
	entryRepo adapter.PlannedEntryRepository,
	statusRepo adapter.PlannedEntryStatusRepository,
	config valueobject.MatchingConfig,
) *SuggestMatchesUseCase {
	return &SuggestMatchesUseCase{
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		statusRepo:      statusRepo,
		config:          config,
	}
}

// Execute scores the transaction against every candidate entry still
// open for the month.
func (uc *SuggestMatchesUseCase) Execute(ctx context.Context, input SuggestMatchesInput) (*SuggestMatchesOutput, error) {
	if _, err := valueobject.NewMonthRef(input.Month, input.Year); err != nil {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeInvalidMonth,
			"invalid month reference",
			domainerror.ErrInvalidMonth,
		)
	}

	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.OwnerType != input.OwnerType || tx.OwnerID != input.OwnerID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"transaction does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	active, err := uc.entryRepo.FindActiveByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]uuid.UUID, 0, len(active))
	for _, e := range active {
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

	// Only entries still awaiting a match are candidates. A pending
	// entry whose window elapsed still qualifies; matching it late is
	// exactly how a missed entry gets resolved.
	now := time.Now().UTC()
	candidates := make([]*entity.PlannedEntry, 0, len(active))
	for _, e := range active {
		if e.IsRecurrent {
			continue
		}
		ews := &entity.PlannedEntryWithStatus{Entry: e, Status: statusByEntry[e.ID]}
		switch ews.EffectiveStatus(now) {
		case entity.EntryStatusPending, entity.EntryStatusMissed:
			candidates = append(candidates, e)
		}
	}

	ranked := valueobject.SuggestMatches(tx, candidates, uc.config)
	suggestions := make([]Suggestion, 0, len(ranked))
	for _, c := range ranked {
		suggestions = append(suggestions, Suggestion{Entry: c.Entry, Score: c.Score})
	}

	return &SuggestMatchesOutput{Suggestions: suggestions}, nil
}
