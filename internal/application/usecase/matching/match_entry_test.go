package matching

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

type fakeEntryRepo struct {
	entries map[uuid.UUID]*entity.PlannedEntry
}

func (r *fakeEntryRepo) Create(_ context.Context, entry *entity.PlannedEntry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.PlannedEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, domainerror.NewPlannedEntryError(
			domainerror.ErrCodeEntryNotFound,
			"planned entry not found",
			domainerror.ErrPlannedEntryNotFound,
		)
	}
	return entry, nil
}

func (r *fakeEntryRepo) FindActiveByOwner(context.Context, entity.OwnerType, uuid.UUID) ([]*entity.PlannedEntry, error) {
	return nil, nil
}

func (r *fakeEntryRepo) FindRecurrentTemplates(context.Context, entity.OwnerType, uuid.UUID) ([]*entity.PlannedEntry, error) {
	return nil, nil
}

func (r *fakeEntryRepo) FindInstanceOfTemplate(context.Context, uuid.UUID, int, int) (*entity.PlannedEntry, error) {
	return nil, domainerror.ErrPlannedEntryNotFound
}

func (r *fakeEntryRepo) FindByCategoryAndMonth(context.Context, entity.OwnerType, uuid.UUID, uuid.UUID, int, int) ([]*entity.PlannedEntry, error) {
	return nil, nil
}

func (r *fakeEntryRepo) Update(_ context.Context, entry *entity.PlannedEntry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeEntryRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

// fakeStatusRepo keeps value copies so UpdateWithGuard sees the stored
// state, not the caller's mutated pointer.
type fakeStatusRepo struct {
	statuses map[string]entity.PlannedEntryStatus
}

func statusKey(entryID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%s/%d/%d", entryID, year, month)
}

func (r *fakeStatusRepo) Create(_ context.Context, status *entity.PlannedEntryStatus) error {
	key := statusKey(status.EntryID, status.Month, status.Year)
	if _, ok := r.statuses[key]; ok {
		return errors.New("status already exists")
	}
	r.statuses[key] = *status
	return nil
}

func (r *fakeStatusRepo) FindByEntryAndMonth(_ context.Context, entryID uuid.UUID, month, year int) (*entity.PlannedEntryStatus, error) {
	stored, ok := r.statuses[statusKey(entryID, month, year)]
	if !ok {
		return nil, domainerror.ErrEntryStatusNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *fakeStatusRepo) FindByMonth(_ context.Context, entryIDs []uuid.UUID, month, year int) ([]*entity.PlannedEntryStatus, error) {
	var out []*entity.PlannedEntryStatus
	for _, id := range entryIDs {
		if stored, ok := r.statuses[statusKey(id, month, year)]; ok {
			copied := stored
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeStatusRepo) FindByMatchedTransaction(_ context.Context, transactionID uuid.UUID, month, year int) (*entity.PlannedEntryStatus, error) {
	for _, stored := range r.statuses {
		if stored.Month != month || stored.Year != year {
			continue
		}
		if stored.MatchedTransactionID != nil && *stored.MatchedTransactionID == transactionID {
			copied := stored
			return &copied, nil
		}
	}
	return nil, domainerror.ErrEntryStatusNotFound
}

func (r *fakeStatusRepo) UpdateWithGuard(_ context.Context, status *entity.PlannedEntryStatus, expectedStatus entity.EntryStatus) error {
	key := statusKey(status.EntryID, status.Month, status.Year)
	stored, ok := r.statuses[key]
	if !ok {
		return domainerror.ErrEntryStatusNotFound
	}
	if stored.Status != expectedStatus {
		return domainerror.ErrStaleStatus
	}
	r.statuses[key] = *status
	return nil
}

type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return tx, nil
}

func (r *fakeTransactionRepo) FindByOwner(context.Context, entity.OwnerType, uuid.UUID, adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTransactionRepo) FindByMonth(context.Context, entity.OwnerType, uuid.UUID, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepo) UpdateBatch(_ context.Context, txs []*entity.Transaction) error {
	for _, tx := range txs {
		r.transactions[tx.ID] = tx
	}
	return nil
}

type fakeCache struct {
	invalidations int
}

func (c *fakeCache) Get(context.Context, entity.OwnerType, uuid.UUID, int, int) (*valueobject.SpendingReport, error) {
	return nil, nil
}

func (c *fakeCache) Set(context.Context, entity.OwnerType, uuid.UUID, int, int, *valueobject.SpendingReport) error {
	return nil
}

func (c *fakeCache) Invalidate(context.Context, entity.OwnerType, uuid.UUID, int, int) error {
	c.invalidations++
	return nil
}

type fakePublisher struct {
	events []adapter.EntryStatusEvent
}

func (p *fakePublisher) PublishEntryStatusChanged(_ context.Context, event adapter.EntryStatusEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type matchingFixture struct {
	ownerID    uuid.UUID
	entryRepo  *fakeEntryRepo
	statusRepo *fakeStatusRepo
	txRepo     *fakeTransactionRepo
	cache      *fakeCache
	publisher  *fakePublisher
	logger     *slog.Logger
}

func newMatchingFixture() *matchingFixture {
	return &matchingFixture{
		ownerID:    uuid.New(),
		entryRepo:  &fakeEntryRepo{entries: make(map[uuid.UUID]*entity.PlannedEntry)},
		statusRepo: &fakeStatusRepo{statuses: make(map[string]entity.PlannedEntryStatus)},
		txRepo:     &fakeTransactionRepo{transactions: make(map[uuid.UUID]*entity.Transaction)},
		cache:      &fakeCache{},
		publisher:  &fakePublisher{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (f *matchingFixture) addEntry() *entity.PlannedEntry {
	entry := entity.NewPlannedEntry(
		entity.OwnerTypeUser, f.ownerID, uuid.New(),
		"Electricity", "", decimal.RequireFromString("200.00"), decimal.Zero,
		5, 10, entity.EntryTypeExpense, true,
	)
	f.entryRepo.entries[entry.ID] = entry
	return entry
}

func (f *matchingFixture) addTransaction(amount string) *entity.Transaction {
	tx := entity.NewTransaction(
		uuid.New(), entity.OwnerTypeUser, f.ownerID,
		time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
		"ELETROPAULO 03/2026", decimal.RequireFromString(amount),
		entity.TransactionTypeDebit, nil, "",
	)
	f.txRepo.transactions[tx.ID] = tx
	return tx
}

func (f *matchingFixture) matchUseCase() *MatchEntryUseCase {
	return NewMatchEntryUseCase(f.entryRepo, f.statusRepo, f.txRepo, f.cache, f.publisher, f.logger)
}

func entryErrorCode(t *testing.T, err error) domainerror.PlannedEntryErrorCode {
	t.Helper()
	var entryErr *domainerror.PlannedEntryError
	if !errors.As(err, &entryErr) {
		t.Fatalf("expected PlannedEntryError, got %v", err)
	}
	return entryErr.Code
}

func TestMatchEntryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("match records the transaction amount and publishes", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		tx := f.addTransaction("198.45")

		err := f.matchUseCase().Execute(ctx, MatchEntryInput{
			EntryID: entry.ID, TransactionID: tx.ID,
			OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		status, err := f.statusRepo.FindByEntryAndMonth(ctx, entry.ID, 3, 2026)
		if err != nil {
			t.Fatalf("expected status record to exist: %v", err)
		}
		if status.Status != entity.EntryStatusMatched {
			t.Errorf("expected matched, got %s", status.Status)
		}
		if status.MatchedAmount == nil || !status.MatchedAmount.Equal(decimal.RequireFromString("198.45")) {
			t.Error("expected the transaction's actual amount on the match")
		}
		if f.cache.invalidations != 1 {
			t.Errorf("expected one cache invalidation, got %d", f.cache.invalidations)
		}
		if len(f.publisher.events) != 1 || f.publisher.events[0].NewStatus != string(entity.EntryStatusMatched) {
			t.Errorf("expected one matched event, got %v", f.publisher.events)
		}
	})

	t.Run("transaction cannot back two matches in a month", func(t *testing.T) {
		f := newMatchingFixture()
		first := f.addEntry()
		second := f.addEntry()
		tx := f.addTransaction("198.45")
		uc := f.matchUseCase()

		input := MatchEntryInput{
			EntryID: first.ID, TransactionID: tx.ID,
			OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		}
		if err := uc.Execute(ctx, input); err != nil {
			t.Fatalf("first match failed: %v", err)
		}

		input.EntryID = second.ID
		err := uc.Execute(ctx, input)
		if got := entryErrorCode(t, err); got != domainerror.ErrCodeTransactionAlreadyMatched {
			t.Errorf("expected transaction-already-matched, got %s", got)
		}
	})

	t.Run("matched entry rejects a second match", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		tx := f.addTransaction("198.45")
		other := f.addTransaction("50.00")
		uc := f.matchUseCase()

		input := MatchEntryInput{
			EntryID: entry.ID, TransactionID: tx.ID,
			OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		}
		if err := uc.Execute(ctx, input); err != nil {
			t.Fatalf("first match failed: %v", err)
		}

		input.TransactionID = other.ID
		err := uc.Execute(ctx, input)
		if got := entryErrorCode(t, err); got != domainerror.ErrCodeEntryAlreadyMatched {
			t.Errorf("expected entry-already-matched, got %s", got)
		}
	})

	t.Run("dismissed entry cannot be matched", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		tx := f.addTransaction("198.45")

		status := entity.NewPlannedEntryStatus(entry.ID, 3, 2026)
		status.Dismiss("on vacation")
		if err := f.statusRepo.Create(ctx, status); err != nil {
			t.Fatal(err)
		}

		err := f.matchUseCase().Execute(ctx, MatchEntryInput{
			EntryID: entry.ID, TransactionID: tx.ID,
			OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		})
		if got := entryErrorCode(t, err); got != domainerror.ErrCodeEntryDismissed {
			t.Errorf("expected entry-dismissed, got %s", got)
		}
	})

	t.Run("another owner's entry is rejected", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		tx := f.addTransaction("198.45")

		err := f.matchUseCase().Execute(ctx, MatchEntryInput{
			EntryID: entry.ID, TransactionID: tx.ID,
			OwnerType: entity.OwnerTypeUser, OwnerID: uuid.New(),
			Month: 3, Year: 2026,
		})
		if got := entryErrorCode(t, err); got != domainerror.ErrCodeNotAuthorizedEntry {
			t.Errorf("expected not-authorized, got %s", got)
		}
	})

	t.Run("invalid month is rejected before any lookup", func(t *testing.T) {
		f := newMatchingFixture()
		err := f.matchUseCase().Execute(ctx, MatchEntryInput{
			EntryID: uuid.New(), TransactionID: uuid.New(),
			OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 13, Year: 2026,
		})
		if got := entryErrorCode(t, err); got != domainerror.ErrCodeInvalidMonth {
			t.Errorf("expected invalid-month, got %s", got)
		}
	})
}

func TestUnmatchEntryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("unmatch frees the transaction for a new match", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		other := f.addEntry()
		tx := f.addTransaction("198.45")

		matchInput := MatchEntryInput{
			EntryID: entry.ID, TransactionID: tx.ID,
			OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		}
		if err := f.matchUseCase().Execute(ctx, matchInput); err != nil {
			t.Fatalf("match failed: %v", err)
		}

		unmatch := NewUnmatchEntryUseCase(f.entryRepo, f.statusRepo, f.cache, f.publisher, f.logger)
		err := unmatch.Execute(ctx, UnmatchEntryInput{
			EntryID: entry.ID, OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		})
		if err != nil {
			t.Fatalf("unmatch failed: %v", err)
		}

		status, _ := f.statusRepo.FindByEntryAndMonth(ctx, entry.ID, 3, 2026)
		if status.Status != entity.EntryStatusPending || status.MatchedTransactionID != nil {
			t.Errorf("expected clean pending status, got %+v", status)
		}

		// The same transaction can now back a different entry.
		matchInput.EntryID = other.ID
		if err := f.matchUseCase().Execute(ctx, matchInput); err != nil {
			t.Errorf("rematch after unmatch failed: %v", err)
		}
	})

	t.Run("unmatching a pending entry fails", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		status := entity.NewPlannedEntryStatus(entry.ID, 3, 2026)
		if err := f.statusRepo.Create(ctx, status); err != nil {
			t.Fatal(err)
		}

		unmatch := NewUnmatchEntryUseCase(f.entryRepo, f.statusRepo, f.cache, f.publisher, f.logger)
		err := unmatch.Execute(ctx, UnmatchEntryInput{
			EntryID: entry.ID, OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		})
		if got := entryErrorCode(t, err); got != domainerror.ErrCodeEntryNotMatched {
			t.Errorf("expected entry-not-matched, got %s", got)
		}
	})
}

func TestDismissEntryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("dismiss then undismiss returns to pending", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()

		dismiss := NewDismissEntryUseCase(f.entryRepo, f.statusRepo, f.cache, f.publisher, f.logger)
		input := DismissEntryInput{
			EntryID: entry.ID, OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026, Reason: "supplier on strike",
		}
		if err := dismiss.Execute(ctx, input); err != nil {
			t.Fatalf("dismiss failed: %v", err)
		}

		status, _ := f.statusRepo.FindByEntryAndMonth(ctx, entry.ID, 3, 2026)
		if status.Status != entity.EntryStatusDismissed || status.DismissalReason != "supplier on strike" {
			t.Errorf("expected dismissed with reason, got %+v", status)
		}

		undismiss := NewUndismissEntryUseCase(f.entryRepo, f.statusRepo, f.cache, f.publisher, f.logger)
		err := undismiss.Execute(ctx, UndismissEntryInput{
			EntryID: entry.ID, OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		})
		if err != nil {
			t.Fatalf("undismiss failed: %v", err)
		}

		status, _ = f.statusRepo.FindByEntryAndMonth(ctx, entry.ID, 3, 2026)
		if status.Status != entity.EntryStatusPending || status.DismissedAt != nil {
			t.Errorf("expected clean pending status, got %+v", status)
		}
	})

	t.Run("dismissing twice is a no-op", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()

		dismiss := NewDismissEntryUseCase(f.entryRepo, f.statusRepo, f.cache, f.publisher, f.logger)
		input := DismissEntryInput{
			EntryID: entry.ID, OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026, Reason: "first",
		}
		if err := dismiss.Execute(ctx, input); err != nil {
			t.Fatal(err)
		}
		eventsAfterFirst := len(f.publisher.events)

		input.Reason = "second"
		if err := dismiss.Execute(ctx, input); err != nil {
			t.Errorf("repeat dismiss should be silent, got %v", err)
		}
		if len(f.publisher.events) != eventsAfterFirst {
			t.Error("repeat dismiss must not publish another event")
		}

		status, _ := f.statusRepo.FindByEntryAndMonth(ctx, entry.ID, 3, 2026)
		if status.DismissalReason != "first" {
			t.Errorf("repeat dismiss must not overwrite the reason, got %q", status.DismissalReason)
		}
	})

	t.Run("matched entry must be unmatched first", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		tx := f.addTransaction("198.45")

		if err := f.matchUseCase().Execute(ctx, MatchEntryInput{
			EntryID: entry.ID, TransactionID: tx.ID,
			OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026,
		}); err != nil {
			t.Fatal(err)
		}

		dismiss := NewDismissEntryUseCase(f.entryRepo, f.statusRepo, f.cache, f.publisher, f.logger)
		err := dismiss.Execute(ctx, DismissEntryInput{
			EntryID: entry.ID, OwnerType: entity.OwnerTypeUser, OwnerID: f.ownerID,
			Month: 3, Year: 2026, Reason: "cleanup",
		})
		if got := entryErrorCode(t, err); got != domainerror.ErrCodeEntryAlreadyMatched {
			t.Errorf("expected entry-already-matched, got %s", got)
		}
	})

	t.Run("concurrent transition surfaces as stale", func(t *testing.T) {
		f := newMatchingFixture()
		entry := f.addEntry()
		status := entity.NewPlannedEntryStatus(entry.ID, 3, 2026)
		if err := f.statusRepo.Create(ctx, status); err != nil {
			t.Fatal(err)
		}
		// Another writer matched the entry after our read.
		stored := f.statusRepo.statuses[statusKey(entry.ID, 3, 2026)]
		stored.Match(uuid.New(), decimal.RequireFromString("10.00"))
		f.statusRepo.statuses[statusKey(entry.ID, 3, 2026)] = stored

		mutated := status
		mutated.Dismiss("racing")
		err := f.statusRepo.UpdateWithGuard(ctx, mutated, entity.EntryStatusPending)
		if !errors.Is(err, domainerror.ErrStaleStatus) {
			t.Errorf("expected stale status from the guard, got %v", err)
		}
	})
}
