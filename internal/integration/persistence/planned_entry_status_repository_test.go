package persistence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database keeps the pool's connections on the
	// same data while isolating tests from each other.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.PlannedEntryStatusModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPlannedEntryStatusRepository_UpdateWithGuard(t *testing.T) {
	ctx := context.Background()
	repo := NewPlannedEntryStatusRepository(newTestDB(t))

	entryID := uuid.New()
	status := entity.NewPlannedEntryStatus(entryID, 3, 2026)
	if err := repo.Create(ctx, status); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("guard passes when the stored status matches", func(t *testing.T) {
		txID := uuid.New()
		status.Match(txID, decimal.RequireFromString("150.00"))
		if err := repo.UpdateWithGuard(ctx, status, entity.EntryStatusPending); err != nil {
			t.Fatalf("guarded update failed: %v", err)
		}

		stored, err := repo.FindByEntryAndMonth(ctx, entryID, 3, 2026)
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if stored.Status != entity.EntryStatusMatched {
			t.Errorf("expected matched, got %s", stored.Status)
		}
		if stored.MatchedTransactionID == nil || *stored.MatchedTransactionID != txID {
			t.Error("expected matched transaction id persisted")
		}
		if stored.MatchedAmount == nil || !stored.MatchedAmount.Equal(decimal.RequireFromString("150.00")) {
			t.Error("expected matched amount persisted")
		}
	})

	t.Run("guard fails against a stale expectation", func(t *testing.T) {
		// The record is matched now; a writer still assuming pending loses.
		stale := *status
		stale.Dismiss("late writer")
		err := repo.UpdateWithGuard(ctx, &stale, entity.EntryStatusPending)
		if !errors.Is(err, domainerror.ErrStaleStatus) {
			t.Errorf("expected ErrStaleStatus, got %v", err)
		}

		stored, _ := repo.FindByEntryAndMonth(ctx, entryID, 3, 2026)
		if stored.Status != entity.EntryStatusMatched {
			t.Errorf("losing writer must not change the record, got %s", stored.Status)
		}
	})

	t.Run("guarded unmatch clears the match columns", func(t *testing.T) {
		status.Unmatch()
		if err := repo.UpdateWithGuard(ctx, status, entity.EntryStatusMatched); err != nil {
			t.Fatalf("guarded unmatch failed: %v", err)
		}

		stored, _ := repo.FindByEntryAndMonth(ctx, entryID, 3, 2026)
		if stored.Status != entity.EntryStatusPending {
			t.Errorf("expected pending, got %s", stored.Status)
		}
		if stored.MatchedTransactionID != nil || stored.MatchedAmount != nil || stored.MatchedAt != nil {
			t.Error("expected match columns nulled out")
		}
	})
}

func TestPlannedEntryStatusRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewPlannedEntryStatusRepository(newTestDB(t))

	t.Run("missing status maps to the domain sentinel", func(t *testing.T) {
		if _, err := repo.FindByEntryAndMonth(ctx, uuid.New(), 3, 2026); !errors.Is(err, domainerror.ErrEntryStatusNotFound) {
			t.Errorf("expected ErrEntryStatusNotFound, got %v", err)
		}
		if _, err := repo.FindByMatchedTransaction(ctx, uuid.New(), 3, 2026); !errors.Is(err, domainerror.ErrEntryStatusNotFound) {
			t.Errorf("expected ErrEntryStatusNotFound, got %v", err)
		}
	})

	t.Run("matched transaction lookup is scoped to the month", func(t *testing.T) {
		txID := uuid.New()
		march := entity.NewPlannedEntryStatus(uuid.New(), 3, 2026)
		march.Match(txID, decimal.RequireFromString("99.00"))
		if err := repo.Create(ctx, march); err != nil {
			t.Fatal(err)
		}

		found, err := repo.FindByMatchedTransaction(ctx, txID, 3, 2026)
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if found.EntryID != march.EntryID {
			t.Error("expected the march status")
		}

		if _, err := repo.FindByMatchedTransaction(ctx, txID, 4, 2026); !errors.Is(err, domainerror.ErrEntryStatusNotFound) {
			t.Errorf("april lookup must miss, got %v", err)
		}
	})

	t.Run("find by month returns only the requested entries", func(t *testing.T) {
		a := entity.NewPlannedEntryStatus(uuid.New(), 5, 2026)
		b := entity.NewPlannedEntryStatus(uuid.New(), 5, 2026)
		other := entity.NewPlannedEntryStatus(uuid.New(), 5, 2026)
		for _, s := range []*entity.PlannedEntryStatus{a, b, other} {
			if err := repo.Create(ctx, s); err != nil {
				t.Fatal(err)
			}
		}

		statuses, err := repo.FindByMonth(ctx, []uuid.UUID{a.EntryID, b.EntryID}, 5, 2026)
		if err != nil {
			t.Fatalf("find by month failed: %v", err)
		}
		if len(statuses) != 2 {
			t.Errorf("expected 2 statuses, got %d", len(statuses))
		}

		statuses, err = repo.FindByMonth(ctx, nil, 5, 2026)
		if err != nil {
			t.Fatalf("empty id list failed: %v", err)
		}
		if len(statuses) != 0 {
			t.Errorf("empty id list must return nothing, got %d", len(statuses))
		}
	})
}
