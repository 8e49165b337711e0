package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func pendingEntryForMarch(dayStart, dayEnd int) *PlannedEntryWithStatus {
	entry := NewPlannedEntry(
		OwnerTypeUser,
		uuid.New(),
		uuid.New(),
		"Rent",
		"",
		decimal.RequireFromString("1800.00"),
		decimal.Zero,
		dayStart,
		dayEnd,
		EntryTypeExpense,
		true,
	)
	return &PlannedEntryWithStatus{
		Entry:  entry,
		Status: NewPlannedEntryStatus(entry.ID, 3, 2026),
	}
}

func TestEffectiveStatus(t *testing.T) {
	t.Run("nil status reads as pending", func(t *testing.T) {
		ews := &PlannedEntryWithStatus{Entry: pendingEntryForMarch(5, 10).Entry}
		if got := ews.EffectiveStatus(time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)); got != EntryStatusPending {
			t.Errorf("expected pending, got %s", got)
		}
	})

	t.Run("pending inside the day window stays pending", func(t *testing.T) {
		ews := pendingEntryForMarch(5, 10)
		if got := ews.EffectiveStatus(time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)); got != EntryStatusPending {
			t.Errorf("expected pending, got %s", got)
		}
		// The window closes at the end of day 10, not its start.
		if got := ews.EffectiveStatus(time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)); got != EntryStatusPending {
			t.Errorf("expected pending on the last window day, got %s", got)
		}
	})

	t.Run("pending past the day window reads as missed", func(t *testing.T) {
		ews := pendingEntryForMarch(5, 10)
		if got := ews.EffectiveStatus(time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)); got != EntryStatusMissed {
			t.Errorf("expected missed, got %s", got)
		}
	})

	t.Run("no day expectation misses only after the month ends", func(t *testing.T) {
		ews := pendingEntryForMarch(0, 0)
		if got := ews.EffectiveStatus(time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)); got != EntryStatusPending {
			t.Errorf("expected pending on the last day of the month, got %s", got)
		}
		if got := ews.EffectiveStatus(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)); got != EntryStatusMissed {
			t.Errorf("expected missed after the month, got %s", got)
		}
	})

	t.Run("day expectation past the month end clamps to the last day", func(t *testing.T) {
		// Day 31 in a 30-day month.
		entry := pendingEntryForMarch(29, 31).Entry
		ews := &PlannedEntryWithStatus{
			Entry:  entry,
			Status: NewPlannedEntryStatus(entry.ID, 4, 2026),
		}
		if got := ews.EffectiveStatus(time.Date(2026, time.April, 30, 12, 0, 0, 0, time.UTC)); got != EntryStatusPending {
			t.Errorf("expected pending on April 30, got %s", got)
		}
		if got := ews.EffectiveStatus(time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)); got != EntryStatusMissed {
			t.Errorf("expected missed in May, got %s", got)
		}
	})

	t.Run("matched and dismissed are never reclassified", func(t *testing.T) {
		farFuture := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

		matched := pendingEntryForMarch(5, 10)
		matched.Status.Match(uuid.New(), decimal.RequireFromString("1795.00"))
		if got := matched.EffectiveStatus(farFuture); got != EntryStatusMatched {
			t.Errorf("expected matched, got %s", got)
		}

		dismissed := pendingEntryForMarch(5, 10)
		dismissed.Status.Dismiss("moved out")
		if got := dismissed.EffectiveStatus(farFuture); got != EntryStatusDismissed {
			t.Errorf("expected dismissed, got %s", got)
		}
	})
}

func TestPlannedEntryStatus_Transitions(t *testing.T) {
	status := NewPlannedEntryStatus(uuid.New(), 3, 2026)
	txID := uuid.New()

	status.Match(txID, decimal.RequireFromString("99.90"))
	if status.Status != EntryStatusMatched {
		t.Fatalf("expected matched, got %s", status.Status)
	}
	if status.MatchedTransactionID == nil || *status.MatchedTransactionID != txID {
		t.Error("expected matched transaction id recorded")
	}
	if status.MatchedAmount == nil || !status.MatchedAmount.Equal(decimal.RequireFromString("99.90")) {
		t.Error("expected matched amount recorded")
	}

	status.Unmatch()
	if status.Status != EntryStatusPending {
		t.Fatalf("expected pending after unmatch, got %s", status.Status)
	}
	if status.MatchedTransactionID != nil || status.MatchedAmount != nil || status.MatchedAt != nil {
		t.Error("unmatch must clear all match fields")
	}

	status.Dismiss("duplicate of another entry")
	if status.Status != EntryStatusDismissed {
		t.Fatalf("expected dismissed, got %s", status.Status)
	}
	if status.DismissedAt == nil || status.DismissalReason == "" {
		t.Error("dismiss must record when and why")
	}

	status.Undismiss()
	if status.Status != EntryStatusPending {
		t.Fatalf("expected pending after undismiss, got %s", status.Status)
	}
	if status.DismissedAt != nil || status.DismissalReason != "" {
		t.Error("undismiss must clear the dismissal fields")
	}
}

func TestNewPlannedEntry_Normalization(t *testing.T) {
	entry := NewPlannedEntry(
		OwnerTypeUser, uuid.New(), uuid.New(),
		"Internet", "", decimal.RequireFromString("120.00"), decimal.Zero,
		15, 0, EntryTypeExpense, true,
	)

	if !entry.AmountMax.Equal(entry.AmountMin) {
		t.Errorf("single amount should normalize to a degenerate range, got max %s", entry.AmountMax)
	}
	if entry.ExpectedDayEnd != 15 {
		t.Errorf("single day should normalize to a degenerate range, got end %d", entry.ExpectedDayEnd)
	}
	if !entry.IsActive {
		t.Error("new entries start active")
	}
}
