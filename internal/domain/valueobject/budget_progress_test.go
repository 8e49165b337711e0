package valueobject

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func testBudget(month, year int, budgetType entity.BudgetType, planned string) *entity.CategoryBudget {
	return entity.NewCategoryBudget(
		entity.OwnerTypeUser,
		uuid.New(),
		uuid.New(),
		month,
		year,
		budgetType,
		decimal.RequireFromString(planned),
	)
}

func TestComputeProgress_RunRate(t *testing.T) {
	thresholds := DefaultProgressThresholds()
	budget := testBudget(4, 2026, entity.BudgetTypeFixed, "3000.00")
	planned := decimal.RequireFromString("3000.00")

	t.Run("mid month linear expectation", func(t *testing.T) {
		// Day 15 of a 30-day month: expected half the budget.
		today := time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)
		progress := ComputeProgress(budget, planned, decimal.RequireFromString("1500.00"), false, today, thresholds)

		if progress.DaysInMonth != 30 {
			t.Errorf("expected 30 days in April, got %d", progress.DaysInMonth)
		}
		if progress.CurrentDay != 15 {
			t.Errorf("expected current day 15, got %d", progress.CurrentDay)
		}
		if !progress.ExpectedAtDay.Equal(decimal.RequireFromString("1500.00")) {
			t.Errorf("expected 1500.00 at day 15, got %s", progress.ExpectedAtDay)
		}
		if !progress.Variance.IsZero() {
			t.Errorf("expected zero variance, got %s", progress.Variance)
		}
		if !progress.ProjectedEndTotal.Equal(decimal.RequireFromString("3000.00")) {
			t.Errorf("expected projection 3000.00, got %s", progress.ProjectedEndTotal)
		}
		if progress.Status != BudgetOnTrack {
			t.Errorf("expected on_track, got %s", progress.Status)
		}
	})

	t.Run("last day of month has full expectation", func(t *testing.T) {
		today := time.Date(2026, time.April, 30, 23, 0, 0, 0, time.UTC)
		progress := ComputeProgress(budget, planned, decimal.RequireFromString("2900.00"), false, today, thresholds)

		if progress.CurrentDay != progress.DaysInMonth {
			t.Errorf("expected current day == days in month, got %d/%d", progress.CurrentDay, progress.DaysInMonth)
		}
		if !progress.ProgressPercent.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 100%% progress, got %s", progress.ProgressPercent)
		}
		if !progress.ExpectedAtDay.Equal(planned) {
			t.Errorf("expected full planned amount, got %s", progress.ExpectedAtDay)
		}
	})

	t.Run("future month projects from zero elapsed days", func(t *testing.T) {
		today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
		progress := ComputeProgress(budget, planned, decimal.Zero, false, today, thresholds)

		if progress.CurrentDay != 0 {
			t.Errorf("expected current day 0 for a future month, got %d", progress.CurrentDay)
		}
		if !progress.ProjectedEndTotal.IsZero() {
			t.Errorf("expected zero projection with no elapsed days, got %s", progress.ProjectedEndTotal)
		}
	})
}

func TestComputeProgress_StatusClassification(t *testing.T) {
	thresholds := DefaultProgressThresholds()
	budget := testBudget(4, 2026, entity.BudgetTypeFixed, "1000.00")
	planned := decimal.RequireFromString("1000.00")
	// Day 15 of 30: expected 500.
	today := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		spent    string
		expected BudgetStatus
	}{
		{"at expectation is on_track", "500.00", BudgetOnTrack},
		{"under minor variance is on_track", "505.00", BudgetOnTrack},
		{"between minor and major variance is warning", "520.00", BudgetWarning},
		{"projected overrun past major variance is over_budget", "600.00", BudgetOverBudget},
		{"underspending is on_track", "300.00", BudgetOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := ComputeProgress(budget, planned, decimal.RequireFromString(tt.spent), false, today, thresholds)
			if progress.Status != tt.expected {
				t.Errorf("spent %s: expected %s, got %s (variance %s, projected %s)",
					tt.spent, tt.expected, progress.Status, progress.Variance, progress.ProjectedEndTotal)
			}
		})
	}

	t.Run("income budget inverts the unfavorable direction", func(t *testing.T) {
		// Earning less than expected is the unfavorable case for income.
		progress := ComputeProgress(budget, planned, decimal.RequireFromString("300.00"), true, today, thresholds)
		if progress.Status != BudgetCritical {
			t.Errorf("expected critical for under-earning income, got %s", progress.Status)
		}

		progress = ComputeProgress(budget, planned, decimal.RequireFromString("600.00"), true, today, thresholds)
		if progress.Status != BudgetOnTrack {
			t.Errorf("expected on_track for over-earning income, got %s", progress.Status)
		}
	})

	t.Run("zero planned amount with spending is over_budget", func(t *testing.T) {
		zeroBudget := testBudget(4, 2026, entity.BudgetTypeFixed, "0")
		progress := ComputeProgress(zeroBudget, decimal.Zero, decimal.RequireFromString("50.00"), false, today, thresholds)
		if progress.Status != BudgetOverBudget {
			t.Errorf("expected over_budget, got %s", progress.Status)
		}
	})
}

func TestComputeProgress_MaiorTargetRatchet(t *testing.T) {
	thresholds := DefaultProgressThresholds()
	budget := testBudget(4, 2026, entity.BudgetTypeMaior, "400.00")
	planned := decimal.RequireFromString("400.00")
	today := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)

	// A maior budget treats actual spending above plan as the new
	// target, so heavy overspending alone does not read as over_budget.
	progress := ComputeProgress(budget, planned, decimal.RequireFromString("700.00"), false, today, thresholds)
	if progress.Status == BudgetOnTrack {
		t.Errorf("overspent maior budget should still flag variance, got %s", progress.Status)
	}
	if !progress.ActualSpent.Equal(decimal.RequireFromString("700.00")) {
		t.Errorf("expected actual spent carried through, got %s", progress.ActualSpent)
	}
}

func TestMonthRef(t *testing.T) {
	t.Run("rejects out-of-range months", func(t *testing.T) {
		if _, err := NewMonthRef(0, 2026); err == nil {
			t.Error("expected error for month 0")
		}
		if _, err := NewMonthRef(13, 2026); err == nil {
			t.Error("expected error for month 13")
		}
		if _, err := NewMonthRef(6, 2026); err != nil {
			t.Errorf("unexpected error for valid month: %v", err)
		}
	})

	t.Run("days in month handles leap years", func(t *testing.T) {
		feb2026 := MonthRef{Month: 2, Year: 2026}
		if got := feb2026.DaysInMonth(); got != 28 {
			t.Errorf("expected 28 days in Feb 2026, got %d", got)
		}
		feb2028 := MonthRef{Month: 2, Year: 2028}
		if got := feb2028.DaysInMonth(); got != 29 {
			t.Errorf("expected 29 days in Feb 2028, got %d", got)
		}
	})

	t.Run("elapsed day clamps outside the month", func(t *testing.T) {
		m := MonthRef{Month: 4, Year: 2026}
		if got := m.ElapsedDay(time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)); got != 0 {
			t.Errorf("expected 0 before the month, got %d", got)
		}
		if got := m.ElapsedDay(time.Date(2026, time.April, 17, 8, 0, 0, 0, time.UTC)); got != 17 {
			t.Errorf("expected 17 inside the month, got %d", got)
		}
		if got := m.ElapsedDay(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)); got != 30 {
			t.Errorf("expected full month after it ended, got %d", got)
		}
	})

	t.Run("prev and next wrap across years", func(t *testing.T) {
		jan := MonthRef{Month: 1, Year: 2026}
		if prev := jan.Prev(); prev.Month != 12 || prev.Year != 2025 {
			t.Errorf("expected 2025-12, got %s", prev)
		}
		dec := MonthRef{Month: 12, Year: 2026}
		if next := dec.Next(); next.Month != 1 || next.Year != 2027 {
			t.Errorf("expected 2027-01, got %s", next)
		}
	})
}
