package valueobject

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCheckAllocation(t *testing.T) {
	month := MonthRef{Month: 5, Year: 2026}
	tolerance := decimal.NewFromFloat(0.04)

	t.Run("fully allocated income is ok", func(t *testing.T) {
		report := CheckAllocation(month,
			decimal.RequireFromString("5000.00"),
			decimal.RequireFromString("5000.00"),
			tolerance)

		if report.Status != AllocationOK {
			t.Errorf("expected OK, got %s", report.Status)
		}
		if !report.Unallocated.IsZero() {
			t.Errorf("expected zero unallocated, got %s", report.Unallocated)
		}
	})

	t.Run("within tolerance is still ok", func(t *testing.T) {
		// 2% of income left unallocated, under the 4% band.
		report := CheckAllocation(month,
			decimal.RequireFromString("5000.00"),
			decimal.RequireFromString("4900.00"),
			tolerance)

		if report.Status != AllocationOK {
			t.Errorf("expected OK at 2%% unallocated, got %s", report.Status)
		}
		if !report.UnallocatedPercent.Equal(decimal.NewFromInt(2)) {
			t.Errorf("expected 2%% unallocated, got %s", report.UnallocatedPercent)
		}
	})

	t.Run("exactly at tolerance boundary is ok", func(t *testing.T) {
		report := CheckAllocation(month,
			decimal.RequireFromString("5000.00"),
			decimal.RequireFromString("4800.00"),
			tolerance)

		if report.Status != AllocationOK {
			t.Errorf("expected OK at exactly 4%%, got %s", report.Status)
		}
	})

	t.Run("under-allocation past tolerance warns", func(t *testing.T) {
		report := CheckAllocation(month,
			decimal.RequireFromString("5000.00"),
			decimal.RequireFromString("4000.00"),
			tolerance)

		if report.Status != AllocationWarning {
			t.Errorf("expected WARNING, got %s", report.Status)
		}
		if !report.UnallocatedPercent.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected 20%% unallocated, got %s", report.UnallocatedPercent)
		}
		if !strings.Contains(report.Message, "unallocated") {
			t.Errorf("unexpected message: %q", report.Message)
		}
	})

	t.Run("over-allocation warns with the overrun amount", func(t *testing.T) {
		report := CheckAllocation(month,
			decimal.RequireFromString("5000.00"),
			decimal.RequireFromString("5600.00"),
			tolerance)

		if report.Status != AllocationWarning {
			t.Errorf("expected WARNING, got %s", report.Status)
		}
		if !report.Unallocated.Equal(decimal.RequireFromString("-600.00")) {
			t.Errorf("expected -600.00 unallocated, got %s", report.Unallocated)
		}
		if !strings.Contains(report.Message, "exceed income") {
			t.Errorf("unexpected message: %q", report.Message)
		}
	})

	t.Run("zero income is a distinct status", func(t *testing.T) {
		report := CheckAllocation(month,
			decimal.Zero,
			decimal.RequireFromString("1200.00"),
			tolerance)

		if report.Status != AllocationNoIncome {
			t.Errorf("expected NO_INCOME, got %s", report.Status)
		}
		if !report.Unallocated.Equal(decimal.RequireFromString("-1200.00")) {
			t.Errorf("expected -1200.00 unallocated, got %s", report.Unallocated)
		}
		if !report.UnallocatedPercent.IsZero() {
			t.Errorf("expected no percentage without income, got %s", report.UnallocatedPercent)
		}
	})
}
