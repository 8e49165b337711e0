package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AllocationStatus summarizes how fully the month's income is allocated
// to planned expenses.
type AllocationStatus string

const (
	AllocationOK       AllocationStatus = "OK"
	AllocationWarning  AllocationStatus = "WARNING"
	AllocationNoIncome AllocationStatus = "NO_INCOME"
)

// IncomePlanningReport is the output of the allocation check.
type IncomePlanningReport struct {
	Month               MonthRef
	TotalIncome         decimal.Decimal
	TotalPlannedExpense decimal.Decimal
	Unallocated         decimal.Decimal
	UnallocatedPercent  decimal.Decimal
	Status              AllocationStatus
	Message             string
}

// CheckAllocation compares total income against total planned expense
// for a month. tolerancePercent is the band around full allocation that
// still counts as OK, as a fraction (0.04 = 4%). A month with no income
// reports a distinct NO_INCOME status instead of dividing by zero.
func CheckAllocation(
	month MonthRef,
	totalIncome decimal.Decimal,
	totalPlannedExpense decimal.Decimal,
	tolerancePercent decimal.Decimal,
) IncomePlanningReport {
	report := IncomePlanningReport{
		Month:               month,
		TotalIncome:         totalIncome,
		TotalPlannedExpense: totalPlannedExpense,
	}

	if totalIncome.IsZero() {
		report.Unallocated = totalPlannedExpense.Neg()
		report.Status = AllocationNoIncome
		report.Message = "no income registered for this month"
		return report
	}

	report.Unallocated = totalIncome.Sub(totalPlannedExpense).Round(2)
	report.UnallocatedPercent = report.Unallocated.
		Div(totalIncome).
		Mul(decimal.NewFromInt(100)).
		Round(2)

	toleranceAsPercent := tolerancePercent.Mul(decimal.NewFromInt(100))
	if report.UnallocatedPercent.Abs().LessThanOrEqual(toleranceAsPercent) {
		report.Status = AllocationOK
		report.Message = "income is well allocated"
		return report
	}

	report.Status = AllocationWarning
	if report.Unallocated.IsPositive() {
		report.Message = fmt.Sprintf("%s%% of income is unallocated", report.UnallocatedPercent)
	} else {
		report.Message = fmt.Sprintf("planned expenses exceed income by %s", report.Unallocated.Abs())
	}
	return report
}
