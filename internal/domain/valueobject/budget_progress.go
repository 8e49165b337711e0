package valueobject

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// BudgetStatus classifies how a budget is tracking against its target.
type BudgetStatus string

const (
	BudgetOnTrack    BudgetStatus = "on_track"
	BudgetWarning    BudgetStatus = "warning"
	BudgetCritical   BudgetStatus = "critical"
	BudgetOverBudget BudgetStatus = "over_budget"
)

// ProgressThresholds holds the variance bands used for status
// classification, as fractions of the planned amount.
type ProgressThresholds struct {
	MinorVariancePercent decimal.Decimal // 0.01
	MajorVariancePercent decimal.Decimal // 0.10
}

// DefaultProgressThresholds returns the standard 1% / 10% bands.
func DefaultProgressThresholds() ProgressThresholds {
	return ProgressThresholds{
		MinorVariancePercent: decimal.NewFromFloat(0.01),
		MajorVariancePercent: decimal.NewFromFloat(0.10),
	}
}

// BudgetProgress is the computed progress report for one budget.
type BudgetProgress struct {
	CategoryID        string
	BudgetType        entity.BudgetType
	PlannedAmount     decimal.Decimal
	ActualSpent       decimal.Decimal
	DaysInMonth       int
	CurrentDay        int
	ProgressPercent   decimal.Decimal
	ExpectedAtDay     decimal.Decimal
	Variance          decimal.Decimal
	ProjectedEndTotal decimal.Decimal
	ProjectedVariance decimal.Decimal
	Status            BudgetStatus
}

// ComputeProgress derives the run-rate progress report for a budget.
// plannedAmount must already be resolved for calculated/maior budgets
// (sum of the category's planned entries for the month); isIncome
// inverts the unfavorable direction before classification.
func ComputeProgress(
	budget *entity.CategoryBudget,
	plannedAmount decimal.Decimal,
	actualSpent decimal.Decimal,
	isIncome bool,
	today time.Time,
	thresholds ProgressThresholds,
) BudgetProgress {
	month := MonthRef{Month: budget.Month, Year: budget.Year}
	daysInMonth := month.DaysInMonth()
	currentDay := month.ElapsedDay(today)

	hundred := decimal.NewFromInt(100)
	progressPercent := decimal.NewFromInt(int64(currentDay)).
		Div(decimal.NewFromInt(int64(daysInMonth))).
		Mul(hundred)

	expectedAtDay := plannedAmount.Mul(progressPercent).Div(hundred)
	variance := actualSpent.Sub(expectedAtDay)

	// Straight-line extrapolation; with no elapsed days there is
	// nothing to extrapolate from.
	projected := actualSpent
	if currentDay > 0 {
		projected = actualSpent.Div(progressPercent).Mul(hundred)
	}
	projectedVariance := projected.Sub(plannedAmount)

	effectiveTarget := plannedAmount
	if budget.Type == entity.BudgetTypeMaior && actualSpent.GreaterThan(plannedAmount) {
		effectiveTarget = actualSpent
	}

	return BudgetProgress{
		CategoryID:        budget.CategoryID.String(),
		BudgetType:        budget.Type,
		PlannedAmount:     plannedAmount,
		ActualSpent:       actualSpent,
		DaysInMonth:       daysInMonth,
		CurrentDay:        currentDay,
		ProgressPercent:   progressPercent.Round(2),
		ExpectedAtDay:     expectedAtDay.Round(2),
		Variance:          variance.Round(2),
		ProjectedEndTotal: projected.Round(2),
		ProjectedVariance: projectedVariance.Round(2),
		Status: classifyStatus(
			variance, projected, effectiveTarget, isIncome, thresholds,
		),
	}
}

// classifyStatus buckets the variance against the planned target.
// Unfavorable means overspend for expenses and under-earning for
// income, so the variance sign is inverted for income budgets.
func classifyStatus(
	variance decimal.Decimal,
	projected decimal.Decimal,
	target decimal.Decimal,
	isIncome bool,
	thresholds ProgressThresholds,
) BudgetStatus {
	unfavorable := variance
	if isIncome {
		unfavorable = variance.Neg()
	}

	if target.IsZero() {
		if unfavorable.IsPositive() {
			return BudgetOverBudget
		}
		return BudgetOnTrack
	}

	if !isIncome && projected.GreaterThan(target) && !target.IsZero() {
		overrun := projected.Sub(target).Div(target.Abs())
		if overrun.GreaterThanOrEqual(thresholds.MajorVariancePercent) {
			return BudgetOverBudget
		}
	}

	ratio := unfavorable.Div(target.Abs())
	switch {
	case ratio.GreaterThanOrEqual(thresholds.MajorVariancePercent):
		return BudgetCritical
	case ratio.GreaterThanOrEqual(thresholds.MinorVariancePercent):
		return BudgetWarning
	default:
		return BudgetOnTrack
	}
}
