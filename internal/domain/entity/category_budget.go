package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetType determines how the effective planned amount of a budget is
// derived for a month.
type BudgetType string

const (
	// BudgetTypeFixed uses the stored planned amount as-is.
	BudgetTypeFixed BudgetType = "fixed"
	// BudgetTypeCalculated uses the sum of planned entries in the
	// category for the month.
	BudgetTypeCalculated BudgetType = "calculated"
	// BudgetTypeMaior uses the greater of the stored planned amount and
	// the calculated sum.
	BudgetTypeMaior BudgetType = "maior"
)

// IsValid reports whether the budget type is one of the known kinds.
func (t BudgetType) IsValid() bool {
	switch t {
	case BudgetTypeFixed, BudgetTypeCalculated, BudgetTypeMaior:
		return true
	}
	return false
}

// CategoryBudget is a per-category monthly budget. At most one budget
// exists per (category, month, year).
type CategoryBudget struct {
	ID            uuid.UUID
	OwnerType     OwnerType
	OwnerID       uuid.UUID
	CategoryID    uuid.UUID
	Month         int
	Year          int
	Type          BudgetType
	PlannedAmount decimal.Decimal
	// Consolidation freezes the budget after the month closes.
	IsConsolidated bool
	ConsolidatedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// NewCategoryBudget creates a budget for a category and month.
func NewCategoryBudget(
	ownerType OwnerType,
	ownerID uuid.UUID,
	categoryID uuid.UUID,
	month int,
	year int,
	budgetType BudgetType,
	plannedAmount decimal.Decimal,
) *CategoryBudget {
	now := time.Now().UTC()

	return &CategoryBudget{
		ID:            uuid.New(),
		OwnerType:     ownerType,
		OwnerID:       ownerID,
		CategoryID:    categoryID,
		Month:         month,
		Year:          year,
		Type:          budgetType,
		PlannedAmount: plannedAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// EffectivePlanned resolves the planned amount for the month given the
// calculated sum of planned entries in the category.
func (b *CategoryBudget) EffectivePlanned(calculatedSum decimal.Decimal) decimal.Decimal {
	switch b.Type {
	case BudgetTypeCalculated:
		return calculatedSum
	case BudgetTypeMaior:
		if calculatedSum.GreaterThan(b.PlannedAmount) {
			return calculatedSum
		}
		return b.PlannedAmount
	default:
		return b.PlannedAmount
	}
}

// Consolidate freezes the budget at the given effective amount.
// Consolidating an already consolidated budget is a no-op.
func (b *CategoryBudget) Consolidate(effectiveAmount decimal.Decimal) {
	if b.IsConsolidated {
		return
	}
	now := time.Now().UTC()
	b.PlannedAmount = effectiveAmount
	b.Type = BudgetTypeFixed
	b.IsConsolidated = true
	b.ConsolidatedAt = &now
	b.UpdatedAt = now
}
