package valueobject

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// UnknownCategoryID buckets spending whose category no longer exists.
var UnknownCategoryID = uuid.Nil

// SpendingReport is the result of reconciling a month's planned entries
// against its transactions.
type SpendingReport struct {
	Month MonthRef
	// CategorySpending maps category to cumulative expense amount,
	// rounded to 2 decimal places at each accumulation step.
	CategorySpending map[uuid.UUID]decimal.Decimal
	// IncomeByCategory tracks income separately from expense spending.
	IncomeByCategory map[uuid.UUID]decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalIncome      decimal.Decimal
	// Warnings records non-fatal data integrity anomalies found while
	// aggregating. A bad record degrades the report, never aborts it.
	Warnings []string
}

// ComputeActualSpending aggregates a month's spending per category
// without double counting. A transaction referenced as the match of a
// planned entry contributes through the entry's matched amount only;
// its raw amount is excluded from the transaction pass. Dismissed
// entries contribute nothing. Income entries and income-category
// transactions are aggregated separately from expenses.
//
// Pure function of its inputs.
func ComputeActualSpending(
	month MonthRef,
	entries []*entity.PlannedEntryWithStatus,
	transactions []*entity.Transaction,
	categories map[uuid.UUID]*entity.Category,
) *SpendingReport {
	report := &SpendingReport{
		Month:            month,
		CategorySpending: make(map[uuid.UUID]decimal.Decimal),
		IncomeByCategory: make(map[uuid.UUID]decimal.Decimal),
	}

	// Pass 1: collect the transactions already accounted for by a match.
	matched := make(map[uuid.UUID]struct{})
	for _, e := range entries {
		if e.Status != nil && e.Status.Status == entity.EntryStatusMatched && e.Status.MatchedTransactionID != nil {
			matched[*e.Status.MatchedTransactionID] = struct{}{}
		}
	}

	// Pass 2: planned entries. Pending and missed entries count at
	// their planned amount, matched entries at the actual matched
	// amount. Dismissed entries are excluded entirely.
	for _, e := range entries {
		if e.Entry == nil || !e.CountsTowardSpending() {
			continue
		}

		amount := e.SpendingContribution()
		categoryID := e.Entry.CategoryID
		category, ok := categories[categoryID]
		if !ok {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("planned entry %s references missing category %s", e.Entry.ID, categoryID))
			categoryID = UnknownCategoryID
		}

		if e.Entry.IsIncome() || (ok && category.IsIncome()) {
			report.addIncome(categoryID, amount)
			continue
		}
		report.addExpense(categoryID, amount)
	}

	// Pass 3: raw transactions not behind a matched entry.
	for _, tx := range transactions {
		if tx.IsIgnored || !month.Contains(tx.Date) {
			continue
		}
		if _, ok := matched[tx.ID]; ok {
			continue
		}

		categoryID := UnknownCategoryID
		var category *entity.Category
		if tx.CategoryID != nil {
			categoryID = *tx.CategoryID
			var ok bool
			category, ok = categories[categoryID]
			if !ok {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("transaction %s references missing category %s", tx.ID, categoryID))
				categoryID = UnknownCategoryID
				category = nil
			}
		}

		isIncome := !tx.IsDebit() || (category != nil && category.IsIncome())
		if isIncome {
			if !tx.IsDebit() {
				report.addIncome(categoryID, tx.Amount)
			}
			continue
		}
		report.addExpense(categoryID, tx.Amount)
	}

	return report
}

func (r *SpendingReport) addExpense(categoryID uuid.UUID, amount decimal.Decimal) {
	r.CategorySpending[categoryID] = r.CategorySpending[categoryID].Add(amount).Round(2)
	r.TotalExpenses = r.TotalExpenses.Add(amount).Round(2)
}

func (r *SpendingReport) addIncome(categoryID uuid.UUID, amount decimal.Decimal) {
	r.IncomeByCategory[categoryID] = r.IncomeByCategory[categoryID].Add(amount).Round(2)
	r.TotalIncome = r.TotalIncome.Add(amount).Round(2)
}
