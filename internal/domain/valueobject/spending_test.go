package valueobject

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

type spendingFixture struct {
	ownerID     uuid.UUID
	accountID   uuid.UUID
	groceriesID uuid.UUID
	salaryID    uuid.UUID
	categories  map[uuid.UUID]*entity.Category
}

func newSpendingFixture() *spendingFixture {
	groceries := entity.NewCategory("Groceries", "#00AA00", "cart", entity.OwnerTypeUser, uuid.New(), entity.CategoryTypeExpense)
	salary := entity.NewCategory("Salary", "#0000AA", "wallet", entity.OwnerTypeUser, groceries.OwnerID, entity.CategoryTypeIncome)

	return &spendingFixture{
		ownerID:     groceries.OwnerID,
		accountID:   uuid.New(),
		groceriesID: groceries.ID,
		salaryID:    salary.ID,
		categories: map[uuid.UUID]*entity.Category{
			groceries.ID: groceries,
			salary.ID:    salary,
		},
	}
}

func (f *spendingFixture) transaction(amount string, day int, txType entity.TransactionType, categoryID *uuid.UUID) *entity.Transaction {
	return entity.NewTransaction(
		f.accountID,
		entity.OwnerTypeUser,
		f.ownerID,
		time.Date(2026, time.March, day, 10, 0, 0, 0, time.UTC),
		"transaction",
		decimal.RequireFromString(amount),
		txType,
		categoryID,
		"",
	)
}

func (f *spendingFixture) entry(categoryID uuid.UUID, amount string, entryType entity.EntryType) *entity.PlannedEntryWithStatus {
	e := entity.NewPlannedEntry(
		entity.OwnerTypeUser,
		f.ownerID,
		categoryID,
		"planned",
		"",
		decimal.RequireFromString(amount),
		decimal.Zero,
		0, 0,
		entryType,
		false,
	)
	return &entity.PlannedEntryWithStatus{
		Entry:  e,
		Status: entity.NewPlannedEntryStatus(e.ID, 3, 2026),
	}
}

func TestComputeActualSpending_NoDoubleCounting(t *testing.T) {
	f := newSpendingFixture()
	month := MonthRef{Month: 3, Year: 2026}

	// A matched entry must contribute its matched amount once; the
	// matched transaction's raw amount is excluded from the raw pass.
	tx := f.transaction("152.30", 5, entity.TransactionTypeDebit, &f.groceriesID)
	matched := f.entry(f.groceriesID, "150.00", entity.EntryTypeExpense)
	matched.Status.Match(tx.ID, tx.Amount)

	report := ComputeActualSpending(month,
		[]*entity.PlannedEntryWithStatus{matched},
		[]*entity.Transaction{tx},
		f.categories)

	if !report.TotalExpenses.Equal(decimal.RequireFromString("152.30")) {
		t.Errorf("expected 152.30 total expenses, got %s", report.TotalExpenses)
	}
	if !report.CategorySpending[f.groceriesID].Equal(decimal.RequireFromString("152.30")) {
		t.Errorf("expected 152.30 for groceries, got %s", report.CategorySpending[f.groceriesID])
	}
}

func TestComputeActualSpending_EntryContributions(t *testing.T) {
	f := newSpendingFixture()
	month := MonthRef{Month: 3, Year: 2026}

	t.Run("pending entry counts at planned amount", func(t *testing.T) {
		pending := f.entry(f.groceriesID, "90.00", entity.EntryTypeExpense)

		report := ComputeActualSpending(month,
			[]*entity.PlannedEntryWithStatus{pending}, nil, f.categories)

		if !report.TotalExpenses.Equal(decimal.RequireFromString("90.00")) {
			t.Errorf("expected 90.00, got %s", report.TotalExpenses)
		}
	})

	t.Run("dismissed entry contributes nothing", func(t *testing.T) {
		dismissed := f.entry(f.groceriesID, "90.00", entity.EntryTypeExpense)
		dismissed.Status.Dismiss("cancelled this month")

		report := ComputeActualSpending(month,
			[]*entity.PlannedEntryWithStatus{dismissed}, nil, f.categories)

		if !report.TotalExpenses.IsZero() {
			t.Errorf("expected zero expenses, got %s", report.TotalExpenses)
		}
		if len(report.Warnings) != 0 {
			t.Errorf("unexpected warnings: %v", report.Warnings)
		}
	})

	t.Run("income entry accumulates separately", func(t *testing.T) {
		income := f.entry(f.salaryID, "5000.00", entity.EntryTypeIncome)
		expense := f.entry(f.groceriesID, "90.00", entity.EntryTypeExpense)

		report := ComputeActualSpending(month,
			[]*entity.PlannedEntryWithStatus{income, expense}, nil, f.categories)

		if !report.TotalIncome.Equal(decimal.RequireFromString("5000.00")) {
			t.Errorf("expected 5000.00 income, got %s", report.TotalIncome)
		}
		if !report.TotalExpenses.Equal(decimal.RequireFromString("90.00")) {
			t.Errorf("expected 90.00 expenses, got %s", report.TotalExpenses)
		}
		if len(report.CategorySpending) != 1 {
			t.Errorf("income must not appear in expense map: %v", report.CategorySpending)
		}
	})

	t.Run("missing category degrades to unknown with a warning", func(t *testing.T) {
		orphan := f.entry(uuid.New(), "40.00", entity.EntryTypeExpense)

		report := ComputeActualSpending(month,
			[]*entity.PlannedEntryWithStatus{orphan}, nil, f.categories)

		if !report.CategorySpending[UnknownCategoryID].Equal(decimal.RequireFromString("40.00")) {
			t.Errorf("expected 40.00 under unknown category, got %s", report.CategorySpending[UnknownCategoryID])
		}
		if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "missing category") {
			t.Errorf("expected one missing-category warning, got %v", report.Warnings)
		}
	})
}

func TestComputeActualSpending_TransactionPass(t *testing.T) {
	f := newSpendingFixture()
	month := MonthRef{Month: 3, Year: 2026}

	t.Run("ignored and out-of-month transactions are skipped", func(t *testing.T) {
		ignored := f.transaction("25.00", 10, entity.TransactionTypeDebit, &f.groceriesID)
		ignored.IsIgnored = true
		outOfMonth := entity.NewTransaction(
			f.accountID, entity.OwnerTypeUser, f.ownerID,
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			"april", decimal.RequireFromString("30.00"),
			entity.TransactionTypeDebit, &f.groceriesID, "")
		counted := f.transaction("12.50", 10, entity.TransactionTypeDebit, &f.groceriesID)

		report := ComputeActualSpending(month, nil,
			[]*entity.Transaction{ignored, outOfMonth, counted}, f.categories)

		if !report.TotalExpenses.Equal(decimal.RequireFromString("12.50")) {
			t.Errorf("expected 12.50, got %s", report.TotalExpenses)
		}
	})

	t.Run("credits count as income", func(t *testing.T) {
		refund := f.transaction("80.00", 12, entity.TransactionTypeCredit, &f.groceriesID)

		report := ComputeActualSpending(month, nil,
			[]*entity.Transaction{refund}, f.categories)

		if !report.TotalIncome.Equal(decimal.RequireFromString("80.00")) {
			t.Errorf("expected credit counted as income, got %s", report.TotalIncome)
		}
		if !report.TotalExpenses.IsZero() {
			t.Errorf("credit must not count as expense, got %s", report.TotalExpenses)
		}
	})

	t.Run("debit in an income category is excluded from both sides", func(t *testing.T) {
		// A debit against an income category is a reversal, not spending.
		reversal := f.transaction("200.00", 15, entity.TransactionTypeDebit, &f.salaryID)

		report := ComputeActualSpending(month, nil,
			[]*entity.Transaction{reversal}, f.categories)

		if !report.TotalExpenses.IsZero() {
			t.Errorf("expected zero expenses, got %s", report.TotalExpenses)
		}
		if !report.TotalIncome.IsZero() {
			t.Errorf("expected zero income, got %s", report.TotalIncome)
		}
	})

	t.Run("uncategorized debit lands in the unknown bucket", func(t *testing.T) {
		stray := f.transaction("18.20", 20, entity.TransactionTypeDebit, nil)

		report := ComputeActualSpending(month, nil,
			[]*entity.Transaction{stray}, f.categories)

		if !report.CategorySpending[UnknownCategoryID].Equal(decimal.RequireFromString("18.20")) {
			t.Errorf("expected 18.20 under unknown, got %s", report.CategorySpending[UnknownCategoryID])
		}
		if len(report.Warnings) != 0 {
			t.Errorf("nil category is not an anomaly, got warnings %v", report.Warnings)
		}
	})

	t.Run("totals round to cents at each accumulation", func(t *testing.T) {
		a := f.transaction("10.005", 3, entity.TransactionTypeDebit, &f.groceriesID)
		b := f.transaction("10.005", 4, entity.TransactionTypeDebit, &f.groceriesID)

		report := ComputeActualSpending(month, nil,
			[]*entity.Transaction{a, b}, f.categories)

		// 10.005 rounds to 10.01 before the second add, so the drift
		// compounds instead of cancelling.
		if !report.TotalExpenses.Equal(decimal.RequireFromString("20.02")) {
			t.Errorf("expected 20.02 with per-step rounding, got %s", report.TotalExpenses)
		}
	})
}
