package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func patternTransaction(description, amount string, date time.Time) *Transaction {
	return NewTransaction(
		uuid.New(),
		OwnerTypeUser,
		uuid.New(),
		date,
		description,
		decimal.RequireFromString(amount),
		TransactionTypeDebit,
		nil,
		"",
	)
}

func TestAdvancedPattern_Matches(t *testing.T) {
	owner := uuid.New()
	category := uuid.New()
	// 2026-03-07 is a Saturday.
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	t.Run("matches the description case insensitively", func(t *testing.T) {
		p := NewAdvancedPattern(OwnerTypeUser, owner, "eletropaulo", "Electricity", category, false)

		if !p.Matches(patternTransaction("ELETROPAULO 03/2026", "198.45", saturday)) {
			t.Error("expected a case-insensitive description match")
		}
		if p.Matches(patternTransaction("CONDOMINIO EDIF", "198.45", saturday)) {
			t.Error("expected a non-matching description to fail")
		}
	})

	t.Run("matches against the original description after a rewrite", func(t *testing.T) {
		p := NewAdvancedPattern(OwnerTypeUser, owner, "eletropaulo", "Electricity", category, false)
		tx := patternTransaction("ELETROPAULO 03/2026", "198.45", saturday)
		tx.Description = "Electricity"

		if !p.Matches(tx) {
			t.Error("expected the original description to keep matching")
		}
	})

	t.Run("conjunction of sub-patterns must all hold", func(t *testing.T) {
		min := decimal.RequireFromString("100.00")
		max := decimal.RequireFromString("300.00")

		p := NewAdvancedPattern(OwnerTypeUser, owner, "eletropaulo", "Electricity", category, false)
		p.DatePattern = `^2026-03-`
		p.WeekdayPattern = `6` // Saturday
		p.AmountMin = &min
		p.AmountMax = &max

		if !p.Matches(patternTransaction("ELETROPAULO 03/2026", "198.45", saturday)) {
			t.Fatal("expected all sub-patterns to match")
		}
		if p.Matches(patternTransaction("ELETROPAULO 03/2026", "350.00", saturday)) {
			t.Error("expected an amount above the max to fail")
		}
		if p.Matches(patternTransaction("ELETROPAULO 03/2026", "50.00", saturday)) {
			t.Error("expected an amount below the min to fail")
		}
		april := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)
		if p.Matches(patternTransaction("ELETROPAULO 04/2026", "198.45", april)) {
			t.Error("expected a date outside the pattern to fail")
		}
		sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
		p.DatePattern = ""
		if p.Matches(patternTransaction("ELETROPAULO 03/2026", "198.45", sunday)) {
			t.Error("expected a weekday mismatch to fail")
		}
	})

	t.Run("inactive patterns never match", func(t *testing.T) {
		p := NewAdvancedPattern(OwnerTypeUser, owner, "eletropaulo", "Electricity", category, false)
		p.IsActive = false

		if p.Matches(patternTransaction("ELETROPAULO 03/2026", "198.45", saturday)) {
			t.Error("expected an inactive pattern not to match")
		}
	})
}

func TestAdvancedPattern_Apply(t *testing.T) {
	owner := uuid.New()
	category := uuid.New()
	date := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	t.Run("rewrites description and category, keeps original description", func(t *testing.T) {
		p := NewAdvancedPattern(OwnerTypeUser, owner, "eletropaulo", "Electricity", category, false)
		tx := patternTransaction("ELETROPAULO 03/2026", "198.45", date)

		p.Apply(tx)

		if tx.Description != "Electricity" {
			t.Errorf("expected rewritten description, got %q", tx.Description)
		}
		if tx.OriginalDescription != "ELETROPAULO 03/2026" {
			t.Errorf("expected original description preserved, got %q", tx.OriginalDescription)
		}
		if tx.CategoryID == nil || *tx.CategoryID != category {
			t.Error("expected the target category to be set")
		}
	})

	t.Run("empty target description leaves the description alone", func(t *testing.T) {
		p := NewAdvancedPattern(OwnerTypeUser, owner, "eletropaulo", "", category, false)
		tx := patternTransaction("ELETROPAULO 03/2026", "198.45", date)

		p.Apply(tx)

		if tx.Description != "ELETROPAULO 03/2026" {
			t.Errorf("expected description unchanged, got %q", tx.Description)
		}
		if tx.CategoryID == nil || *tx.CategoryID != category {
			t.Error("expected the target category to be set")
		}
	})
}
