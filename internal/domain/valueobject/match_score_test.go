package valueobject

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func testTransaction(amount string, day int, description string, categoryID *uuid.UUID) *entity.Transaction {
	return entity.NewTransaction(
		uuid.New(),
		entity.OwnerTypeUser,
		uuid.New(),
		time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC),
		description,
		decimal.RequireFromString(amount),
		entity.TransactionTypeDebit,
		categoryID,
		"",
	)
}

func testEntry(categoryID uuid.UUID, description string, amount string, dayStart, dayEnd int) *entity.PlannedEntry {
	return entity.NewPlannedEntry(
		entity.OwnerTypeUser,
		uuid.New(),
		categoryID,
		description,
		"",
		decimal.RequireFromString(amount),
		decimal.RequireFromString(amount),
		dayStart,
		dayEnd,
		entity.EntryTypeExpense,
		false,
	)
}

func TestScoreMatch_AmountBands(t *testing.T) {
	cfg := DefaultMatchingConfig()
	categoryID := uuid.New()
	entry := testEntry(categoryID, "Rent", "1000.00", 1, 5)

	tests := []struct {
		name     string
		txAmount string
		minScore string
	}{
		{"exact amount scores 1", "1000.00", "1"},
		{"within 5 percent scores at least 0.95", "1050.00", "0.95"},
		{"within 10 percent scores at least 0.8", "1100.00", "0.8"},
		{"within 20 percent scores at least 0.6", "1200.00", "0.6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := testTransaction(tt.txAmount, 3, "Rent", &categoryID)
			score := ScoreMatch(tx, entry, cfg)
			min := decimal.RequireFromString(tt.minScore)
			if score.AmountScore.LessThan(min) {
				t.Errorf("expected amount score >= %s, got %s", min, score.AmountScore)
			}
		})
	}

	t.Run("amount score decreases monotonically with distance", func(t *testing.T) {
		amounts := []string{"1000.00", "1030.00", "1080.00", "1150.00", "1400.00", "1900.00", "2100.00"}
		var prev decimal.Decimal
		for i, amount := range amounts {
			tx := testTransaction(amount, 3, "Rent", &categoryID)
			score := ScoreMatch(tx, entry, cfg).AmountScore
			if i > 0 && score.GreaterThan(prev) {
				t.Errorf("score for %s (%s) exceeds score for %s (%s)", amount, score, amounts[i-1], prev)
			}
			prev = score
		}
	})

	t.Run("difference at or beyond 100 percent scores zero", func(t *testing.T) {
		tx := testTransaction("2000.00", 3, "Rent", &categoryID)
		score := ScoreMatch(tx, entry, cfg)
		if !score.AmountScore.IsZero() {
			t.Errorf("expected zero amount score, got %s", score.AmountScore)
		}
	})
}

func TestScoreMatch_ComponentWeights(t *testing.T) {
	cfg := DefaultMatchingConfig()
	categoryID := uuid.New()
	entry := testEntry(categoryID, "Rent payment", "1000.00", 1, 5)

	t.Run("perfect match on all components scores near 1 with HIGH confidence", func(t *testing.T) {
		tx := testTransaction("1000.00", 3, "Rent payment", &categoryID)
		score := ScoreMatch(tx, entry, cfg)

		if score.TotalScore.LessThan(decimal.RequireFromString("0.99")) {
			t.Errorf("expected total near 1, got %s", score.TotalScore)
		}
		if score.Confidence != ConfidenceHigh {
			t.Errorf("expected HIGH confidence, got %s", score.Confidence)
		}
	})

	t.Run("category mismatch drops 0.4 of the total", func(t *testing.T) {
		otherCategory := uuid.New()
		tx := testTransaction("1000.00", 3, "Rent payment", &otherCategory)
		score := ScoreMatch(tx, entry, cfg)

		if !score.CategoryScore.IsZero() {
			t.Errorf("expected zero category score, got %s", score.CategoryScore)
		}
		if score.TotalScore.GreaterThan(decimal.RequireFromString("0.6")) {
			t.Errorf("expected total <= 0.6 without category, got %s", score.TotalScore)
		}
	})

	t.Run("uncategorized transaction scores zero on category", func(t *testing.T) {
		tx := testTransaction("1000.00", 3, "Rent payment", nil)
		score := ScoreMatch(tx, entry, cfg)
		if !score.CategoryScore.IsZero() {
			t.Errorf("expected zero category score, got %s", score.CategoryScore)
		}
	})

	t.Run("nil inputs score zero with NONE confidence", func(t *testing.T) {
		score := ScoreMatch(nil, entry, cfg)
		if score.Confidence != ConfidenceNone {
			t.Errorf("expected NONE confidence, got %s", score.Confidence)
		}
	})
}

func TestScoreMatch_DateWindow(t *testing.T) {
	cfg := DefaultMatchingConfig()
	categoryID := uuid.New()
	entry := testEntry(categoryID, "Rent", "1000.00", 5, 10)

	t.Run("day inside the window scores 1", func(t *testing.T) {
		tx := testTransaction("1000.00", 7, "Rent", &categoryID)
		score := ScoreMatch(tx, entry, cfg)
		if !score.DateScore.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected date score 1, got %s", score.DateScore)
		}
	})

	t.Run("day within tolerance of the window scores 0.8", func(t *testing.T) {
		tx := testTransaction("1000.00", 12, "Rent", &categoryID)
		score := ScoreMatch(tx, entry, cfg)
		if !score.DateScore.Equal(decimal.RequireFromString("0.8")) {
			t.Errorf("expected date score 0.8, got %s", score.DateScore)
		}
	})

	t.Run("day far outside the window decays toward zero", func(t *testing.T) {
		tx := testTransaction("1000.00", 28, "Rent", &categoryID)
		score := ScoreMatch(tx, entry, cfg)
		if score.DateScore.GreaterThan(decimal.RequireFromString("0.3")) {
			t.Errorf("expected decayed date score, got %s", score.DateScore)
		}
	})

	t.Run("entry without day expectation scores zero on date", func(t *testing.T) {
		noDay := testEntry(categoryID, "Rent", "1000.00", 0, 0)
		tx := testTransaction("1000.00", 7, "Rent", &categoryID)
		score := ScoreMatch(tx, noDay, cfg)
		if !score.DateScore.IsZero() {
			t.Errorf("expected zero date score, got %s", score.DateScore)
		}
	})
}

func TestScoreMatch_DescriptionPattern(t *testing.T) {
	cfg := DefaultMatchingConfig()
	categoryID := uuid.New()

	t.Run("matching pattern scores 0.95", func(t *testing.T) {
		entry := testEntry(categoryID, "Electric bill", "120.00", 0, 0)
		entry.DescriptionPattern = "ELETROPAULO"
		tx := testTransaction("120.00", 10, "DEB AUT ELETROPAULO 03/26", &categoryID)

		score := ScoreMatch(tx, entry, cfg)
		if !score.DescriptionScore.Equal(decimal.RequireFromString("0.95")) {
			t.Errorf("expected description score 0.95, got %s", score.DescriptionScore)
		}
	})

	t.Run("identical descriptions score 1", func(t *testing.T) {
		entry := testEntry(categoryID, "Gym membership", "80.00", 0, 0)
		tx := testTransaction("80.00", 10, "gym membership", &categoryID)

		score := ScoreMatch(tx, entry, cfg)
		if !score.DescriptionScore.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected description score 1, got %s", score.DescriptionScore)
		}
	})

	t.Run("substring containment scores 0.9", func(t *testing.T) {
		entry := testEntry(categoryID, "Netflix", "39.90", 0, 0)
		tx := testTransaction("39.90", 10, "NETFLIX.COM assinatura", &categoryID)

		score := ScoreMatch(tx, entry, cfg)
		if !score.DescriptionScore.Equal(decimal.RequireFromString("0.9")) {
			t.Errorf("expected description score 0.9, got %s", score.DescriptionScore)
		}
	})
}

func TestConfidenceFor_Thresholds(t *testing.T) {
	cfg := DefaultMatchingConfig()

	tests := []struct {
		score    string
		expected MatchConfidence
	}{
		{"0.70", ConfidenceHigh},
		{"0.85", ConfidenceHigh},
		{"0.69", ConfidenceMedium},
		{"0.50", ConfidenceMedium},
		{"0.49", ConfidenceLow},
		{"0.30", ConfidenceLow},
		{"0.29", ConfidenceNone},
		{"0", ConfidenceNone},
	}

	for _, tt := range tests {
		got := cfg.ConfidenceFor(decimal.RequireFromString(tt.score))
		if got != tt.expected {
			t.Errorf("score %s: expected %s, got %s", tt.score, tt.expected, got)
		}
	}
}

func TestSuggestMatches_RankingAndFiltering(t *testing.T) {
	cfg := DefaultMatchingConfig()
	categoryID := uuid.New()
	otherCategory := uuid.New()

	strong := testEntry(categoryID, "Rent payment", "1000.00", 1, 5)
	medium := testEntry(categoryID, "Insurance", "950.00", 20, 25)
	weak := testEntry(otherCategory, "Groceries", "300.00", 0, 0)

	tx := testTransaction("1000.00", 3, "Rent payment", &categoryID)
	suggestions := SuggestMatches(tx, []*entity.PlannedEntry{weak, medium, strong}, cfg)

	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	if suggestions[0].Entry.ID != strong.ID {
		t.Errorf("expected the strong candidate first, got %s", suggestions[0].Entry.Description)
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Score.TotalScore.GreaterThan(suggestions[i-1].Score.TotalScore) {
			t.Error("suggestions are not sorted by descending total score")
		}
	}
	for _, s := range suggestions {
		if s.Score.Confidence == ConfidenceNone {
			t.Errorf("suggestion %s has NONE confidence and should have been filtered", s.Entry.Description)
		}
	}
}
