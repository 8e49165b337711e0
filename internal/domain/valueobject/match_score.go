package valueobject

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MatchScore is the result of scoring a transaction against a planned
// entry. Sub-scores are in [0,1]; TotalScore is their weighted sum.
type MatchScore struct {
	CategoryScore    decimal.Decimal
	AmountScore      decimal.Decimal
	DescriptionScore decimal.Decimal
	DateScore        decimal.Decimal
	TotalScore       decimal.Decimal
	Confidence       MatchConfidence
}

// MatchCandidate pairs a planned entry with its score for ranking.
type MatchCandidate struct {
	Entry *entity.PlannedEntry
	Score MatchScore
}

// ScoreMatch scores how well a transaction matches a planned entry. It
// is total: nil or degenerate inputs yield a zero score with NONE
// confidence, never an error.
func ScoreMatch(tx *entity.Transaction, entry *entity.PlannedEntry, cfg MatchingConfig) MatchScore {
	if tx == nil || entry == nil {
		return MatchScore{Confidence: ConfidenceNone}
	}

	categoryScore := scoreCategory(tx, entry)
	amountScore := scoreAmount(tx.Amount, entry.PlannedAmount())
	descriptionScore := scoreDescription(tx, entry)
	dateScore := scoreDate(tx.Day(), entry, cfg.DateToleranceDays)

	total := categoryScore.Mul(cfg.CategoryWeight).
		Add(amountScore.Mul(cfg.AmountWeight)).
		Add(descriptionScore.Mul(cfg.DescriptionWeight)).
		Add(dateScore.Mul(cfg.DateWeight))

	return MatchScore{
		CategoryScore:    categoryScore,
		AmountScore:      amountScore,
		DescriptionScore: descriptionScore,
		DateScore:        dateScore,
		TotalScore:       total,
		Confidence:       cfg.ConfidenceFor(total),
	}
}

// SuggestMatches scores a transaction against every candidate entry and
// returns candidates at or above the LOW confidence threshold, sorted
// by total score descending. Pure function of its inputs.
func SuggestMatches(tx *entity.Transaction, candidates []*entity.PlannedEntry, cfg MatchingConfig) []MatchCandidate {
	suggestions := make([]MatchCandidate, 0, len(candidates))
	for _, entry := range candidates {
		score := ScoreMatch(tx, entry, cfg)
		if score.Confidence == ConfidenceNone {
			continue
		}
		suggestions = append(suggestions, MatchCandidate{Entry: entry, Score: score})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score.TotalScore.GreaterThan(suggestions[j].Score.TotalScore)
	})

	return suggestions
}

func scoreCategory(tx *entity.Transaction, entry *entity.PlannedEntry) decimal.Decimal {
	if tx.CategoryID != nil && *tx.CategoryID == entry.CategoryID {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// scoreAmount maps the relative difference r = |tx - planned| / planned
// onto a piecewise-linear curve that decreases monotonically:
// r <= 5% scores at least 0.95, r <= 10% at least 0.8, r <= 20% at
// least 0.6, then degrades linearly to zero at r = 100%.
func scoreAmount(txAmount, plannedAmount decimal.Decimal) decimal.Decimal {
	if plannedAmount.IsZero() {
		if txAmount.IsZero() {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	}

	r := txAmount.Sub(plannedAmount).Abs().Div(plannedAmount.Abs())

	one := decimal.NewFromInt(1)
	switch {
	case r.LessThanOrEqual(decimal.NewFromFloat(0.05)):
		return one.Sub(r)
	case r.LessThanOrEqual(decimal.NewFromFloat(0.20)):
		// 0.95 at r=0.05 down to 0.65 at r=0.20
		return decimal.NewFromFloat(0.95).
			Sub(r.Sub(decimal.NewFromFloat(0.05)).Mul(decimal.NewFromInt(2)))
	case r.LessThan(one):
		// 0.65 at r=0.20 down to 0 at r=1
		return decimal.NewFromFloat(0.65).
			Mul(one.Sub(r)).
			Div(decimal.NewFromFloat(0.8))
	default:
		return decimal.Zero
	}
}

func scoreDescription(tx *entity.Transaction, entry *entity.PlannedEntry) decimal.Decimal {
	// An explicit pattern that matches is a strong signal.
	if entry.DescriptionPattern != "" {
		if matchesPattern(entry.DescriptionPattern, tx.Description) ||
			matchesPattern(entry.DescriptionPattern, tx.OriginalDescription) {
			return decimal.NewFromFloat(0.95)
		}
	}

	best := similarity(entry.Description, tx.Description)
	if s := similarity(entry.Description, tx.OriginalDescription); s.GreaterThan(best) {
		best = s
	}
	return best
}

// matchesPattern treats the pattern as a case-insensitive regex,
// falling back to substring containment when it does not compile.
func matchesPattern(pattern, text string) bool {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return strings.Contains(strings.ToLower(text), strings.ToLower(pattern))
	}
	return re.MatchString(text)
}

// similarity is a normalized edit-distance metric in [0,1].
func similarity(a, b string) decimal.Decimal {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return decimal.Zero
	}
	if a == b {
		return decimal.NewFromInt(1)
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return decimal.NewFromFloat(0.9)
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return decimal.NewFromInt(1).
		Sub(decimal.NewFromInt(int64(dist)).Div(decimal.NewFromInt(int64(maxLen))))
}

// scoreDate scores the transaction's day of month against the entry's
// expected day range. An entry without a day expectation carries no
// date information and scores zero.
func scoreDate(day int, entry *entity.PlannedEntry, toleranceDays int) decimal.Decimal {
	if !entry.HasDayExpectation() {
		return decimal.Zero
	}
	if entry.DayInRange(day) {
		return decimal.NewFromInt(1)
	}

	dist := entry.ExpectedDayStart - day
	if day > entry.ExpectedDayEnd {
		dist = day - entry.ExpectedDayEnd
	}
	if dist <= toleranceDays {
		return decimal.NewFromFloat(0.8)
	}

	// Decay past the tolerance window, zero beyond two weeks out.
	score := decimal.NewFromFloat(0.8).
		Sub(decimal.NewFromInt(int64(dist - toleranceDays)).Mul(decimal.NewFromFloat(0.08)))
	if score.IsNegative() {
		return decimal.Zero
	}
	return score
}
