package valueobject

import "github.com/shopspring/decimal"

// MatchConfidence labels a match score for filtering and display.
type MatchConfidence string

const (
	ConfidenceHigh   MatchConfidence = "HIGH"
	ConfidenceMedium MatchConfidence = "MEDIUM"
	ConfidenceLow    MatchConfidence = "LOW"
	ConfidenceNone   MatchConfidence = "NONE"
)

// MatchingConfig contains the configuration for transaction-to-entry matching.
type MatchingConfig struct {
	// Sub-score weights, must sum to 1.0
	CategoryWeight    decimal.Decimal // 0.4
	AmountWeight      decimal.Decimal // 0.3
	DescriptionWeight decimal.Decimal // 0.2
	DateWeight        decimal.Decimal // 0.1

	// Confidence thresholds on the total score
	HighThreshold   decimal.Decimal // 0.7
	MediumThreshold decimal.Decimal // 0.5
	LowThreshold    decimal.Decimal // 0.3

	// DateToleranceDays is the window around a single expected day that
	// still scores high.
	DateToleranceDays int // 3
}

// DefaultMatchingConfig returns the default matching configuration.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		CategoryWeight:    decimal.NewFromFloat(0.4),
		AmountWeight:      decimal.NewFromFloat(0.3),
		DescriptionWeight: decimal.NewFromFloat(0.2),
		DateWeight:        decimal.NewFromFloat(0.1),
		HighThreshold:     decimal.NewFromFloat(0.7),
		MediumThreshold:   decimal.NewFromFloat(0.5),
		LowThreshold:      decimal.NewFromFloat(0.3),
		DateToleranceDays: 3,
	}
}

// ConfidenceFor discretizes a total score into a confidence label.
func (c MatchingConfig) ConfidenceFor(totalScore decimal.Decimal) MatchConfidence {
	switch {
	case totalScore.GreaterThanOrEqual(c.HighThreshold):
		return ConfidenceHigh
	case totalScore.GreaterThanOrEqual(c.MediumThreshold):
		return ConfidenceMedium
	case totalScore.GreaterThanOrEqual(c.LowThreshold):
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}
