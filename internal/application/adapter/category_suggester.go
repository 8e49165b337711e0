package adapter

import (
	"context"

	"github.com/google/uuid"
)

// CategorySuggestionRequest carries one transaction and the caller's
// existing categories for the model to choose from.
type CategorySuggestionRequest struct {
	Description string
	Amount      string
	Date        string
	Type        string
	Categories  []*CategoryForSuggestion
}

// CategoryForSuggestion represents category data sent to the model.
type CategoryForSuggestion struct {
	ID   uuid.UUID
	Name string
	Type string
}

// CategorySuggestion is the model's pick among the existing categories.
type CategorySuggestion struct {
	CategoryID uuid.UUID
	Confidence float64
	Reasoning  string
}

// CategorySuggester defines the interface for AI-assisted category suggestions.
type CategorySuggester interface {
	// Suggest proposes a category for a single transaction.
	Suggest(ctx context.Context, request *CategorySuggestionRequest) (*CategorySuggestion, error)

	// IsAvailable checks if the suggestion service is available and properly configured.
	IsAvailable() bool
}
