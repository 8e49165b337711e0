package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for the category suggestion.
type SuggestCategoryInput struct {
	TransactionID uuid.UUID
	OwnerType     entity.OwnerType
	OwnerID       uuid.UUID
}

// SuggestCategoryOutput represents the output of the category suggestion.
type SuggestCategoryOutput struct {
	Suggestion *adapter.CategorySuggestion
	// Available is false when the suggestion service is not configured;
	// the caller gets an empty result, not an error.
	Available bool
}

// SuggestCategoryUseCase asks the AI service to pick a category for an
// uncategorized transaction from the caller's existing categories.
type SuggestCategoryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	suggester       adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	suggester adapter.CategorySuggester,
) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		suggester:       suggester,
	}
}

// Execute performs the suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if !uc.suggester.IsAvailable() {
		return &SuggestCategoryOutput{Available: false}, nil
	}

	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.OwnerType != input.OwnerType || tx.OwnerID != input.OwnerID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"transaction does not belong to caller",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	cats, err := uc.categoryRepo.FindByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}
	categories := make([]*adapter.CategoryForSuggestion, 0, len(cats))
	for _, c := range cats {
		categories = append(categories, &adapter.CategoryForSuggestion{
			ID:   c.ID,
			Name: c.Name,
			Type: string(c.Type),
		})
	}

	suggestion, err := uc.suggester.Suggest(ctx, &adapter.CategorySuggestionRequest{
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Date:        tx.Date.Format("2006-01-02"),
		Type:        string(tx.Type),
		Categories:  categories,
	})
	if err != nil {
		return nil, err
	}

	return &SuggestCategoryOutput{Suggestion: suggestion, Available: true}, nil
}
