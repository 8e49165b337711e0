package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction
// creation. Amounts cross the API as decimal strings.
type CreateTransactionRequest struct {
	AccountID   string  `json:"account_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      string  `json:"amount" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=debit credit"`
	CategoryID  *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Notes       string  `json:"notes,omitempty"`
}

// UpdateTransactionRequest represents the request body for a transaction patch.
type UpdateTransactionRequest struct {
	Description   *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	CategoryID    *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	ClearCategory bool    `json:"clear_category,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	IsIgnored     *bool   `json:"is_ignored,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  string    `json:"id"`
	AccountID           string    `json:"account_id"`
	Date                string    `json:"date"`
	Description         string    `json:"description"`
	OriginalDescription string    `json:"original_description"`
	Amount              string    `json:"amount"`
	Type                string    `json:"type"`
	CategoryID          *string   `json:"category_id,omitempty"`
	IsIgnored           bool      `json:"is_ignored"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// CreateTransactionResponse includes the pattern applied on ingestion, if any.
type CreateTransactionResponse struct {
	Transaction      TransactionResponse `json:"transaction"`
	AppliedPatternID *string             `json:"applied_pattern_id,omitempty"`
}

// SuggestCategoryResponse represents the AI category suggestion response.
type SuggestCategoryResponse struct {
	Available  bool    `json:"available"`
	CategoryID string  `json:"category_id,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// ToTransactionResponse converts a domain Transaction entity to a DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	var categoryID *string
	if tx.CategoryID != nil {
		id := tx.CategoryID.String()
		categoryID = &id
	}

	return TransactionResponse{
		ID:                  tx.ID.String(),
		AccountID:           tx.AccountID.String(),
		Date:                tx.Date.Format("2006-01-02"),
		Description:         tx.Description,
		OriginalDescription: tx.OriginalDescription,
		Amount:              tx.Amount.StringFixed(2),
		Type:                string(tx.Type),
		CategoryID:          categoryID,
		IsIgnored:           tx.IsIgnored,
		Notes:               tx.Notes,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

// ToTransactionListResponse converts transactions to TransactionListResponse.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = ToTransactionResponse(tx)
	}
	return TransactionListResponse{
		Transactions: responses,
	}
}

// ToSuggestCategoryResponse converts a suggestion to its DTO.
func ToSuggestCategoryResponse(suggestion *adapter.CategorySuggestion, available bool) SuggestCategoryResponse {
	resp := SuggestCategoryResponse{Available: available}
	if suggestion != nil {
		resp.CategoryID = suggestion.CategoryID.String()
		resp.Confidence = suggestion.Confidence
		resp.Reasoning = suggestion.Reasoning
	}
	return resp
}
