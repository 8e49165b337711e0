// Package transaction contains transaction use cases.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	AccountID   uuid.UUID
	OwnerType   entity.OwnerType
	OwnerID     uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Notes       string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	// AppliedPatternID is set when an active pattern rewrote the new
	// transaction on ingestion.
	AppliedPatternID *uuid.UUID
}

// CreateTransactionUseCase creates a transaction and runs the owner's
// active patterns against it.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	patternRepo     adapter.AdvancedPatternRepository
	cache           adapter.SpendingCache
	logger          *slog.Logger
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	patternRepo adapter.AdvancedPatternRepository,
	cache adapter.SpendingCache,
	logger *slog.Logger,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		patternRepo:     patternRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Type != entity.TransactionTypeDebit && input.Type != entity.TransactionTypeCredit {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'debit' or 'credit'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be a positive magnitude",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account.OwnerType != input.OwnerType || account.OwnerID != input.OwnerID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	tx := entity.NewTransaction(
		input.AccountID,
		input.OwnerType,
		input.OwnerID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		input.Notes,
	)

	out := &CreateTransactionOutput{Transaction: tx}

	patterns, err := uc.patternRepo.FindActiveByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		uc.logger.WarnContext(ctx, "pattern lookup failed on ingestion", "error", err)
	} else {
		for _, p := range patterns {
			if p.Matches(tx) {
				p.Apply(tx)
				patternID := p.ID
				out.AppliedPatternID = &patternID
				break
			}
		}
	}

	if err := uc.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, input.OwnerType, input.OwnerID, int(tx.Date.Month()), tx.Date.Year()); err != nil {
		uc.logger.WarnContext(ctx, "failed to invalidate spending cache", "error", err)
	}
	return out, nil
}
