package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for a transaction patch.
// Nil pointer fields are left unchanged. The original description and
// amount are immutable after import.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	OwnerType     entity.OwnerType
	OwnerID       uuid.UUID

	Description *string
	CategoryID  *uuid.UUID
	ClearCategory bool
	Notes       *string
	IsIgnored   *bool
}

// UpdateTransactionOutput represents the output of a transaction patch.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase patches a transaction's mutable fields.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.SpendingCache
	logger          *slog.Logger
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.SpendingCache,
	logger *slog.Logger,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute performs the patch.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
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

	if input.Description != nil {
		tx.Description = *input.Description
	}
	if input.ClearCategory {
		tx.CategoryID = nil
	} else if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.OwnerType != input.OwnerType || category.OwnerID != input.OwnerID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		tx.CategoryID = input.CategoryID
	}
	if input.Notes != nil {
		tx.Notes = *input.Notes
	}
	if input.IsIgnored != nil {
		tx.IsIgnored = *input.IsIgnored
	}
	tx.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, input.OwnerType, input.OwnerID, int(tx.Date.Month()), tx.Date.Year()); err != nil {
		uc.logger.WarnContext(ctx, "failed to invalidate spending cache", "error", err)
	}
	return &UpdateTransactionOutput{Transaction: tx}, nil
}
