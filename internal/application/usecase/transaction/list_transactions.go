package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for the transaction listing.
type ListTransactionsInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
	Filter    adapter.TransactionFilter
}

// ListTransactionsOutput represents the output of the transaction listing.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase lists an owner's transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute lists the transactions.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.FindByOwner(ctx, input.OwnerType, input.OwnerID, input.Filter)
	if err != nil {
		return nil, err
	}
	return &ListTransactionsOutput{Transactions: transactions}, nil
}
