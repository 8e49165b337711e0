// Package account contains account use cases.
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	Name        string
	Institution string
	OwnerType   entity.OwnerType
	OwnerID     uuid.UUID
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	acc := entity.NewAccount(input.Name, input.Institution, input.OwnerType, input.OwnerID)
	if err := uc.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return &CreateAccountOutput{Account: acc}, nil
}

// ListAccountsInput represents the input for the account listing.
type ListAccountsInput struct {
	OwnerType entity.OwnerType
	OwnerID   uuid.UUID
}

// ListAccountsOutput represents the output of the account listing.
type ListAccountsOutput struct {
	Accounts []*entity.Account
}

// ListAccountsUseCase lists an owner's accounts.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute lists the accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByOwner(ctx, input.OwnerType, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ListAccountsOutput{Accounts: accounts}, nil
}
