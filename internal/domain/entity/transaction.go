// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction.
// Amounts are always positive magnitudes; the sign is conveyed here.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// Transaction represents an imported or manually entered bank transaction.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	OwnerType   OwnerType
	OwnerID     uuid.UUID
	Date        time.Time
	Description string
	// OriginalDescription is the description as imported. It is never
	// rewritten, even when an advanced pattern renames the transaction.
	OriginalDescription string
	Amount              decimal.Decimal // Positive magnitude
	Type                TransactionType
	CategoryID          *uuid.UUID // Optional, can be uncategorized
	IsIgnored           bool       // Excluded from all totals when true
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity. The original
// description is captured from the given description at creation time.
func NewTransaction(
	accountID uuid.UUID,
	ownerType OwnerType,
	ownerID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:                  uuid.New(),
		AccountID:           accountID,
		OwnerType:           ownerType,
		OwnerID:             ownerID,
		Date:                date,
		Description:         description,
		OriginalDescription: description,
		Amount:              amount,
		Type:                transactionType,
		CategoryID:          categoryID,
		Notes:               notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// IsDebit reports whether the transaction is an outflow.
func (t *Transaction) IsDebit() bool {
	return t.Type == TransactionTypeDebit
}

// Day returns the transaction's day of month.
func (t *Transaction) Day() int {
	return t.Date.Day()
}
