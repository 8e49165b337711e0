// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a bank account that transactions are imported into.
type Account struct {
	ID          uuid.UUID
	Name        string
	Institution string
	OwnerType   OwnerType
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewAccount creates a new Account entity.
func NewAccount(name, institution string, ownerType OwnerType, ownerID uuid.UUID) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:          uuid.New(),
		Name:        name,
		Institution: institution,
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
