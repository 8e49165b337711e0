package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	OwnerType           string          `gorm:"type:varchar(15);not null"`
	OwnerID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_owner_date"`
	Date                time.Time       `gorm:"not null;index:idx_transactions_owner_date"`
	Description         string          `gorm:"type:varchar(255);not null"`
	OriginalDescription string          `gorm:"type:varchar(255);not null"`
	Amount              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Type                string          `gorm:"type:varchar(10);not null"`
	CategoryID          *uuid.UUID      `gorm:"type:uuid;index"`
	IsIgnored           bool            `gorm:"not null;default:false"`
	Notes               string          `gorm:"type:text"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:                  m.ID,
		AccountID:           m.AccountID,
		OwnerType:           entity.OwnerType(m.OwnerType),
		OwnerID:             m.OwnerID,
		Date:                m.Date,
		Description:         m.Description,
		OriginalDescription: m.OriginalDescription,
		Amount:              m.Amount,
		Type:                entity.TransactionType(m.Type),
		CategoryID:          m.CategoryID,
		IsIgnored:           m.IsIgnored,
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if tx.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *tx.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:                  tx.ID,
		AccountID:           tx.AccountID,
		OwnerType:           string(tx.OwnerType),
		OwnerID:             tx.OwnerID,
		Date:                tx.Date,
		Description:         tx.Description,
		OriginalDescription: tx.OriginalDescription,
		Amount:              tx.Amount,
		Type:                string(tx.Type),
		CategoryID:          tx.CategoryID,
		IsIgnored:           tx.IsIgnored,
		Notes:               tx.Notes,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
