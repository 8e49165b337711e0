package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategoryBudgetModel represents the category_budgets table. The unique
// index on (category_id, month, year) keeps one budget per category per
// month.
type CategoryBudgetModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerType      string          `gorm:"type:varchar(15);not null"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_budget_category_month"`
	Month          int             `gorm:"not null;uniqueIndex:uq_budget_category_month"`
	Year           int             `gorm:"not null;uniqueIndex:uq_budget_category_month"`
	Type           string          `gorm:"type:varchar(12);not null"`
	PlannedAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsConsolidated bool            `gorm:"not null;default:false"`
	ConsolidatedAt *time.Time
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the CategoryBudgetModel.
func (CategoryBudgetModel) TableName() string {
	return "category_budgets"
}

// ToEntity converts a CategoryBudgetModel to a domain entity.
func (m *CategoryBudgetModel) ToEntity() *entity.CategoryBudget {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.CategoryBudget{
		ID:             m.ID,
		OwnerType:      entity.OwnerType(m.OwnerType),
		OwnerID:        m.OwnerID,
		CategoryID:     m.CategoryID,
		Month:          m.Month,
		Year:           m.Year,
		Type:           entity.BudgetType(m.Type),
		PlannedAmount:  m.PlannedAmount,
		IsConsolidated: m.IsConsolidated,
		ConsolidatedAt: m.ConsolidatedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

// CategoryBudgetFromEntity creates a model from a domain entity.
func CategoryBudgetFromEntity(b *entity.CategoryBudget) *CategoryBudgetModel {
	var deletedAt gorm.DeletedAt
	if b.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *b.DeletedAt, Valid: true}
	}

	return &CategoryBudgetModel{
		ID:             b.ID,
		OwnerType:      string(b.OwnerType),
		OwnerID:        b.OwnerID,
		CategoryID:     b.CategoryID,
		Month:          b.Month,
		Year:           b.Year,
		Type:           string(b.Type),
		PlannedAmount:  b.PlannedAmount,
		IsConsolidated: b.IsConsolidated,
		ConsolidatedAt: b.ConsolidatedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}
