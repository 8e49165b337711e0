package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// AdvancedPatternModel represents the advanced_patterns table.
type AdvancedPatternModel struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerType          string           `gorm:"type:varchar(15);not null"`
	OwnerID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	DescriptionPattern string           `gorm:"type:varchar(255);not null"`
	DatePattern        string           `gorm:"type:varchar(100)"`
	WeekdayPattern     string           `gorm:"type:varchar(50)"`
	AmountMin          *decimal.Decimal `gorm:"type:numeric(14,2)"`
	AmountMax          *decimal.Decimal `gorm:"type:numeric(14,2)"`
	TargetDescription  string           `gorm:"type:varchar(255)"`
	TargetCategoryID   uuid.UUID        `gorm:"type:uuid"`
	ApplyRetroactively bool             `gorm:"not null;default:false"`
	IsActive           bool             `gorm:"not null;default:true"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`
	DeletedAt          gorm.DeletedAt   `gorm:"index"`
}

// TableName returns the table name for the AdvancedPatternModel.
func (AdvancedPatternModel) TableName() string {
	return "advanced_patterns"
}

// ToEntity converts an AdvancedPatternModel to a domain entity.
func (m *AdvancedPatternModel) ToEntity() *entity.AdvancedPattern {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.AdvancedPattern{
		ID:                 m.ID,
		OwnerType:          entity.OwnerType(m.OwnerType),
		OwnerID:            m.OwnerID,
		DescriptionPattern: m.DescriptionPattern,
		DatePattern:        m.DatePattern,
		WeekdayPattern:     m.WeekdayPattern,
		AmountMin:          m.AmountMin,
		AmountMax:          m.AmountMax,
		TargetDescription:  m.TargetDescription,
		TargetCategoryID:   m.TargetCategoryID,
		ApplyRetroactively: m.ApplyRetroactively,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// AdvancedPatternFromEntity creates a model from a domain entity.
func AdvancedPatternFromEntity(p *entity.AdvancedPattern) *AdvancedPatternModel {
	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	}

	return &AdvancedPatternModel{
		ID:                 p.ID,
		OwnerType:          string(p.OwnerType),
		OwnerID:            p.OwnerID,
		DescriptionPattern: p.DescriptionPattern,
		DatePattern:        p.DatePattern,
		WeekdayPattern:     p.WeekdayPattern,
		AmountMin:          p.AmountMin,
		AmountMax:          p.AmountMax,
		TargetDescription:  p.TargetDescription,
		TargetCategoryID:   p.TargetCategoryID,
		ApplyRetroactively: p.ApplyRetroactively,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}
