package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// PlannedEntryModel represents the planned_entries table in the database.
type PlannedEntryModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerType          string          `gorm:"type:varchar(15);not null"`
	OwnerID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description        string          `gorm:"type:varchar(255);not null"`
	DescriptionPattern string          `gorm:"type:varchar(255)"`
	AmountMin          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AmountMax          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ExpectedDayStart   int             `gorm:"not null;default:0"`
	ExpectedDayEnd     int             `gorm:"not null;default:0"`
	Type               string          `gorm:"type:varchar(10);not null"`
	IsRecurrent        bool            `gorm:"not null;default:false"`
	ParentEntryID      *uuid.UUID      `gorm:"type:uuid;index"`
	PatternID          *uuid.UUID      `gorm:"type:uuid"`
	IsActive           bool            `gorm:"not null;default:true"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
	DeletedAt          gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the PlannedEntryModel.
func (PlannedEntryModel) TableName() string {
	return "planned_entries"
}

// ToEntity converts a PlannedEntryModel to a domain PlannedEntry entity.
func (m *PlannedEntryModel) ToEntity() *entity.PlannedEntry {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.PlannedEntry{
		ID:                 m.ID,
		OwnerType:          entity.OwnerType(m.OwnerType),
		OwnerID:            m.OwnerID,
		CategoryID:         m.CategoryID,
		Description:        m.Description,
		DescriptionPattern: m.DescriptionPattern,
		AmountMin:          m.AmountMin,
		AmountMax:          m.AmountMax,
		ExpectedDayStart:   m.ExpectedDayStart,
		ExpectedDayEnd:     m.ExpectedDayEnd,
		Type:               entity.EntryType(m.Type),
		IsRecurrent:        m.IsRecurrent,
		ParentEntryID:      m.ParentEntryID,
		PatternID:          m.PatternID,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// PlannedEntryFromEntity creates a PlannedEntryModel from a domain PlannedEntry entity.
func PlannedEntryFromEntity(e *entity.PlannedEntry) *PlannedEntryModel {
	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	return &PlannedEntryModel{
		ID:                 e.ID,
		OwnerType:          string(e.OwnerType),
		OwnerID:            e.OwnerID,
		CategoryID:         e.CategoryID,
		Description:        e.Description,
		DescriptionPattern: e.DescriptionPattern,
		AmountMin:          e.AmountMin,
		AmountMax:          e.AmountMax,
		ExpectedDayStart:   e.ExpectedDayStart,
		ExpectedDayEnd:     e.ExpectedDayEnd,
		Type:               string(e.Type),
		IsRecurrent:        e.IsRecurrent,
		ParentEntryID:      e.ParentEntryID,
		PatternID:          e.PatternID,
		IsActive:           e.IsActive,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}
