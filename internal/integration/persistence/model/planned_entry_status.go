package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// PlannedEntryStatusModel represents the planned_entry_statuses table.
// The unique index on (entry_id, month, year) enforces one status per
// entry per month; the partial-style unique index on
// (matched_transaction_id, month, year) backs the at-most-one-match
// invariant at the storage level.
type PlannedEntryStatusModel struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EntryID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_status_entry_month"`
	Month                int              `gorm:"not null;uniqueIndex:uq_status_entry_month;uniqueIndex:uq_status_match"`
	Year                 int              `gorm:"not null;uniqueIndex:uq_status_entry_month;uniqueIndex:uq_status_match"`
	Status               string           `gorm:"type:varchar(10);not null"`
	MatchedTransactionID *uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_status_match"`
	MatchedAmount        *decimal.Decimal `gorm:"type:numeric(14,2)"`
	MatchedAt            *time.Time
	DismissedAt          *time.Time
	DismissalReason      string    `gorm:"type:varchar(255)"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for the PlannedEntryStatusModel.
func (PlannedEntryStatusModel) TableName() string {
	return "planned_entry_statuses"
}

// ToEntity converts a PlannedEntryStatusModel to a domain entity.
func (m *PlannedEntryStatusModel) ToEntity() *entity.PlannedEntryStatus {
	return &entity.PlannedEntryStatus{
		ID:                   m.ID,
		EntryID:              m.EntryID,
		Month:                m.Month,
		Year:                 m.Year,
		Status:               entity.EntryStatus(m.Status),
		MatchedTransactionID: m.MatchedTransactionID,
		MatchedAmount:        m.MatchedAmount,
		MatchedAt:            m.MatchedAt,
		DismissedAt:          m.DismissedAt,
		DismissalReason:      m.DismissalReason,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// PlannedEntryStatusFromEntity creates a model from a domain entity.
func PlannedEntryStatusFromEntity(s *entity.PlannedEntryStatus) *PlannedEntryStatusModel {
	return &PlannedEntryStatusModel{
		ID:                   s.ID,
		EntryID:              s.EntryID,
		Month:                s.Month,
		Year:                 s.Year,
		Status:               string(s.Status),
		MatchedTransactionID: s.MatchedTransactionID,
		MatchedAmount:        s.MatchedAmount,
		MatchedAt:            s.MatchedAt,
		DismissedAt:          s.DismissedAt,
		DismissalReason:      s.DismissalReason,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
