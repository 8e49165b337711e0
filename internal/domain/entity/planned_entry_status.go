// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the reconciliation state of a planned entry in
// a given month.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusMatched   EntryStatus = "matched"
	EntryStatusDismissed EntryStatus = "dismissed"
	// EntryStatusMissed is a read-time classification of a pending entry
	// whose expected-day window has fully elapsed. It is never persisted.
	EntryStatusMissed EntryStatus = "missed"
)

// PlannedEntryStatus tracks the per-(entry, month, year) reconciliation
// state, decoupled from the entry definition so history survives edits.
// Exactly one record exists per (entry, month, year) once the month has
// been materialized.
type PlannedEntryStatus struct {
	ID      uuid.UUID
	EntryID uuid.UUID
	Month   int
	Year    int
	Status  EntryStatus
	// Match fields, set while Status == matched. MatchedAmount carries
	// the transaction's actual amount, not the planned amount.
	MatchedTransactionID *uuid.UUID
	MatchedAmount        *decimal.Decimal
	MatchedAt            *time.Time
	// Dismissal fields, set while Status == dismissed.
	DismissedAt     *time.Time
	DismissalReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPlannedEntryStatus creates a pending status record for one month.
func NewPlannedEntryStatus(entryID uuid.UUID, month, year int) *PlannedEntryStatus {
	now := time.Now().UTC()

	return &PlannedEntryStatus{
		ID:        uuid.New(),
		EntryID:   entryID,
		Month:     month,
		Year:      year,
		Status:    EntryStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Match records a match against the given transaction.
func (s *PlannedEntryStatus) Match(transactionID uuid.UUID, amount decimal.Decimal) {
	now := time.Now().UTC()
	s.Status = EntryStatusMatched
	s.MatchedTransactionID = &transactionID
	s.MatchedAmount = &amount
	s.MatchedAt = &now
	s.UpdatedAt = now
}

// Unmatch clears the match fields and returns the entry to pending. The
// underlying transaction is untouched.
func (s *PlannedEntryStatus) Unmatch() {
	s.Status = EntryStatusPending
	s.MatchedTransactionID = nil
	s.MatchedAmount = nil
	s.MatchedAt = nil
	s.UpdatedAt = time.Now().UTC()
}

// Dismiss marks the entry as dismissed for the month.
func (s *PlannedEntryStatus) Dismiss(reason string) {
	now := time.Now().UTC()
	s.Status = EntryStatusDismissed
	s.DismissedAt = &now
	s.DismissalReason = reason
	s.UpdatedAt = now
}

// Undismiss returns a dismissed entry to pending.
func (s *PlannedEntryStatus) Undismiss() {
	s.Status = EntryStatusPending
	s.DismissedAt = nil
	s.DismissalReason = ""
	s.UpdatedAt = time.Now().UTC()
}

// PlannedEntryWithStatus pairs an entry with its status record for one
// month.
type PlannedEntryWithStatus struct {
	Entry  *PlannedEntry
	Status *PlannedEntryStatus
}

// EffectiveStatus returns the status as seen at read time: a pending
// entry whose expected-day window for the month has fully elapsed reads
// as missed. Matched stays matched until explicitly unmatched.
func (ews *PlannedEntryWithStatus) EffectiveStatus(today time.Time) EntryStatus {
	if ews.Status == nil {
		return EntryStatusPending
	}
	if ews.Status.Status != EntryStatusPending {
		return ews.Status.Status
	}

	lastDay := ews.Entry.ExpectedDayEnd
	daysInMonth := time.Date(ews.Status.Year, time.Month(ews.Status.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if !ews.Entry.HasDayExpectation() || lastDay > daysInMonth {
		lastDay = daysInMonth
	}

	deadline := time.Date(ews.Status.Year, time.Month(ews.Status.Month), lastDay, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if !today.Before(deadline) {
		return EntryStatusMissed
	}
	return EntryStatusPending
}

// CountsTowardSpending reports whether the entry contributes to the
// month's spending totals. Dismissed entries contribute nothing.
func (ews *PlannedEntryWithStatus) CountsTowardSpending() bool {
	return ews.Status == nil || ews.Status.Status != EntryStatusDismissed
}

// SpendingContribution returns the amount the entry contributes to the
// month: the matched transaction's actual amount when matched, the
// planned amount otherwise.
func (ews *PlannedEntryWithStatus) SpendingContribution() decimal.Decimal {
	if ews.Status != nil && ews.Status.Status == EntryStatusMatched && ews.Status.MatchedAmount != nil {
		return *ews.Status.MatchedAmount
	}
	return ews.Entry.PlannedAmount()
}
