// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType represents the direction of a planned entry.
type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeIncome  EntryType = "income"
)

// PlannedEntry represents a recurring or one-off expectation of money
// movement. Single-value amounts and expected days are normalized to
// ranges at construction, so downstream logic only deals with ranges.
type PlannedEntry struct {
	ID         uuid.UUID
	OwnerType  OwnerType
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
	// Description is the human label; DescriptionPattern, when set, is a
	// substring or regex used for auto-matching transaction descriptions.
	Description        string
	DescriptionPattern string
	// AmountMin/AmountMax form the expected amount range; a single-amount
	// entry has AmountMin == AmountMax.
	AmountMin decimal.Decimal
	AmountMax decimal.Decimal
	// ExpectedDayStart/ExpectedDayEnd form the inclusive day-of-month
	// range (1-31). Both zero means no day expectation.
	ExpectedDayStart int
	ExpectedDayEnd   int
	Type             EntryType
	IsRecurrent      bool
	// ParentEntryID links a month instance to its recurring template.
	ParentEntryID *uuid.UUID
	// PatternID optionally links an AdvancedPattern used for
	// retroactive/future auto-matching.
	PatternID *uuid.UUID
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewPlannedEntry creates a new PlannedEntry entity with normalized
// amount and day ranges.
func NewPlannedEntry(
	ownerType OwnerType,
	ownerID uuid.UUID,
	categoryID uuid.UUID,
	description string,
	descriptionPattern string,
	amountMin decimal.Decimal,
	amountMax decimal.Decimal,
	expectedDayStart int,
	expectedDayEnd int,
	entryType EntryType,
	isRecurrent bool,
) *PlannedEntry {
	now := time.Now().UTC()

	// Single values become degenerate ranges.
	if amountMax.IsZero() {
		amountMax = amountMin
	}
	if expectedDayEnd == 0 {
		expectedDayEnd = expectedDayStart
	}

	return &PlannedEntry{
		ID:                 uuid.New(),
		OwnerType:          ownerType,
		OwnerID:            ownerID,
		CategoryID:         categoryID,
		Description:        description,
		DescriptionPattern: descriptionPattern,
		AmountMin:          amountMin,
		AmountMax:          amountMax,
		ExpectedDayStart:   expectedDayStart,
		ExpectedDayEnd:     expectedDayEnd,
		Type:               entryType,
		IsRecurrent:        isRecurrent,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// MonthInstance creates a one-off child entry for a single month,
// back-referencing this entry as its recurring template.
func (e *PlannedEntry) MonthInstance() *PlannedEntry {
	instance := NewPlannedEntry(
		e.OwnerType,
		e.OwnerID,
		e.CategoryID,
		e.Description,
		e.DescriptionPattern,
		e.AmountMin,
		e.AmountMax,
		e.ExpectedDayStart,
		e.ExpectedDayEnd,
		e.Type,
		false,
	)
	parentID := e.ID
	instance.ParentEntryID = &parentID
	instance.PatternID = e.PatternID
	return instance
}

// PlannedAmount returns the amount used for budget calculations: the
// max of the range (equal to the single amount when min == max).
func (e *PlannedEntry) PlannedAmount() decimal.Decimal {
	return e.AmountMax
}

// HasDayExpectation reports whether the entry carries a day-of-month
// expectation.
func (e *PlannedEntry) HasDayExpectation() bool {
	return e.ExpectedDayStart > 0 && e.ExpectedDayEnd > 0
}

// DayInRange reports whether the given day of month falls inside the
// expected day range. Always false without a day expectation.
func (e *PlannedEntry) DayInRange(day int) bool {
	if !e.HasDayExpectation() {
		return false
	}
	return day >= e.ExpectedDayStart && day <= e.ExpectedDayEnd
}

// IsIncome reports whether the entry expects incoming money.
func (e *PlannedEntry) IsIncome() bool {
	return e.Type == EntryTypeIncome
}
