// Package entity defines the core business entities for the domain layer.
package entity

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvancedPattern represents a transaction-rewriting rule. Its match
// predicate is the conjunction of all present sub-patterns; absent
// sub-patterns are always true.
type AdvancedPattern struct {
	ID        uuid.UUID
	OwnerType OwnerType
	OwnerID   uuid.UUID
	// DescriptionPattern is a regex matched against the transaction
	// description (and original description).
	DescriptionPattern string
	// DatePattern is an optional regex over the YYYY-MM-DD date string.
	DatePattern string
	// WeekdayPattern is an optional regex over the weekday digit (0-6,
	// Sunday = 0).
	WeekdayPattern string
	AmountMin      *decimal.Decimal
	AmountMax      *decimal.Decimal
	// What a matching transaction is rewritten to.
	TargetDescription string
	TargetCategoryID  uuid.UUID
	// ApplyRetroactively re-scans existing transactions on creation.
	ApplyRetroactively bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time // Soft-delete support
}

// NewAdvancedPattern creates a new AdvancedPattern entity.
func NewAdvancedPattern(
	ownerType OwnerType,
	ownerID uuid.UUID,
	descriptionPattern string,
	targetDescription string,
	targetCategoryID uuid.UUID,
	applyRetroactively bool,
) *AdvancedPattern {
	now := time.Now().UTC()

	return &AdvancedPattern{
		ID:                 uuid.New(),
		OwnerType:          ownerType,
		OwnerID:            ownerID,
		DescriptionPattern: descriptionPattern,
		TargetDescription:  targetDescription,
		TargetCategoryID:   targetCategoryID,
		ApplyRetroactively: applyRetroactively,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Matches evaluates the pattern against a transaction. It is total: an
// invalid sub-pattern simply fails to match (patterns are validated at
// creation, so this only happens with hand-edited data).
func (p *AdvancedPattern) Matches(tx *Transaction) bool {
	if tx == nil || !p.IsActive {
		return false
	}

	if p.DescriptionPattern != "" {
		re, err := regexp.Compile("(?i)" + p.DescriptionPattern)
		if err != nil {
			return false
		}
		if !re.MatchString(tx.Description) && !re.MatchString(tx.OriginalDescription) {
			return false
		}
	}

	if p.DatePattern != "" {
		re, err := regexp.Compile(p.DatePattern)
		if err != nil {
			return false
		}
		if !re.MatchString(tx.Date.Format("2006-01-02")) {
			return false
		}
	}

	if p.WeekdayPattern != "" {
		re, err := regexp.Compile(p.WeekdayPattern)
		if err != nil {
			return false
		}
		if !re.MatchString(strconv.Itoa(int(tx.Date.Weekday()))) {
			return false
		}
	}

	if p.AmountMin != nil && tx.Amount.LessThan(*p.AmountMin) {
		return false
	}
	if p.AmountMax != nil && tx.Amount.GreaterThan(*p.AmountMax) {
		return false
	}

	return true
}

// Apply rewrites a matching transaction's description and category.
// OriginalDescription is preserved.
func (p *AdvancedPattern) Apply(tx *Transaction) {
	if p.TargetDescription != "" {
		tx.Description = p.TargetDescription
	}
	categoryID := p.TargetCategoryID
	tx.CategoryID = &categoryID
	tx.UpdatedAt = time.Now().UTC()
}
