// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Planned entry domain errors.
var (
	// ErrPlannedEntryNotFound is returned when a planned entry is not found.
	ErrPlannedEntryNotFound = errors.New("planned entry not found")

	// ErrEntryStatusNotFound is returned when no status record exists for the entry and month.
	ErrEntryStatusNotFound = errors.New("planned entry status not found")

	// ErrNotAuthorizedToModifyEntry is returned when user is not authorized to modify a planned entry.
	ErrNotAuthorizedToModifyEntry = errors.New("not authorized to modify planned entry")

	// ErrInvalidEntryType is returned when the entry type is not expense or income.
	ErrInvalidEntryType = errors.New("invalid entry type")

	// ErrInvalidAmountRange is returned when amount_min exceeds amount_max or either is negative.
	ErrInvalidAmountRange = errors.New("invalid amount range")

	// ErrInvalidDayRange is returned when the expected day range is outside 1-31 or inverted.
	ErrInvalidDayRange = errors.New("invalid expected day range")

	// ErrTransactionAlreadyMatched is returned when the transaction is already linked to another entry in the month.
	ErrTransactionAlreadyMatched = errors.New("transaction already matched to another planned entry")

	// ErrEntryAlreadyMatched is returned when the entry already has a match for the month.
	ErrEntryAlreadyMatched = errors.New("planned entry already matched for this month")

	// ErrEntryNotMatched is returned when unmatching an entry that has no match.
	ErrEntryNotMatched = errors.New("planned entry is not matched")

	// ErrEntryDismissed is returned when matching an entry that was dismissed for the month.
	ErrEntryDismissed = errors.New("planned entry is dismissed for this month")

	// ErrStaleStatus is returned when a status mutation lost a concurrent update race.
	ErrStaleStatus = errors.New("planned entry status was modified concurrently")

	// ErrInvalidMonth is returned when the month or year reference is out of range.
	ErrInvalidMonth = errors.New("invalid month reference")
)

// PlannedEntryErrorCode defines error codes for planned entry errors.
// Format: PLE-XXYYYY where XX is category and YYYY is specific error.
type PlannedEntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEntryType   PlannedEntryErrorCode = "PLE-010001"
	ErrCodeInvalidAmountRange PlannedEntryErrorCode = "PLE-010002"
	ErrCodeInvalidDayRange    PlannedEntryErrorCode = "PLE-010003"
	ErrCodeInvalidMonth       PlannedEntryErrorCode = "PLE-010004"
	ErrCodeEntryNotFound      PlannedEntryErrorCode = "PLE-010005"
	ErrCodeStatusNotFound     PlannedEntryErrorCode = "PLE-010006"
	ErrCodeNotAuthorizedEntry PlannedEntryErrorCode = "PLE-010007"

	// Conflict errors (02XXXX)
	ErrCodeTransactionAlreadyMatched PlannedEntryErrorCode = "PLE-020001"
	ErrCodeEntryAlreadyMatched       PlannedEntryErrorCode = "PLE-020002"
	ErrCodeEntryNotMatched           PlannedEntryErrorCode = "PLE-020003"
	ErrCodeEntryDismissed            PlannedEntryErrorCode = "PLE-020004"
	ErrCodeStaleStatus               PlannedEntryErrorCode = "PLE-020005"
)

// PlannedEntryError represents a planned entry error with code and message.
type PlannedEntryError struct {
	Code    PlannedEntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PlannedEntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PlannedEntryError) Unwrap() error {
	return e.Err
}

// NewPlannedEntryError creates a new PlannedEntryError with the given code and message.
func NewPlannedEntryError(code PlannedEntryErrorCode, message string, err error) *PlannedEntryError {
	return &PlannedEntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
