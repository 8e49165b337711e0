package error

import "errors"

// Category budget domain errors.
var (
	// ErrBudgetNotFound is returned when a category budget is not found.
	ErrBudgetNotFound = errors.New("category budget not found")

	// ErrBudgetAlreadyExists is returned when a budget already exists for the category and month.
	ErrBudgetAlreadyExists = errors.New("budget already exists for category and month")

	// ErrInvalidBudgetType is returned when the budget type is not fixed, calculated or maior.
	ErrInvalidBudgetType = errors.New("invalid budget type")

	// ErrInvalidBudgetAmount is returned when the planned amount is negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrBudgetConsolidated is returned when editing a consolidated budget.
	ErrBudgetConsolidated = errors.New("budget is consolidated and cannot be edited")

	// ErrMonthNotEnded is returned when consolidating a budget whose month has not ended.
	ErrMonthNotEnded = errors.New("cannot consolidate a budget before its month ends")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetType   BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidBudgetAmount BudgetErrorCode = "BDG-010002"
	ErrCodeBudgetNotFound      BudgetErrorCode = "BDG-010003"

	// Conflict errors (02XXXX)
	ErrCodeBudgetAlreadyExists BudgetErrorCode = "BDG-020001"
	ErrCodeBudgetConsolidated  BudgetErrorCode = "BDG-020002"
	ErrCodeMonthNotEnded       BudgetErrorCode = "BDG-020003"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
