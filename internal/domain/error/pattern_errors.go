package error

import "errors"

// Advanced pattern domain errors.
var (
	// ErrPatternNotFound is returned when an advanced pattern is not found.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrInvalidPatternRegex is returned when a sub-pattern is not a valid regular expression.
	ErrInvalidPatternRegex = errors.New("invalid pattern regex")

	// ErrPatternDescriptionRequired is returned when the description pattern is empty.
	ErrPatternDescriptionRequired = errors.New("description pattern is required")

	// ErrPatternTargetRequired is returned when neither target description nor target category is set.
	ErrPatternTargetRequired = errors.New("pattern target is required")
)

// PatternErrorCode defines error codes for pattern errors.
type PatternErrorCode string

const (
	ErrCodePatternNotFound            PatternErrorCode = "PAT-010001"
	ErrCodeInvalidPatternRegex        PatternErrorCode = "PAT-010002"
	ErrCodePatternDescriptionRequired PatternErrorCode = "PAT-010003"
	ErrCodePatternTargetRequired      PatternErrorCode = "PAT-010004"
)

// PatternError represents a pattern error with code and message.
type PatternError struct {
	Code    PatternErrorCode
	Message string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// NewPatternError creates a new PatternError with the given code and message.
func NewPatternError(code PatternErrorCode, message string, err error) *PatternError {
	return &PatternError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
