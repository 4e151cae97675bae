package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Fatal error categories. Anything not wrapped in one of these is a
// non-fatal condition and must surface as a logged warning plus a counter,
// never as an error return.
var (
	// ErrConfiguration: missing input file, malformed or incomplete pattern
	// set, invalid page range. Surfaced before any extraction work starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmptyExtraction: the budget-table pass matched zero rows. The run
	// aborts rather than writing an empty, misleading workbook.
	ErrEmptyExtraction = errors.New("no budget rows extracted")

	// ErrContractViolation: the analyzer input document does not have the
	// required shape. Raised before any per-record processing.
	ErrContractViolation = errors.New("invalid analysis input contract")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func ConfigurationError(message string) error {
	return NewAppError("CONFIG_ERROR", message, ErrConfiguration)
}

func ConfigurationErrorf(format string, args ...interface{}) error {
	return ConfigurationError(fmt.Sprintf(format, args...))
}

func EmptyExtractionError(message string) error {
	return NewAppError("EMPTY_EXTRACTION", message, ErrEmptyExtraction)
}

func ContractViolationError(message string) error {
	return NewAppError("CONTRACT_VIOLATION", message, ErrContractViolation)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
