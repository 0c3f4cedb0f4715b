// Package errors provides structured error types for the Keymill system.
// All errors include a category, code, message, and retryable flag for
// consistent error handling across components.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by system component.
type ErrorCategory string

const (
	ErrCategoryConfig     ErrorCategory = "CONFIG"
	ErrCategoryAllocation ErrorCategory = "ALLOCATION"
	ErrCategoryCipher     ErrorCategory = "CIPHER"
	ErrCategoryWorker     ErrorCategory = "WORKER"
	ErrCategorySysinfo    ErrorCategory = "SYSINFO"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Config codes
	CodeIndivisibleRecordCount = "INDIVISIBLE_RECORD_COUNT"
	CodeEmptyRun               = "EMPTY_RUN"
	CodeCounterSpanOverlap     = "COUNTER_SPAN_OVERLAP"
	CodeInvalidKey             = "INVALID_KEY"

	// Allocation codes
	CodeSizeOverflow = "SIZE_OVERFLOW"

	// Cipher codes
	CodeInvalidKeyLength = "INVALID_KEY_LENGTH"
	CodeInvalidIVLength  = "INVALID_IV_LENGTH"

	// Worker codes
	CodeTaskFailed = "TASK_FAILED"

	// Sysinfo codes
	CodeProbeFailed = "PROBE_FAILED"

	// Internal codes
	CodeUnexpected   = "UNEXPECTED"
	CodeInvalidState = "INVALID_STATE"
)

// KeymillError is the structured error type used throughout the system.
type KeymillError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Details   map[string]interface{}
	Cause     error
	Retryable bool
}

// Error returns a formatted error string.
func (e *KeymillError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *KeymillError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *KeymillError) Is(target error) bool {
	var t *KeymillError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new KeymillError.
func New(category ErrorCategory, code, message string) *KeymillError {
	return &KeymillError{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category, code),
	}
}

// Wrap creates a new KeymillError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *KeymillError {
	return &KeymillError{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category, code),
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *KeymillError) WithDetails(details map[string]interface{}) *KeymillError {
	cp := *e
	cp.Details = details
	return &cp
}

// IsRetryable checks whether an error (or its chain) is retryable.
func IsRetryable(err error) bool {
	var ke *KeymillError
	if errors.As(err, &ke) {
		return ke.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a KeymillError.
func GetCategory(err error) ErrorCategory {
	var ke *KeymillError
	if errors.As(err, &ke) {
		return ke.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a KeymillError.
func GetCode(err error) string {
	var ke *KeymillError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return ""
}

// isRetryable determines if an error code is retryable. Generation errors
// are uniformly fatal; only the environment probe may be retried.
func isRetryable(category ErrorCategory, code string) bool {
	switch {
	case category == ErrCategorySysinfo && code == CodeProbeFailed:
		return true
	default:
		return false
	}
}

// Convenience constructors for common errors.

func NewConfigError(code, message string) *KeymillError {
	return New(ErrCategoryConfig, code, message)
}

func NewAllocationError(code, message string) *KeymillError {
	return New(ErrCategoryAllocation, code, message)
}

func NewCipherError(code, message string) *KeymillError {
	return New(ErrCategoryCipher, code, message)
}

func NewWorkerError(code, message string, cause error) *KeymillError {
	return Wrap(ErrCategoryWorker, code, message, cause)
}

func NewSysinfoError(message string, cause error) *KeymillError {
	return Wrap(ErrCategorySysinfo, CodeProbeFailed, message, cause)
}

func NewInternalError(message string, cause error) *KeymillError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
