package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Metadata errors: malformed tags or element declarations
	ErrTagInvalid     ErrorCode = "TAG_INVALID"
	ErrElementInvalid ErrorCode = "ELEMENT_INVALID"

	// Traversal errors
	ErrReflect    ErrorCode = "REFLECT"
	ErrTextLookup ErrorCode = "TEXT_LOOKUP"

	// Sink errors
	ErrSinkWrite ErrorCode = "SINK_WRITE"
	ErrSinkState ErrorCode = "SINK_STATE"
)

// ExportError represents a structured error with code and details
type ExportError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ExportError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ExportError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ExportError) Is(target error) bool {
	var targetErr *ExportError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ExportError with the given code and message
func New(code ErrorCode, message string) *ExportError {
	return &ExportError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ExportError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ExportError {
	return &ExportError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an ExportError
func Wrap(err error, code ErrorCode, message string) *ExportError {
	if err == nil {
		return nil
	}
	return &ExportError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ExportError {
	if err == nil {
		return nil
	}
	return &ExportError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ExportError) WithDetail(key string, value interface{}) *ExportError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Annotate adds details to err when it is an ExportError, keeping any
// detail already set. Other errors are returned unchanged.
func Annotate(err error, details map[string]interface{}) error {
	var exportErr *ExportError
	if !errors.As(err, &exportErr) {
		return err
	}
	if exportErr.Details == nil {
		exportErr.Details = make(map[string]interface{})
	}
	for k, v := range details {
		if _, ok := exportErr.Details[k]; !ok {
			exportErr.Details[k] = v
		}
	}
	return err
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Code == code
	}
	return false
}

// GetErrorDetails returns the details from an error, or nil if not an ExportError
func GetErrorDetails(err error) map[string]interface{} {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Details
	}
	return nil
}
