package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates a required input was missing or invalid
	// before any provider was contacted
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeProvider indicates a non-success response or transport
	// failure from an external provider
	ErrorTypeProvider ErrorType = "PROVIDER"

	// ErrorTypeFormat indicates an unparseable or unexpected response shape
	// from a provider; treated as a provider error variant
	ErrorTypeFormat ErrorType = "FORMAT"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	// Status carries the upstream HTTP status for provider errors, 0 when
	// the failure happened before a response was received
	Status int
	Err    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Status > 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s (status %d): %v", e.Type, e.Message, e.Status, e.Err)
		}
		return fmt.Sprintf("%s: %s (status %d)", e.Type, e.Message, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewProviderError creates a new provider error carrying the upstream
// status and message
func NewProviderError(message string, status int, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeProvider,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// NewFormatError creates a new format error for unparseable provider output
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// IsValidationError reports whether err is a validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeValidation
}

// IsProviderError reports whether err is a provider error; format errors
// count as provider errors
func IsProviderError(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Type == ErrorTypeProvider || appErr.Type == ErrorTypeFormat
}
