package errors

import (
	"fmt"
)

// NearbyError is the structured error type for nearby.
// It provides rich context for error handling, logging, and user presentation.
type NearbyError struct {
	// Code is the unique error code (e.g., "ERR_402_MALFORMED_GEOMETRY").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *NearbyError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *NearbyError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with NearbyError.
func (e *NearbyError) Is(target error) bool {
	if t, ok := target.(*NearbyError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *NearbyError) WithDetail(key, value string) *NearbyError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *NearbyError) WithSuggestion(suggestion string) *NearbyError {
	e.Suggestion = suggestion
	return e
}

// New creates a new NearbyError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *NearbyError {
	return &NearbyError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a NearbyError from an existing error.
// The error's message becomes the NearbyError message.
func Wrap(code string, err error) *NearbyError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *NearbyError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *NearbyError {
	return New(ErrCodeFileNotFound, message, cause)
}

// MalformedGeometry creates an error for a shape failing structural invariants.
func MalformedGeometry(message string) *NearbyError {
	return New(ErrCodeMalformedGeometry, message, nil)
}

// InvalidParameter creates an error for a bad search parameter.
func InvalidParameter(message string) *NearbyError {
	return New(ErrCodeInvalidParameter, message, nil)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *NearbyError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if ne, ok := err.(*NearbyError); ok {
		return ne.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a NearbyError.
// Returns empty string if not a NearbyError.
func GetCode(err error) string {
	if ne, ok := err.(*NearbyError); ok {
		return ne.Code
	}
	return ""
}

// GetCategory extracts the category from a NearbyError.
// Returns empty string if not a NearbyError.
func GetCategory(err error) Category {
	if ne, ok := err.(*NearbyError); ok {
		return ne.Category
	}
	return ""
}
