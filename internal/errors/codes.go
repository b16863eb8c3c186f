// Package errors provides structured error handling for nearby.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (file, encoding)
//   - 4XX: Validation errors (parameters, geometry)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and encoding I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeFileNotFound = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFileCorrupt  = "ERR_202_FILE_CORRUPT"
	ErrCodeEncodeFailed = "ERR_203_ENCODE_FAILED"

	// Validation errors (400-499)
	ErrCodeInvalidParameter  = "ERR_401_INVALID_PARAMETER"
	ErrCodeMalformedGeometry = "ERR_402_MALFORMED_GEOMETRY"
	ErrCodeMissingAttribute  = "ERR_403_MISSING_ATTRIBUTE"
	ErrCodeEmptyCollection   = "ERR_404_EMPTY_COLLECTION"
	ErrCodeDuplicateID       = "ERR_405_DUPLICATE_ID"

	// Internal errors (500-599)
	ErrCodeInternal    = "ERR_501_INTERNAL"
	ErrCodeIndexFailed = "ERR_502_INDEX_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeInvalidParameter, ErrCodeEmptyCollection:
		// Parameter errors abort the whole run before any work starts.
		return SeverityFatal
	case ErrCodeMalformedGeometry:
		// Malformed geometry degrades a single feature, not the batch.
		return SeverityWarning
	default:
		return SeverityError
	}
}
