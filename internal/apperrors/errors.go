package apperrors

import (
	"errors"
	"strings"
)

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Catalog errors
	ErrFetchFailed  = errors.New("fetch failed")
	ErrEmptyBrand   = errors.New("brand name is empty")
	ErrUnknownBrand = errors.New("unknown brand")
)

// ValidationError names the fields that failed validation. It matches
// ErrValidationFailed with errors.Is.
type ValidationError struct {
	Fields  []string // required but empty
	Invalid []string // present but not an accepted value
}

func (e *ValidationError) Error() string {
	var parts []string
	switch len(e.Fields) {
	case 0:
	case 1:
		parts = append(parts, e.Fields[0]+" is required")
	default:
		parts = append(parts, strings.Join(e.Fields, ", ")+" are required")
	}
	switch len(e.Invalid) {
	case 0:
	case 1:
		parts = append(parts, e.Invalid[0]+" is invalid")
	default:
		parts = append(parts, strings.Join(e.Invalid, ", ")+" are invalid")
	}
	if len(parts) == 0 {
		return ErrValidationFailed.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
