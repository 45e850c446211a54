package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// IsValidationError checks if the error is any of the field validation
// errors reported by Item or ItemPatch. The request boundary uses this to
// distinguish recoverable input errors from storage failures.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrEmptyItemName) ||
		errors.Is(err, ErrEmptyItemDescription) ||
		errors.Is(err, ErrItemNameTooLong) ||
		errors.Is(err, ErrItemDescriptionTooLong)
}
