package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/item-api/internal/api/shared"
	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Field-level validation failures
	case domain.IsValidationError(err):
		return http.StatusUnprocessableEntity

	// Malformed identifiers and entities the database rejected
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case store.IsNotFoundError(err):
		return "Item not found"

	// Validation sentinels carry exactly the field-level detail the caller
	// should see, so their text is safe to return verbatim.
	case domain.IsValidationError(err):
		return err.Error()

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid item ID"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid item data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and writes
// the response. An empty userMessage falls back to GetSafeErrorMessage.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// ValidationDetails converts a validator error into field-level details
// suitable for a 422 response body. Non-validator errors yield no details.
func ValidationDetails(err error) []shared.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]shared.FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, shared.FieldError{
			Field:   fieldErr.Field(),
			Message: fieldErrorMessage(fieldErr),
		})
	}
	return details
}

// fieldErrorMessage maps validation tags to user-friendly error messages.
func fieldErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required and cannot be empty"
	case "min":
		return fmt.Sprintf("must be at least %s character(s)", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s character(s)", fieldErr.Param())
	default:
		return "is invalid"
	}
}
