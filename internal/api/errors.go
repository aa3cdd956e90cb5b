package api

import (
	"errors"
	"net/http"

	"github.com/taskly/taskly-api/internal/api/shared"
	"github.com/taskly/taskly-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Note that a duplicate email maps to 400, not 409, matching the documented
// API contract.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrInvalidQuery),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "User with this email already exists"

	case errors.Is(err, store.ErrInvalidQuery):
		return "Invalid query parameters"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError translates a store error through the shared status
// and safe-message mapping and writes the error envelope. Errors that map to
// a 500 use the operation-specific fallback message instead of the generic
// one, matching the per-operation wording of the API contract.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
