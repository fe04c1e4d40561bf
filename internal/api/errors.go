package api

import (
	"errors"
	"net/http"

	"github.com/taskmgr/task-api/internal/api/shared"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/service/auth"
	"github.com/taskmgr/task-api/internal/store"
)

// Messages sent to clients. Nothing else from an error reaches the body.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidToken       = "Invalid token"
	msgExpiredToken       = "Token expired"
	msgInvalidRequest     = "Invalid request format"
	msgTaskNotFound       = "Task not found"
	msgEmailExists        = "Email already exists"
	msgUnexpected         = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidJSON):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
// Validation errors are the exception: their "<field>: <reason>" text is
// written by the domain for clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var valErr *domain.ValidationError
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return msgInvalidCredentials

	case errors.Is(err, auth.ErrExpiredToken):
		return msgExpiredToken

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return msgInvalidToken

	case errors.As(err, &valErr):
		return valErr.Error()

	case errors.Is(err, shared.ErrInvalidJSON):
		return msgInvalidRequest

	case errors.Is(err, store.ErrTaskNotFound):
		return msgTaskNotFound

	case errors.Is(err, store.ErrEmailExists):
		return msgEmailExists

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the error response for err: status and message
// from the mappings above, plus the offending field for validation errors.
// The full error is logged, redacted, at a level chosen by the status.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		opts = append(opts, shared.WithField(valErr.Field))
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
