package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("authentication required")
	ErrForbidden      = errors.New("insufficient permissions")
	ErrBadRequest     = errors.New("bad request")
	ErrDuplicate      = errors.New("resource already exists") // duplicate email/username
	ErrValidation     = errors.New("validation failed")
	ErrInternalServer = errors.New("internal server error")

	// Both token failures map to 401; the response details distinguish them
	// so a client knows whether to refresh or to re-authenticate.
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Stable error codes forming the wire contract. Every error response body is
// {code, message, details}; codes never change even if messages do.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeDuplicate      = "DUPLICATE_ERROR"
	CodeBadRequest     = "BAD_REQUEST"
	CodeInternal       = "INTERNAL_ERROR"
)

const pgUniqueViolation = "23505"

// FieldErrors carries per-field validation messages into the response details.
type FieldErrors map[string]string

// ValidationError wraps ErrValidation with field-level detail.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(fields FieldErrors) error {
	return &ValidationError{Fields: fields}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// CodeFromError maps domain errors to their stable wire code.
func CodeFromError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrInvalidToken):
		return CodeAuthentication
	case errors.Is(err, ErrForbidden):
		return CodeAuthorization
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrBadRequest):
		return CodeBadRequest
	case errors.Is(err, ErrDuplicate):
		return CodeDuplicate
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return CodeDuplicate
	}

	return CodeInternal
}

// DetailsFromError extracts response details for an error. Validation errors
// contribute their field map; token failures contribute a reason so clients
// can tell "re-login" from "re-authenticate now". Everything else gets an
// empty object.
func DetailsFromError(err error) map[string]any {
	details := map[string]any{}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		for field, msg := range vErr.Fields {
			details[field] = msg
		}
		return details
	}

	if errors.Is(err, ErrTokenExpired) {
		details["reason"] = "token_expired"
	} else if errors.Is(err, ErrInvalidToken) {
		details["reason"] = "invalid_token"
	}
	return details
}
