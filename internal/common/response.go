package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type contextKey string

// RequestIDKey is where the request logger stores the correlation id; error
// responses are logged under the same id so a client-visible failure can be
// traced in the server logs.
const RequestIDKey contextKey = "request_id"

// ErrorResponse is the single error shape every endpoint produces.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// RequestID returns the correlation id attached to the request context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return "N/A"
}

// RespondWithError classifies err into the error contract and writes it.
// Unclassified errors are logged with full detail server-side and surfaced
// only as a generic INTERNAL_ERROR; classified ones keep their message.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := CodeFromError(err)
	status := HTTPStatusFromError(err)
	message := err.Error()

	if code == CodeInternal {
		logrus.WithFields(logrus.Fields{
			"request_id": RequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).WithError(err).Error("unhandled error")
		message = ErrInternalServer.Error()
	}

	// Strip wrapping context from classified errors so internals such as
	// database error text never reach the response body.
	if code != CodeInternal {
		if base := baseError(err); base != nil {
			message = base.Error()
		}
	}

	RespondWithJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: DetailsFromError(err),
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":"INTERNAL_ERROR","message":"failed to encode response","details":{}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func baseError(err error) error {
	for _, sentinel := range []error{
		ErrNotFound, ErrUnauthorized, ErrForbidden, ErrBadRequest,
		ErrDuplicate, ErrValidation, ErrTokenExpired, ErrInvalidToken,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}
