package middleware

import (
	"net/http"
	"runtime/debug"

	"wishlist_api/internal/common"

	"github.com/sirupsen/logrus"
)

// Recoverer is the outermost safety net: any panic is logged with its stack
// and the request id, and the client sees only a generic INTERNAL_ERROR.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logrus.WithFields(logrus.Fields{
					"request_id": common.RequestID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      rvr,
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")

				common.RespondWithJSON(w, http.StatusInternalServerError, common.ErrorResponse{
					Code:    common.CodeInternal,
					Message: common.ErrInternalServer.Error(),
					Details: map[string]any{},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
