package middleware

import (
	"context"
	"net/http"
	"time"

	"wishlist_api/internal/common"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger assigns a correlation id to every request, echoes it to the
// client as X-Request-ID, and logs one structured line per request. Error
// responses log under the same id, so any user-visible failure can be traced
// in the server logs.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), common.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Info("request completed")
	})
}
