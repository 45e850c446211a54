// Package middleware provides HTTP middleware shared by all API routes.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/item-api/internal/api/shared"
	"github.com/phrazzld/item-api/internal/platform/logger"
)

// NewTraceMiddleware returns a middleware that adds a trace ID to the request
// context and stores a trace-annotated logger there for downstream handlers
// and stores. Apply it early in the middleware chain so all subsequent
// handlers have access to the trace ID.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := baseLogger.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
