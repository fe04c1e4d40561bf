package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taskmgr/task-api/internal/api/shared"
	"github.com/taskmgr/task-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context, together with a
// request-scoped logger carrying it. Apply it before any handler that logs
// or writes error responses.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := logger.FromContext(ctx).With(slog.String("trace_id", traceID))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
	})
}
