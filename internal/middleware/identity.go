package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
)

// CallerIDHeader carries the pre-validated identity of the caller.
// The value is trusted as-is; an upstream gateway is expected to have
// authenticated it.
const CallerIDHeader = "X-Sharer-User-Id"

// callerIDKey is the context key for the caller id.
const callerIDKey contextKey = "caller_id"

// Identity returns a middleware that extracts the caller id header,
// parses it as a positive integer and injects it into the request
// context. Requests without a usable caller id are rejected with 400.
func Identity(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(CallerIDHeader)
			if raw == "" {
				logger.Warn("missing caller id",
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeIdentityError(w, "MISSING_USER_ID", "Caller id header is required")
				return
			}

			callerID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || callerID <= 0 {
				logger.Warn("invalid caller id",
					slog.String("value", raw),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeIdentityError(w, "INVALID_USER_ID", "Caller id must be a positive integer")
				return
			}

			ctx := context.WithValue(r.Context(), callerIDKey, callerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerID retrieves the caller id from context.
func CallerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(callerIDKey).(int64)
	return id, ok
}

// ContextWithCallerID returns a context carrying the caller id.
// Exposed for tests that exercise handlers without the full chain.
func ContextWithCallerID(ctx context.Context, callerID int64) context.Context {
	return context.WithValue(ctx, callerIDKey, callerID)
}

// writeIdentityError writes a 400 response for identity failures.
func writeIdentityError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"error":"` + message + `","code":"` + code + `"}`))
}
