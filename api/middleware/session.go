package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

const sessionHeader = "X-Session-Id"

type sessionCtxKey struct{}

// Session assigns every request a cart session. The client echoes the header
// back on later calls; a missing or blank header starts a fresh session and
// the id is always reflected in the response so the client can store it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the session assigned by Session, or "".
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return id
	}
	return ""
}
