package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth requires a positive numeric X-User-ID header and stashes it in the
// request context. Upstream gateways are trusted to have authenticated the
// caller.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			handlers.RespondUnauthorized(w, "X-User-ID header is required")
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "X-User-ID header must be a positive integer")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user ID from the context. The second
// return is false outside the Auth middleware.
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
