package authz

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

// WithUser stores the authenticated user's ID on the context.
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromRequest(r *http.Request) (string, bool) {
	uid, ok := r.Context().Value(userIDKey).(string)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}
