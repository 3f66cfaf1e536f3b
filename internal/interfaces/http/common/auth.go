package common

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok && user.ID != ""
}

// RequireUser returns the authenticated user, or writes 401 and reports false.
func RequireUser(logger *zap.Logger, w http.ResponseWriter, r *http.Request) (AuthenticatedUser, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteJSON(logger, w, http.StatusUnauthorized, ErrorResponse{Error: "認証が必要です"})
		return AuthenticatedUser{}, false
	}
	return user, true
}
