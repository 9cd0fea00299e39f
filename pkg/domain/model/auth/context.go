package auth

import (
	"context"

	"github.com/meetingtax/meetingtax/pkg/domain/model"
)

type ctxUserKey struct{}

// ContextWithUser binds the authenticated user to the request context.
// The user is always re-derived from the live store via the session
// token once per request; client-supplied role claims are never trusted.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, user)
}

// UserFrom extracts the authenticated user from the context, or nil if
// the request is unauthenticated.
func UserFrom(ctx context.Context) *model.User {
	user, _ := ctx.Value(ctxUserKey{}).(*model.User)
	return user
}
