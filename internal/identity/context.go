// Package identity resolves the caller's identity from a provider-issued token
// and carries it through the request context.
//
// The auth middleware calls WithUser once per request; handlers read the
// user back with UserFromContext and pass the id explicitly to services.
package identity

import (
	"context"

	"github.com/pkordes/recipebox/internal/domain"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the user stored by WithUser.
// ok is false for unauthenticated contexts.
func UserFromContext(ctx context.Context) (user domain.User, ok bool) {
	user, ok = ctx.Value(ctxKey{}).(domain.User)
	return user, ok && user.ID != ""
}
