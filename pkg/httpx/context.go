package httpx

import (
	"context"
	"slices"
)

// Identity is the resolved principal for one request: the token's embedded
// user id and subject, confirmed against the live user store, plus the roles
// currently stored on the account. It is constructed fresh per request and
// discarded at request end.
type Identity struct {
	UserID  int64
	Subject string
	Roles   []string
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(role string) bool {
	return slices.Contains(id.Roles, role)
}

type ctxKey struct{}

// WithIdentity attaches an authenticated identity to the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity installed by AuthnMiddleware, if
// any. ok is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
