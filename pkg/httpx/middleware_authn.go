package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ltj54/restructuring/pkg/jwtx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

// TokenVerifier checks a compact token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (jwtx.Claims, error)
}

// IdentityResolver maps verified claims to a live identity by cross-checking
// the embedded user id against the current user store.
type IdentityResolver interface {
	Resolve(ctx context.Context, claims jwtx.Claims) (Identity, error)
}

// AuthnMiddleware extracts a bearer token, verifies it and resolves the
// principal. It never rejects a request itself: every failure downgrades to
// anonymous and the authorization policy decides whether anonymous access is
// permitted for the route. Failure reasons go to the log only, never to the
// caller.
func AuthnMiddleware(v TokenVerifier, resolver IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "reason", err)
				next.ServeHTTP(w, r)
				return
			}

			identity, err := resolver.Resolve(ctx, claims)
			if err != nil {
				log.Warn("principal resolution failed",
					"subject", claims.Subject,
					"user_id", claims.UserID,
					"reason", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	return raw, raw != ""
}
