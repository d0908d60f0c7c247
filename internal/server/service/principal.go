package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ltj54/restructuring/internal/server/store"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/jwtx"
)

// Resolution failures. All of them downgrade the request to anonymous; the
// reasons are for operator diagnosis only.
var (
	ErrIncompleteClaims = errors.New("service: claims missing subject or user id")
	ErrUnknownUser      = errors.New("service: token references a user that no longer exists")
	ErrSubjectMismatch  = errors.New("service: token subject does not match current email")
)

// DefaultLookupTimeout bounds the user-record read so a slow store cannot
// stall the request pipeline.
const DefaultLookupTimeout = 2 * time.Second

// PrincipalResolver maps verified token claims to a live identity. Signature
// validity alone is not enough: the embedded user id must still exist and its
// current email must match the token subject, which closes the staleness
// window around deleted accounts and changed addresses. Roles come from the
// live record, never from the token, so privilege changes apply on the next
// request without re-login.
type PrincipalResolver struct {
	Store         store.Store
	LookupTimeout time.Duration
}

// Resolve performs the single read of the authentication hot path. It is
// idempotent and side-effect free; transient lookup failures are returned as
// resolution failure, never retried in-band.
func (r *PrincipalResolver) Resolve(ctx context.Context, claims jwtx.Claims) (httpx.Identity, error) {
	if claims.Subject == "" || claims.UserID == 0 {
		return httpx.Identity{}, ErrIncompleteClaims
	}

	timeout := r.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	user, err := r.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, ErrUnknownUser
		}
		return httpx.Identity{}, fmt.Errorf("service: user lookup: %w", err)
	}

	if !strings.EqualFold(user.Email, claims.Subject) {
		return httpx.Identity{}, ErrSubjectMismatch
	}

	return httpx.Identity{
		UserID:  user.ID,
		Subject: user.Email,
		Roles:   []string{user.EffectiveRole()},
	}, nil
}
