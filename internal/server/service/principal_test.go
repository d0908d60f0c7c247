package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/pkg/jwtx"
)

func TestPrincipalResolver_Resolve(t *testing.T) {
	st := newFakeStore()
	st.seedUser(domain.User{
		ID:    42,
		Email: "a@x.com",
		Role:  domain.AdminRole,
	})

	resolver := &PrincipalResolver{Store: st}

	t.Run("happy path", func(t *testing.T) {
		claims := jwtx.NewClaims(42, "a@x.com", jwtx.DefaultTokenTTL, time.Now().UTC())

		id, err := resolver.Resolve(context.Background(), claims)
		require.NoError(t, err)
		require.Equal(t, int64(42), id.UserID)
		require.Equal(t, "a@x.com", id.Subject)
		require.Equal(t, []string{domain.AdminRole}, id.Roles)
	})

	t.Run("subject compared case-insensitively", func(t *testing.T) {
		claims := jwtx.NewClaims(42, "A@X.COM", jwtx.DefaultTokenTTL, time.Now().UTC())

		id, err := resolver.Resolve(context.Background(), claims)
		require.NoError(t, err)
		require.Equal(t, int64(42), id.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		claims := jwtx.NewClaims(999, "ghost@x.com", jwtx.DefaultTokenTTL, time.Now().UTC())

		_, err := resolver.Resolve(context.Background(), claims)
		require.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("email changed since issuance", func(t *testing.T) {
		claims := jwtx.NewClaims(42, "b@x.com", jwtx.DefaultTokenTTL, time.Now().UTC())

		_, err := resolver.Resolve(context.Background(), claims)
		require.ErrorIs(t, err, ErrSubjectMismatch)
	})

	t.Run("incomplete claims", func(t *testing.T) {
		for name, claims := range map[string]jwtx.Claims{
			"missing subject": jwtx.NewClaims(42, "", jwtx.DefaultTokenTTL, time.Now().UTC()),
			"missing user id": jwtx.NewClaims(0, "a@x.com", jwtx.DefaultTokenTTL, time.Now().UTC()),
		} {
			t.Run(name, func(t *testing.T) {
				_, err := resolver.Resolve(context.Background(), claims)
				require.ErrorIs(t, err, ErrIncompleteClaims)
			})
		}
	})

	t.Run("store failure is not a mismatch", func(t *testing.T) {
		broken := newFakeStore()
		broken.usersErr = errors.New("connection refused")
		r := &PrincipalResolver{Store: broken}

		claims := jwtx.NewClaims(42, "a@x.com", jwtx.DefaultTokenTTL, time.Now().UTC())
		_, err := r.Resolve(context.Background(), claims)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUnknownUser)
		require.NotErrorIs(t, err, ErrSubjectMismatch)
	})
}

func TestPrincipalResolver_RolesFromLiveRecord(t *testing.T) {
	st := newFakeStore()
	st.seedUser(domain.User{ID: 7, Email: "u@x.com"})
	resolver := &PrincipalResolver{Store: st}

	claims := jwtx.NewClaims(7, "u@x.com", jwtx.DefaultTokenTTL, time.Now().UTC())

	id, err := resolver.Resolve(context.Background(), claims)
	require.NoError(t, err)
	require.Equal(t, []string{domain.DefaultRole}, id.Roles)

	// Promote the user; the very next resolve reflects it without re-login.
	require.NoError(t, st.Users().UpdateRole(context.Background(), 7, domain.AdminRole))

	id, err = resolver.Resolve(context.Background(), claims)
	require.NoError(t, err)
	require.Equal(t, []string{domain.AdminRole}, id.Roles)
}
