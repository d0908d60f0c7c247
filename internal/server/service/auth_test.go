package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/pkg/cryptox"
	"github.com/ltj54/restructuring/pkg/jwtx"
)

func newAuthService(t *testing.T, st *fakeStore) *AuthService {
	t.Helper()
	key, err := jwtx.LoadSigningKey("dGhpcy1pcy1hLXRlc3Qtc2lnbmluZy1rZXktMzJieXQ=")
	require.NoError(t, err)
	return &AuthService{Store: st, Codec: jwtx.NewCodec(key, time.Hour)}
}

func seedAccount(t *testing.T, st *fakeStore, email, password string) domain.User {
	t.Helper()
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: email})
	require.NoError(t, err)
	return st.seedUser(domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.DefaultRole,
		OTPSecret:    key.Secret(),
	})
}

func TestAuthService_Login(t *testing.T) {
	st := newFakeStore()
	svc := newAuthService(t, st)
	user := seedAccount(t, st, "alice@example.com", "correct horse")

	t.Run("valid credentials", func(t *testing.T) {
		session, err := svc.Login(context.Background(), "alice@example.com", "correct horse")
		require.NoError(t, err)
		require.NotEmpty(t, session.Token)
		require.Equal(t, int64(3600), session.ExpiresIn)
		require.Equal(t, user.ID, session.User.ID)

		claims, err := svc.Codec.Verify(session.Token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.UserID)
		require.Equal(t, "alice@example.com", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice@example.com", "incorrect horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	st := newFakeStore()
	svc := newAuthService(t, st)

	user, err := svc.Register(context.Background(), RegisterParams{
		Email:     "bob@example.com",
		Password:  "hunter22",
		FirstName: "Bob",
		LastName:  "Example",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, domain.DefaultRole, user.Role)
	require.Empty(t, user.PasswordHash)

	stored, err := st.Users().GetUserByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.OTPSecret)
	require.NoError(t, cryptox.VerifyPassword("hunter22", stored.PasswordHash))

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterParams{
			Email:    "BOB@example.com",
			Password: "other",
		})
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	st := newFakeStore()
	svc := newAuthService(t, st)
	seedAccount(t, st, "carol@example.com", "old password")

	t.Run("full flow", func(t *testing.T) {
		code, err := svc.ForgotPassword(context.Background(), "carol@example.com")
		require.NoError(t, err)
		require.Len(t, code, 6)

		require.NoError(t, svc.ResetPassword(context.Background(), "carol@example.com", code, "new password"))

		_, err = svc.Login(context.Background(), "carol@example.com", "old password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Login(context.Background(), "carol@example.com", "new password")
		require.NoError(t, err)
	})

	t.Run("unknown email returns no code and no error", func(t *testing.T) {
		code, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		require.Empty(t, code)
	})

	t.Run("bad code", func(t *testing.T) {
		err := svc.ResetPassword(context.Background(), "carol@example.com", "000000", "whatever")
		require.ErrorIs(t, err, ErrInvalidResetCode)
	})

	t.Run("unknown email on reset", func(t *testing.T) {
		err := svc.ResetPassword(context.Background(), "nobody@example.com", "123456", "whatever")
		require.ErrorIs(t, err, ErrInvalidResetCode)
	})
}
