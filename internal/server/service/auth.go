package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/store"
	"github.com/ltj54/restructuring/pkg/cryptox"
	"github.com/ltj54/restructuring/pkg/jwtx"
)

var (
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrEmailTaken         = errors.New("service: email already registered")
	ErrInvalidResetCode   = errors.New("service: invalid or expired reset code")
)

// Reset codes are standard 6-digit TOTP values over the per-user secret,
// with a 5 minute step so a code stays usable for the length of a typical
// inbox round-trip.
const (
	resetCodePeriod = 300
	resetCodeSkew   = 1
)

var resetCodeOpts = totp.ValidateOpts{
	Period:    resetCodePeriod,
	Skew:      resetCodeSkew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresIn int64
	User      domain.User
}

// AuthService owns credential verification, registration and the password
// reset flow. Token issuance is delegated to the codec so the service never
// touches key material.
type AuthService struct {
	Store store.Store
	Codec *jwtx.Codec
}

// Login verifies the password against the stored hash and issues a fresh
// session token. Unknown email and wrong password collapse into the same
// error so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("service: login lookup: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("service: verify password: %w", err)
	}

	token, err := s.Codec.Issue(user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("service: issue token: %w", err)
	}

	return Session{
		Token:     token,
		ExpiresIn: int64(s.Codec.TTL() / time.Second),
		User:      user,
	}, nil
}

// RegisterParams carries the fields a new account is created from.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	SSN       string
	Phone     string
}

// Register creates a new account with the default role and a fresh OTP
// secret for the password reset flow.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (domain.User, error) {
	hash, err := cryptox.HashPassword(params.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service: hash password: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "restructuring",
		AccountName: params.Email,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service: generate otp secret: %w", err)
	}

	user := domain.User{
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		SSN:          params.SSN,
		Phone:        params.Phone,
		Role:         domain.DefaultRole,
		OTPSecret:    key.Secret(),
	}

	id, err := s.Store.Users().CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("service: create user: %w", err)
	}
	user.ID = id
	user.PasswordHash = ""

	return user, nil
}

// ForgotPassword generates a reset code for the account, if it exists. The
// empty-code/nil-error result for unknown emails lets the handler answer
// identically either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("service: forgot password lookup: %w", err)
	}

	code, err := totp.GenerateCodeCustom(user.OTPSecret, time.Now(), resetCodeOpts)
	if err != nil {
		return "", fmt.Errorf("service: generate reset code: %w", err)
	}
	return code, nil
}

// ResetPassword validates the reset code and replaces the stored hash.
// Unknown email and bad code collapse into the same error.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetCode
		}
		return fmt.Errorf("service: reset password lookup: %w", err)
	}

	valid, err := totp.ValidateCustom(code, user.OTPSecret, time.Now(), resetCodeOpts)
	if err != nil {
		return fmt.Errorf("service: validate reset code: %w", err)
	}
	if !valid {
		return ErrInvalidResetCode
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("service: hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("service: update password: %w", err)
	}
	return nil
}
