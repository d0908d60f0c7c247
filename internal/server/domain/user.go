package domain

import "time"

// DefaultRole is assigned when an account has no explicit role stored.
const DefaultRole = "USER"

// AdminRole gates the administrative route prefix.
const AdminRole = "ADMIN"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	SSN          string
	Phone        string
	Role         string
	OTPSecret    string // base32, for one-time password-reset codes
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveRole returns the stored role, defaulting to USER when absent.
func (u User) EffectiveRole() string {
	if u.Role == "" {
		return DefaultRole
	}
	return u.Role
}
