package store

import (
	"context"
	"errors"

	"github.com/ltj54/restructuring/internal/server/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Journal() Journal
	Plans() Plans
	Insurance() Insurance

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Info returns driver name and server version for admin diagnostics.
	// Never includes DSN or credentials.
	Info(ctx context.Context) (driver, version string, err error)

	Close() error
}

// Tx is a transaction-scoped view over the same repositories.
type Tx interface {
	Users() Users
	Journal() Journal
	Plans() Plans
	Insurance() Insurance
}

type Users interface {
	// GetUserByID returns a user by id. The authentication hot path issues
	// this read once per authenticated request; it must be side-effect free.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail looks up a user by email, matched case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns the generated id.
	// Returns ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// ListUsers returns all users ordered by id.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUserInfo mutates the mutable profile fields and bumps updated_at.
	UpdateUserInfo(ctx context.Context, id int64, firstName, lastName, phone, ssn string) error

	// UpdatePasswordHash sets the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id int64, newHash string) error

	// UpdateRole sets the stored role (already upper-cased by the caller).
	UpdateRole(ctx context.Context, id int64, role string) error
}

type Journal interface {
	// CreateEntry inserts a journal entry and returns the generated id.
	CreateEntry(ctx context.Context, e domain.JournalEntry) (int64, error)

	// ListEntriesByUser returns a user's entries, newest first.
	ListEntriesByUser(ctx context.Context, userID int64) ([]domain.JournalEntry, error)
}

type Plans interface {
	// GetPlanByUser returns the user's plan or ErrNotFound.
	GetPlanByUser(ctx context.Context, userID int64) (domain.Plan, error)

	// UpsertPlan creates or replaces the user's plan and returns it.
	UpsertPlan(ctx context.Context, p domain.Plan) (domain.Plan, error)
}

type Insurance interface {
	// ListProducts returns the full product catalog ordered by id.
	ListProducts(ctx context.Context) ([]domain.InsuranceProduct, error)

	// ListProfilesByUser returns a user's registered insurances, newest first.
	ListProfilesByUser(ctx context.Context, userID int64) ([]domain.InsuranceProfile, error)

	// CreateProfile inserts a profile and returns the generated id.
	CreateProfile(ctx context.Context, p domain.InsuranceProfile) (int64, error)

	// GetSnapshotByUser returns the user's snapshot or ErrNotFound.
	GetSnapshotByUser(ctx context.Context, userID int64) (domain.InsuranceSnapshot, error)

	// ReplaceSnapshot discards any previous snapshot for the user and
	// stores the given one, returning the stored row.
	ReplaceSnapshot(ctx context.Context, s domain.InsuranceSnapshot) (domain.InsuranceSnapshot, error)

	// CreateRequest inserts a submitted request and returns the generated id.
	CreateRequest(ctx context.Context, req domain.InsuranceRequest) (int64, error)
}
