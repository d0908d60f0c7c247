package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/ltj54/restructuring/internal/server/store"
)

// Store is the production driver; sqlite remains the default for local
// development.
type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Info(ctx context.Context) (string, string, error) {
	var version string
	if err := s.db.QueryRowContext(ctx, `SHOW server_version`).Scan(&version); err != nil {
		return "", "", err
	}
	return "postgres", version, nil
}

func (s *Store) Users() store.Users         { return &usersRepo{db: s.db} }
func (s *Store) Journal() store.Journal     { return &journalRepo{db: s.db} }
func (s *Store) Plans() store.Plans         { return &plansRepo{db: s.db} }
func (s *Store) Insurance() store.Insurance { return &insuranceRepo{db: s.db} }

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback() }()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Users() store.Users         { return &usersRepo{db: t.tx} }
func (t *txStore) Journal() store.Journal     { return &journalRepo{db: t.tx} }
func (t *txStore) Plans() store.Plans         { return &plansRepo{db: t.tx} }
func (t *txStore) Insurance() store.Insurance { return &insuranceRepo{db: t.tx} }

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// 23505 is unique_violation.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrAlreadyExists
	}
	return err
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
