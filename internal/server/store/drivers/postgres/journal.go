package postgres

import (
	"context"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
)

type journalRepo struct {
	db dbtx
}

func (r *journalRepo) CreateEntry(ctx context.Context, e domain.JournalEntry) (int64, error) {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO journal_entries (user_id, phase, content, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		e.UserID, e.Phase, e.Content, createdAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *journalRepo) ListEntriesByUser(ctx context.Context, userID int64) ([]domain.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, phase, content, created_at
		 FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Phase, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
