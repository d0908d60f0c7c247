package domain

import "time"

// Journal entry bounds enforced before anything reaches the store.
const (
	JournalMinPhase      = 1
	JournalMaxPhase      = 4
	JournalMaxContentLen = 4000 // characters, not bytes
)

type JournalEntry struct {
	ID        int64
	UserID    int64
	Phase     int
	Content   string
	CreatedAt time.Time
}
