package domain

import "time"

// Plan is a user's restructuring plan. One per user.
type Plan struct {
	ID        int64
	UserID    int64
	Phase     string
	Persona   string
	Needs     string // comma separated, stored the way the frontend sends it
	Diary     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
