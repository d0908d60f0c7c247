package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/store"
)

var (
	ErrInvalidPhase   = errors.New("service: phase out of range")
	ErrContentTooLong = errors.New("service: entry content too long")
)

// JournalService records per-user journal entries tied to a program phase.
type JournalService struct {
	Store store.Store
}

func (s *JournalService) AddEntry(ctx context.Context, userID int64, phase int, content string) (domain.JournalEntry, error) {
	if phase < domain.JournalMinPhase || phase > domain.JournalMaxPhase {
		return domain.JournalEntry{}, ErrInvalidPhase
	}
	if utf8.RuneCountInString(content) > domain.JournalMaxContentLen {
		return domain.JournalEntry{}, ErrContentTooLong
	}

	entry := domain.JournalEntry{
		UserID:  userID,
		Phase:   phase,
		Content: content,
	}
	id, err := s.Store.Journal().CreateEntry(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service: create journal entry: %w", err)
	}
	entry.ID = id
	return entry, nil
}

func (s *JournalService) ListByUser(ctx context.Context, userID int64) ([]domain.JournalEntry, error) {
	entries, err := s.Store.Journal().ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: list journal entries: %w", err)
	}
	return entries, nil
}
