package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/service"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

type journalEntryRequest struct {
	Phase   int    `json:"phase"`
	Content string `json:"content"`
}

type journalEntryResponse struct {
	ID        int64     `json:"id"`
	Phase     int       `json:"phase"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toJournalEntry(e domain.JournalEntry) journalEntryResponse {
	return journalEntryResponse{
		ID:        e.ID,
		Phase:     e.Phase,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

type JournalHandler struct {
	JournalService *service.JournalService
}

// HandleCreate records a journal entry for the caller.
//
//	@Summary		Add a journal entry
//	@Tags			Journal
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		journalEntryRequest	true	"Phase (1-4) and content"
//	@Success		201		{object}	journalEntryResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Invalid phase or oversized content"
//	@Router			/api/journal [post].
func (h *JournalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req journalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	entry, err := h.JournalService.AddEntry(r.Context(), id.UserID, req.Phase, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhase):
			httpx.WriteError(w, http.StatusBadRequest, "phase must be between 1 and 4")
		case errors.Is(err, service.ErrContentTooLong):
			httpx.WriteError(w, http.StatusBadRequest, "content too long")
		default:
			slogx.FromContext(r.Context()).Error("create journal entry failed", "user_id", id.UserID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toJournalEntry(entry))
}

// HandleList returns the caller's entries, newest first.
//
//	@Summary		List own journal entries
//	@Tags			Journal
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	journalEntryResponse
//	@Router			/api/journal/all [get].
func (h *JournalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.JournalService.ListByUser(r.Context(), id.UserID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("list journal entries failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]journalEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJournalEntry(e))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}
