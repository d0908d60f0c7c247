package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

// Bounds on re-logged frontend events. Everything past a cap is truncated or
// dropped so a misbehaving client cannot flood the log.
const (
	maxLogMessageLen = 2000
	maxLogMetaValues = 25
	maxLogValueLen   = 500
)

type frontendLogRequest struct {
	Level   string            `json:"level"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta"`
}

// FrontendLogHandler ingests frontend log events and re-emits them through
// the structured logger at the requested level.
type FrontendLogHandler struct{}

// ServeHTTP accepts a frontend log event.
//
//	@Summary	Ingest a frontend log event
//	@Tags		System
//	@Accept		json
//	@Success	204	"Event logged"
//	@Failure	400	{object}	httpx.ErrorBody	"Malformed request"
//	@Router		/api/log [post].
func (h *FrontendLogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req frontendLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		httpx.WriteError(w, http.StatusBadRequest, "message is required")
		return
	}

	attrs := []any{"source", "frontend", "message", truncate(req.Message, maxLogMessageLen)}
	n := 0
	for k, v := range req.Meta {
		if n >= maxLogMetaValues {
			break
		}
		attrs = append(attrs, "meta."+truncate(k, maxLogValueLen), truncate(v, maxLogValueLen))
		n++
	}

	log := slogx.FromContext(r.Context())
	switch strings.ToLower(req.Level) {
	case "debug":
		log.Debug("frontend event", attrs...)
	case "warn", "warning":
		log.Warn("frontend event", attrs...)
	case "error":
		log.Error("frontend event", attrs...)
	default:
		log.Log(r.Context(), slog.LevelInfo, "frontend event", attrs...)
	}

	w.WriteHeader(http.StatusNoContent)
}

// truncate caps s at max runes without splitting a multibyte character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
