package http

import (
	"net/http"

	"github.com/ltj54/restructuring/pkg/httpx"
)

type meResponse struct {
	UserID int64    `json:"userId"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

// MeHandler echoes the resolved identity. It is the cheapest way for a
// frontend to check whether a stored token is still usable.
type MeHandler struct{}

// ServeHTTP returns the caller's identity.
//
//	@Summary		Get the authenticated identity
//	@Tags			Me
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	meResponse
//	@Failure		401	{object}	httpx.ErrorBody	"Not authenticated"
//	@Router			/api/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		// Unreachable behind the policy, kept for direct-mount safety.
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, meResponse{
		UserID: id.UserID,
		Email:  id.Subject,
		Roles:  id.Roles,
	})
}
