package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/service"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

type AdminUsersHandler struct {
	UserService *service.UserService
}

// HandleList returns every account.
//
//	@Summary		List all users
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		userProfileResponse
//	@Failure		403	{object}	httpx.ErrorBody	"Not an admin"
//	@Router			/api/admin/users [get].
func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("list users failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]userProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toProfile(u))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns a single account in full.
//
//	@Summary		Get a user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"User id"
//	@Success		200	{object}	userProfileResponse
//	@Failure		404	{object}	httpx.ErrorBody	"Unknown user"
//	@Router			/api/admin/users/{id} [get].
func (h *AdminUsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(r.Context(), id)
	if err != nil {
		h.writeUserError(w, r, id, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}

// HandlePromote grants the admin role.
//
//	@Summary		Promote a user to admin
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"User id"
//	@Success		200	{object}	userProfileResponse
//	@Failure		404	{object}	httpx.ErrorBody	"Unknown user"
//	@Router			/api/admin/users/{id}/promote [post].
func (h *AdminUsersHandler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, domain.AdminRole)
}

// HandleDemote revokes the admin role.
//
//	@Summary		Demote an admin to a regular user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"User id"
//	@Success		200	{object}	userProfileResponse
//	@Failure		404	{object}	httpx.ErrorBody	"Unknown user"
//	@Router			/api/admin/users/{id}/demote [post].
func (h *AdminUsersHandler) HandleDemote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, domain.DefaultRole)
}

func (h *AdminUsersHandler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.SetRole(r.Context(), id, role)
	if err != nil {
		h.writeUserError(w, r, id, err)
		return
	}

	slogx.FromContext(r.Context()).Info("role changed", "user_id", id, "role", role)
	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}

func (h *AdminUsersHandler) writeUserError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	slogx.FromContext(r.Context()).Error("admin user operation failed", "user_id", id, "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}
