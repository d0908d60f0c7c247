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

type userProfileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	SSN       string    `json:"ssn"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProfile(u domain.User) userProfileResponse {
	return userProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		SSN:       u.SSN,
		Role:      u.EffectiveRole(),
		CreatedAt: u.CreatedAt,
	}
}

// userSummaryResponse is the reduced shape shown to other authenticated
// users. SSN and phone stay private to the owner and admins.
type userSummaryResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UserHandler struct {
	UserService *service.UserService
}

// HandleGetMe returns the caller's full profile.
//
//	@Summary		Get own profile
//	@Tags			User
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	userProfileResponse
//	@Failure		401	{object}	httpx.ErrorBody	"Not authenticated"
//	@Router			/api/user/me [get].
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.UserService.GetByID(r.Context(), id.UserID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("load own profile failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	SSN       string `json:"ssn"`
}

// HandleUpdateMe replaces the caller's editable profile fields.
//
//	@Summary		Update own profile
//	@Tags			User
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		updateProfileRequest	true	"New field values"
//	@Success		200		{object}	userProfileResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Malformed request"
//	@Router			/api/user/me [put].
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.UserService.UpdateInfo(r.Context(), id.UserID, service.UpdateInfoParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		SSN:       req.SSN,
	})
	if err != nil {
		slogx.FromContext(r.Context()).Error("update profile failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}

// HandleGetByID returns another user's public summary.
//
//	@Summary		Get a user by id
//	@Tags			User
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"User id"
//	@Success		200	{object}	userSummaryResponse
//	@Failure		404	{object}	httpx.ErrorBody	"Unknown user"
//	@Router			/api/user/{id} [get].
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		slogx.FromContext(r.Context()).Error("load user failed", "user_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userSummaryResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
