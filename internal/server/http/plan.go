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

type planRequest struct {
	Phase   string `json:"phase"`
	Persona string `json:"persona"`
	Needs   string `json:"needs"`
	Diary   string `json:"diary"`
}

type planResponse struct {
	Phase     string    `json:"phase"`
	Persona   string    `json:"persona"`
	Needs     string    `json:"needs"`
	Diary     string    `json:"diary"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPlan(p domain.Plan) planResponse {
	return planResponse{
		Phase:     p.Phase,
		Persona:   p.Persona,
		Needs:     p.Needs,
		Diary:     p.Diary,
		UpdatedAt: p.UpdatedAt,
	}
}

type PlanHandler struct {
	PlanService *service.PlanService
}

// HandleGet returns the caller's plan. The route is public so the frontend
// can render its landing state without a token; anonymous callers and users
// without a plan both get 204 rather than an error.
//
//	@Summary		Get own plan
//	@Tags			Plan
//	@Produce		json
//	@Success		200	{object}	planResponse
//	@Success		204	"Anonymous caller or no plan yet"
//	@Router			/api/plan/me [get].
func (h *PlanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	plan, err := h.PlanService.GetForUser(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		slogx.FromContext(r.Context()).Error("load plan failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toPlan(plan))
}

// HandleUpsert creates or replaces the caller's plan.
//
//	@Summary		Save own plan
//	@Tags			Plan
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		planRequest	true	"Plan fields"
//	@Success		200		{object}	planResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Malformed request"
//	@Router			/api/plan/me [put].
func (h *PlanHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	plan, err := h.PlanService.Upsert(r.Context(), id.UserID, service.UpsertParams{
		Phase:   req.Phase,
		Persona: req.Persona,
		Needs:   req.Needs,
		Diary:   req.Diary,
	})
	if err != nil {
		slogx.FromContext(r.Context()).Error("save plan failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPlan(plan))
}
