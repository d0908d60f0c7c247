package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/service"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

type insuranceProductResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	CanBuyPrivately bool     `json:"canBuyPrivately"`
	ProviderName    string   `json:"providerName"`
	ProviderWebsite string   `json:"providerWebsite,omitempty"`
	Categories      []string `json:"categories"`
}

type registerInsuranceRequest struct {
	Source       string `json:"source"`
	ProviderName string `json:"providerName"`
	ProductName  string `json:"productName"`
	Notes        string `json:"notes"`
	ValidFrom    string `json:"validFrom"`
	ValidTo      string `json:"validTo"`
}

type userInsuranceResponse struct {
	ID           int64  `json:"id"`
	Source       string `json:"source"`
	ProviderName string `json:"providerName"`
	ProductName  string `json:"productName"`
	Notes        string `json:"notes"`
	Active       bool   `json:"active"`
	ValidFrom    string `json:"validFrom,omitempty"`
	ValidTo      string `json:"validTo,omitempty"`
}

type insuranceSnapshotRequest struct {
	Source    string   `json:"source"`
	Types     []string `json:"types"`
	Uncertain bool     `json:"uncertain"`
}

type insuranceSnapshotResponse struct {
	Source    string    `json:"source"`
	Types     []string  `json:"types"`
	Uncertain bool      `json:"uncertain"`
	CreatedAt time.Time `json:"createdAt"`
}

type insuranceRequestResponse struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// splitCSV turns the stored comma separated form back into a list,
// dropping empties so "" round-trips to [].
func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toInsuranceProduct(p domain.InsuranceProduct) insuranceProductResponse {
	return insuranceProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CanBuyPrivately: p.CanBuyPrivately,
		ProviderName:    p.ProviderName,
		ProviderWebsite: p.ProviderWebsite,
		Categories:      splitCSV(p.Categories),
	}
}

func toUserInsurance(p domain.InsuranceProfile) userInsuranceResponse {
	return userInsuranceResponse{
		ID:           p.ID,
		Source:       p.Source,
		ProviderName: p.ProviderName,
		ProductName:  p.ProductName,
		Notes:        p.Notes,
		Active:       p.Active,
		ValidFrom:    p.ValidFrom,
		ValidTo:      p.ValidTo,
	}
}

func toInsuranceSnapshot(s domain.InsuranceSnapshot) insuranceSnapshotResponse {
	return insuranceSnapshotResponse{
		Source:    s.Source,
		Types:     splitCSV(s.Types),
		Uncertain: s.Uncertain,
		CreatedAt: s.CreatedAt,
	}
}

type InsuranceHandler struct {
	InsuranceService *service.InsuranceService
}

// HandleListProducts returns the insurance catalog.
//
//	@Summary		List insurance products
//	@Tags			Insurance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	insuranceProductResponse
//	@Router			/api/insurance/products [get].
func (h *InsuranceHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.InsuranceService.ListProducts(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("list insurance products failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]insuranceProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toInsuranceProduct(p))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleListMine returns the caller's registered insurances, newest first.
//
//	@Summary		List own insurances
//	@Tags			Insurance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	userInsuranceResponse
//	@Router			/api/insurance/my [get].
func (h *InsuranceHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profiles, err := h.InsuranceService.ListProfiles(r.Context(), id.UserID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("list insurances failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]userInsuranceResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toUserInsurance(p))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRegisterMine records an insurance the caller already holds.
//
//	@Summary		Register own insurance
//	@Tags			Insurance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerInsuranceRequest	true	"Insurance details"
//	@Success		201		{object}	userInsuranceResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Unknown source"
//	@Router			/api/insurance/my [post].
func (h *InsuranceHandler) HandleRegisterMine(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req registerInsuranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	profile, err := h.InsuranceService.RegisterProfile(r.Context(), id.UserID, service.RegisterProfileParams{
		Source:       req.Source,
		ProviderName: req.ProviderName,
		ProductName:  req.ProductName,
		Notes:        req.Notes,
		ValidFrom:    req.ValidFrom,
		ValidTo:      req.ValidTo,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInsuranceSource) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid source")
			return
		}
		slogx.FromContext(r.Context()).Error("register insurance failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserInsurance(profile))
}

// HandleGetSnapshot returns the caller's coverage snapshot, 204 when none
// has been saved yet.
//
//	@Summary		Get coverage snapshot
//	@Tags			Insurance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	insuranceSnapshotResponse
//	@Success		204	"No snapshot saved yet"
//	@Router			/api/insurance/snapshot [get].
func (h *InsuranceHandler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	snapshot, err := h.InsuranceService.GetSnapshot(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, service.ErrSnapshotNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		slogx.FromContext(r.Context()).Error("load snapshot failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toInsuranceSnapshot(snapshot))
}

// HandleSaveSnapshot stores the caller's snapshot, replacing any previous one.
//
//	@Summary		Save coverage snapshot
//	@Tags			Insurance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		insuranceSnapshotRequest	true	"Source, coverage types and uncertainty"
//	@Success		200		{object}	insuranceSnapshotResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Unknown source or type"
//	@Router			/api/insurance/snapshot [post].
func (h *InsuranceHandler) HandleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req insuranceSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	snapshot, err := h.InsuranceService.SaveSnapshot(r.Context(), id.UserID, service.SnapshotParams{
		Source:    req.Source,
		Types:     req.Types,
		Uncertain: req.Uncertain,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInsuranceSource):
			httpx.WriteError(w, http.StatusBadRequest, "invalid source")
		case errors.Is(err, service.ErrInvalidInsuranceType):
			httpx.WriteError(w, http.StatusBadRequest, "invalid coverage type")
		default:
			slogx.FromContext(r.Context()).Error("save snapshot failed", "user_id", id.UserID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInsuranceSnapshot(snapshot))
}

// HandleSubmitRequest files a new insurance request for the caller.
//
//	@Summary		Submit insurance request
//	@Tags			Insurance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		201	{object}	insuranceRequestResponse
//	@Router			/api/insurance/request [post].
func (h *InsuranceHandler) HandleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req, err := h.InsuranceService.SubmitRequest(r.Context(), id.UserID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("submit insurance request failed", "user_id", id.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, insuranceRequestResponse{
		ID:          req.ID,
		Status:      req.Status,
		SubmittedAt: req.SubmittedAt,
	})
}
