package http

import (
	"net/http"
	"time"

	"github.com/ltj54/restructuring/internal/server/store"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

type SystemHandler struct {
	AppName   string
	Version   string
	Env       string
	Port      int
	StartTime time.Time
	Store     store.Store
}

// HandleHello is a public smoke-test endpoint for frontend connectivity.
//
//	@Summary	Hello
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/api/hello [get].
func (h *SystemHandler) HandleHello(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from " + h.AppName,
	})
}

// HandlePing answers pong.
//
//	@Summary	Ping
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/api/ping [get].
func (h *SystemHandler) HandlePing(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// HandleHealth reports liveness including a database round-trip.
//
//	@Summary	Health check
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Failure	503	{object}	healthResponse	"Database unreachable"
//	@Router		/api/health [get].
func (h *SystemHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Uptime: time.Since(h.StartTime).Round(time.Second).String(),
	}

	if err := h.Store.Ping(r.Context()); err != nil {
		slogx.FromContext(r.Context()).Warn("health check database ping failed", "err", err)
		resp.Status = "degraded"
		httpx.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

type configResponse struct {
	App       string    `json:"app"`
	Version   string    `json:"version"`
	Env       string    `json:"env"`
	Port      int       `json:"port"`
	Timestamp time.Time `json:"timestamp"`
}

// HandleConfig exposes non-sensitive runtime settings to admins.
//
//	@Summary		Runtime configuration
//	@Tags			System
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	configResponse
//	@Failure		403	{object}	httpx.ErrorBody	"Not an admin"
//	@Router			/api/config [get].
func (h *SystemHandler) HandleConfig(w http.ResponseWriter, _ *http.Request) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, configResponse{
		App:       h.AppName,
		Version:   h.Version,
		Env:       h.Env,
		Port:      h.Port,
		Timestamp: time.Now().UTC(),
	})
}

type dbInfoResponse struct {
	Driver  string `json:"driver"`
	Version string `json:"version"`
}

// HandleDBInfo reports the database driver and server version. The DSN and
// credentials are never included.
//
//	@Summary		Database info
//	@Tags			System
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dbInfoResponse
//	@Failure		403	{object}	httpx.ErrorBody	"Not an admin"
//	@Router			/api/dbinfo [get].
func (h *SystemHandler) HandleDBInfo(w http.ResponseWriter, r *http.Request) {
	driver, version, err := h.Store.Info(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("database info failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dbInfoResponse{Driver: driver, Version: version})
}
