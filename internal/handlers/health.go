package handlers

import (
	"context"
	"net/http"
	"time"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check related requests
type HealthHandler struct {
	remote Pinger
	local  Pinger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(remote, local Pinger) *HealthHandler {
	return &HealthHandler{remote: remote, local: local}
}

// HealthCheck handles basic health check (no database)
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck handles process liveness check
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck reports both stores. The service stays ready while only the remote
// store is down, since trips fall back to the local store.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	details := map[string]string{"db": "ok", "local": "ok"}
	status, code := "ready", http.StatusOK

	if err := h.local.Ping(ctx); err != nil {
		details["local"] = err.Error()
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	if err := h.remote.Ping(ctx); err != nil {
		details["db"] = err.Error()
		if code == http.StatusOK {
			status = "degraded"
		}
	}

	utils.WriteJSONResponse(w, code, dto.HealthResponse{Status: status, Details: details})
}
