package api

import (
	"net/http"
	"time"

	respond "github.com/Maverick-list/Personal-Advance-Portofolio/internal/api/respond"
)

// HealthReporter is the cached service health view (see health.Monitor).
type HealthReporter interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	svc HealthReporter
}

// NewHealthHandler creates a new health handler. A nil reporter always reports healthy.
func NewHealthHandler(svc HealthReporter) *HealthHandler { return &HealthHandler{svc: svc} }

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	var components map[string]bool
	if h.svc != nil {
		if !h.svc.IsHealthy() {
			status = "unhealthy"
		}
		components = h.svc.Components()
	}
	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if len(components) > 0 {
		response["components"] = components
	}
	respond.WriteJSON(w, http.StatusOK, response)
}
