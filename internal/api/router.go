package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/api/recovery"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/auth"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/metrics"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/services"
)

// NewRouter wires HTTP routes to handlers. /api/health and /metrics are public;
// everything under /api/ai requires the authorizer's approval.
func NewRouter(svc *services.AssistantService, authorizer auth.Authorizer, health HealthReporter, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(AccessLog(log))
	root.Use(recovery.Middleware(log))
	root.Use(metrics.Middleware)

	healthHandler := NewHealthHandler(health)
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	ai := root.PathPrefix("/api/ai").Subrouter()
	ai.Use(auth.Middleware(authorizer, log))

	h := NewAssistantHandler(svc)
	ai.HandleFunc("/chat", h.Chat).Methods(http.MethodPost)
	ai.HandleFunc("/suggestions", h.Suggestions).Methods(http.MethodGet)
	ai.HandleFunc("/memory", h.ListMemory).Methods(http.MethodGet)
	ai.HandleFunc("/memory", h.CreateMemory).Methods(http.MethodPost)
	ai.HandleFunc("/memory", h.ClearMemory).Methods(http.MethodDelete)
	ai.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)

	return root
}
