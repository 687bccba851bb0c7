package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/incidra/incidra/internal/ports"
)

const serviceName = "Report Generation"

// HealthHandler reports service and component health
type HealthHandler struct {
	store ports.CacheStore
}

func NewHealthHandler(store ports.CacheStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
}

type componentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type healthResponse struct {
	Service    string                     `json:"service"`
	Status     string                     `json:"status"`
	Components map[string]componentHealth `json:"components"`
	Version    string                     `json:"version"`
}

// Health returns component health. Always 200: a degraded cache makes the
// service degraded, never the health check itself fail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	healthy, message := h.store.Ping(r.Context())

	overall := "OK"
	cacheStatus := "healthy"
	if !healthy {
		overall = "Degraded"
		cacheStatus = "unhealthy"
	}

	WriteJSON(w, http.StatusOK, healthResponse{
		Service: serviceName,
		Status:  overall,
		Components: map[string]componentHealth{
			"api": {
				Status:  "OK",
				Message: "API is responding",
			},
			"cache": {
				Status:  cacheStatus,
				Message: message,
			},
		},
		Version: apiVersion,
	})
}
