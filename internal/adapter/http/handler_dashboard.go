package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/incidra/incidra/internal/usecase"
	"github.com/incidra/incidra/pkg/apperror"
)

// DashboardHandler handles HTTP requests for dashboard metrics
type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
	authMiddleware   *AuthMiddleware
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase, authMiddleware *AuthMiddleware) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard/stats", h.authMiddleware.RequireAuth(h.GetStats)).Methods("GET")
	router.HandleFunc("/dashboard/recent-incidents", h.authMiddleware.RequireAuth(h.GetRecentIncidents)).Methods("GET")
	router.HandleFunc("/dashboard/call-volume", h.authMiddleware.RequireAuth(h.GetCallVolume)).Methods("GET")
	router.HandleFunc("/dashboard/satisfaction", h.authMiddleware.RequireAuth(h.GetSatisfaction)).Methods("GET")
	router.HandleFunc("/dashboard/priority-distribution", h.authMiddleware.RequireAuth(h.GetPriorityDistribution)).Methods("GET")
	router.HandleFunc("/dashboard/channel-distribution", h.authMiddleware.RequireAuth(h.GetChannelDistribution)).Methods("GET")
	router.HandleFunc("/dashboard/cache", h.authMiddleware.RequireAuth(h.ClearCache)).Methods("DELETE")
}

// GetStats handles dashboard statistics requests
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	stats, err := h.dashboardUseCase.GetStats(r.Context(), claims)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// GetRecentIncidents handles recent incident list requests
func (h *DashboardHandler) GetRecentIncidents(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	incidents, err := h.dashboardUseCase.GetRecentIncidents(r.Context(), claims)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, incidents)
}

// GetCallVolume handles call volume trend requests
func (h *DashboardHandler) GetCallVolume(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	series, err := h.dashboardUseCase.GetCallVolume(r.Context(), claims)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, series)
}

// GetSatisfaction handles customer satisfaction metric requests
func (h *DashboardHandler) GetSatisfaction(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	series, err := h.dashboardUseCase.GetSatisfaction(r.Context(), claims)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, series)
}

// GetPriorityDistribution handles priority distribution requests
func (h *DashboardHandler) GetPriorityDistribution(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	dist, err := h.dashboardUseCase.GetPriorityDistribution(r.Context(), claims)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dist)
}

// GetChannelDistribution handles channel distribution requests
func (h *DashboardHandler) GetChannelDistribution(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	dist, err := h.dashboardUseCase.GetChannelDistribution(r.Context(), claims)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dist)
}

// ClearCache handles per-user cache invalidation requests
func (h *DashboardHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := h.dashboardUseCase.ClearCache(r.Context(), claims); err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Cache cleared successfully"})
}

func (h *DashboardHandler) writeUseCaseError(w http.ResponseWriter, err error) {
	status, message, details := apperror.MapError(err)
	WriteError(w, status, message, details)
}
