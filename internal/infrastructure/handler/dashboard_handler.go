package handler

import (
	"encoding/json"
	"net/http"

	"github.com/damon-houk/inventory-tracker/internal/application/service"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// DashboardHandler handles HTTP requests for dashboard totals
type DashboardHandler struct {
	service *service.DashboardService
	logger  logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService, log logger.Logger) *DashboardHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &DashboardHandler{
		service: service,
		logger:  log,
	}
}

// GetDashboard handles computing and returning the dashboard totals
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling dashboard request", map[string]interface{}{
		"request_id": requestID,
	})

	totals, err := h.service.ComputeDashboard(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID, "computing the dashboard")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDashboardResponse(*totals))
}

// RegisterRoutes registers the dashboard handler routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")

	h.logger.Info("Dashboard routes registered", map[string]interface{}{
		"routes": []string{"GET /dashboard"},
	})
}
