package handlers

import (
	"net/http"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// DashboardHandler serves the home page summary
type DashboardHandler struct {
	dashboard *services.DashboardService
	logger    *utils.Logger
}

func NewDashboardHandler(dashboard *services.DashboardService, logger *utils.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Get handles GET /api/dashboard
// @Summary Home page summary
// @Description The four latest trips, the next upcoming trip and the eight most popular cities
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	d := h.dashboard.Dashboard(r.Context(), who)

	resp := dto.DashboardResponse{
		RecentTrips:   toTripResponses(d.RecentTrips),
		PopularCities: d.PopularCities,
		RecentBudget:  d.RecentBudget,
	}
	if d.NextTrip != nil {
		next := toTripResponse(*d.NextTrip)
		resp.NextTrip = &next
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}
