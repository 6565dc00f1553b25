package handlers

import (
	"net/http"

	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// AdminHandler serves administrator reports
type AdminHandler struct {
	admin  *services.AdminService
	logger *utils.Logger
}

func NewAdminHandler(admin *services.AdminService, logger *utils.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// Analytics handles GET /api/admin/analytics
// @Summary Platform analytics
// @Description Popular cities, activity categories and the most active travellers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Analytics
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/admin/analytics [get]
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	report, err := h.admin.Analytics(r.Context(), who)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, report)
}
