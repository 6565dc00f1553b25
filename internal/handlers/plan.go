package handlers

import (
	"net/http"
	"strings"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// PlanHandler serves stops, activities, expenses and the city catalog
type PlanHandler struct {
	plan   *services.PlanService
	logger *utils.Logger
}

func NewPlanHandler(plan *services.PlanService, logger *utils.Logger) *PlanHandler {
	return &PlanHandler{plan: plan, logger: logger}
}

// ListStops handles GET /api/trips/{id}/stops
// @Summary List stops of a trip
// @Tags stops
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.StopListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Trip only exists locally"
// @Router /api/trips/{id}/stops [get]
func (h *PlanHandler) ListStops(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	stops, err := h.plan.ListStops(r.Context(), who, pathVar(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.StopListResponse{Stops: toStopResponses(stops)})
}

// AddStop handles POST /api/trips/{id}/stops
// @Summary Add a stop
// @Description Appends a city visit after the last stop
// @Tags stops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param payload body dto.CreateStopRequest true "Stop payload"
// @Success 201 {object} dto.StopWriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/trips/{id}/stops [post]
func (h *PlanHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.CreateStopRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	stop, warnings, err := h.plan.AddStop(r.Context(), who, pathVar(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.StopWriteResponse{Stop: toStopResponse(stop), Warnings: warnings})
}

// DeleteStop handles DELETE /api/trips/{id}/stops/{stopId}
// @Summary Delete a stop
// @Tags stops
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param stopId path string true "Stop ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/stops/{stopId} [delete]
func (h *PlanHandler) DeleteStop(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.plan.DeleteStop(r.Context(), who, pathVar(r, "id"), pathVar(r, "stopId")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListActivities handles GET /api/stops/{stopId}/activities
// @Summary List activities of a stop
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param stopId path string true "Stop ID"
// @Success 200 {object} dto.ActivityListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stops/{stopId}/activities [get]
func (h *PlanHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	activities, err := h.plan.ListActivities(r.Context(), who, pathVar(r, "stopId"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ActivityListResponse{Activities: toActivityResponses(activities)})
}

// AddActivity handles POST /api/stops/{stopId}/activities
// @Summary Add an activity
// @Description Fields left empty are copied from activity_template_id when given
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param stopId path string true "Stop ID"
// @Param payload body dto.CreateActivityRequest true "Activity payload"
// @Success 201 {object} dto.ActivityWriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stops/{stopId}/activities [post]
func (h *PlanHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	activity, warnings, err := h.plan.AddActivity(r.Context(), who, pathVar(r, "stopId"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.ActivityWriteResponse{Activity: toActivityResponse(activity), Warnings: warnings})
}

// ListExpenses handles GET /api/trips/{id}/expenses
// @Summary List expenses of a trip
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/expenses [get]
func (h *PlanHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	expenses, total, err := h.plan.ListExpenses(r.Context(), who, pathVar(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp := dto.ExpenseListResponse{Expenses: make([]dto.ExpenseResponse, 0, len(expenses)), Total: total}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toExpenseResponse(e))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// AddExpense handles POST /api/trips/{id}/expenses
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param payload body dto.CreateExpenseRequest true "Expense payload"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/trips/{id}/expenses [post]
func (h *PlanHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	expense, err := h.plan.AddExpense(r.Context(), who, pathVar(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /api/trips/{id}/expenses/{expenseId}
// @Summary Delete an expense
// @Tags expenses
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param expenseId path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/expenses/{expenseId} [delete]
func (h *PlanHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.plan.DeleteExpense(r.Context(), who, pathVar(r, "id"), pathVar(r, "expenseId")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCities handles GET /api/cities
// @Summary List cities
// @Tags catalog
// @Produce json
// @Param sort query string false "name (default) or popular"
// @Param limit query int false "Maximum number of cities"
// @Success 200 {object} dto.CityListResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/cities [get]
func (h *PlanHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	q := store.CityQuery{
		Popular: strings.EqualFold(r.URL.Query().Get("sort"), "popular"),
		Limit:   queryInt(r, "limit", 0),
	}
	cities, err := h.plan.ListCities(r.Context(), q)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if cities == nil {
		cities = []models.City{}
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.CityListResponse{Cities: cities})
}

// ListActivityTemplates handles GET /api/cities/{cityId}/activity-templates
// @Summary Activity suggestions for a city
// @Tags catalog
// @Produce json
// @Param cityId path string true "City ID"
// @Success 200 {object} dto.ActivityTemplateListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/cities/{cityId}/activity-templates [get]
func (h *PlanHandler) ListActivityTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.plan.ListActivityTemplates(r.Context(), pathVar(r, "cityId"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if templates == nil {
		templates = []models.ActivityTemplate{}
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ActivityTemplateListResponse{Templates: templates})
}
