package handlers

import (
	"net/http"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	trips  *services.TripService
	logger *utils.Logger
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(trips *services.TripService, logger *utils.Logger) *TripsHandler {
	return &TripsHandler{trips: trips, logger: logger}
}

// ListTrips handles GET /api/trips
// @Summary List my trips
// @Description Trips of the caller from both stores. Remote copies win when an id exists in both.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TripListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/trips [get]
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	trips := h.trips.ListMyTrips(r.Context(), who)
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripListResponse{Trips: toTripResponses(trips), Total: len(trips)})
}

// CreateTrip handles POST /api/trips
// @Summary Create a new trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.TripWriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	trip, err := h.trips.CreateTrip(r.Context(), who, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.TripWriteResponse{Trip: toTripResponse(trip)})
}

// TripDetail handles GET /api/trips/{id}
// @Summary Get a trip
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripDetailResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id} [get]
func (h *TripsHandler) TripDetail(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	trip, perms, err := h.trips.GetTrip(r.Context(), who, pathVar(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripDetailResponse{
		Trip:        toTripResponse(trip),
		Permissions: dto.TripPermissions{CanEdit: perms.CanEdit, CanDelete: perms.CanDelete},
	})
}

// UpdateTrip handles PUT /api/trips/{id}
// @Summary Update a trip
// @Description Partial update. Dates outside the new range produce warnings, not errors.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Fields to update"
// @Success 200 {object} dto.TripWriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id} [put]
func (h *TripsHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	trip, warnings, err := h.trips.UpdateTrip(r.Context(), who, pathVar(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripWriteResponse{Trip: toTripResponse(trip), Warnings: warnings})
}

// DeleteTrip handles DELETE /api/trips/{id}
// @Summary Delete a trip
// @Description Removes the trip with its stops, activities, expenses and itinerary sections
// @Tags trips
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id} [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.trips.DeleteTrip(r.Context(), who, pathVar(r, "id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleVisibility handles POST /api/trips/{id}/visibility
// @Summary Toggle public visibility
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripWriteResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/visibility [post]
func (h *TripsHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	trip, err := h.trips.ToggleVisibility(r.Context(), who, pathVar(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripWriteResponse{Trip: toTripResponse(trip)})
}

// Budget handles GET /api/trips/{id}/budget
// @Summary Budget summary
// @Description Planned activity costs plus recorded expenses against the trip budget
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/budget [get]
func (h *TripsHandler) Budget(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	budget, err := h.trips.BudgetSummary(r.Context(), who, pathVar(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toBudgetResponse(budget))
}

// Itinerary handles GET /api/trips/{id}/itinerary
// @Summary Trip itinerary
// @Description Stops in order with their activities
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/itinerary [get]
func (h *TripsHandler) Itinerary(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	trip, stops, err := h.trips.Itinerary(r.Context(), who, pathVar(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryResponse{Trip: toTripResponse(trip), Stops: toStopResponses(stops)})
}
