package handlers

import (
	"net/http"
	"strings"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// PublicTripsHandler serves the explore pages
type PublicTripsHandler struct {
	trips  *services.TripService
	logger *utils.Logger
}

func NewPublicTripsHandler(trips *services.TripService, logger *utils.Logger) *PublicTripsHandler {
	return &PublicTripsHandler{trips: trips, logger: logger}
}

// List handles GET /api/public/trips
// @Summary List public trips
// @Tags explore
// @Produce json
// @Param search query string false "Matches name, description, city or country"
// @Param city query string false "City filter"
// @Param country query string false "Country filter"
// @Success 200 {object} dto.PublicTripListResponse
// @Router /api/public/trips [get]
func (h *PublicTripsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := h.trips.ListPublicTrips(r.Context(), services.PublicTripsQuery{
		Search:  strings.TrimSpace(q.Get("search")),
		City:    strings.TrimSpace(q.Get("city")),
		Country: strings.TrimSpace(q.Get("country")),
	})
	utils.WriteJSONResponse(w, http.StatusOK, dto.PublicTripListResponse{
		Trips:     toTripResponses(res.Trips),
		Total:     len(res.Trips),
		Cities:    res.Cities,
		Countries: res.Countries,
	})
}

// Detail handles GET /api/public/trips/{id}
// @Summary Get a public trip
// @Tags explore
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.PublicTripDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/public/trips/{id} [get]
func (h *PublicTripsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.trips.GetPublicTrip(r.Context(), pathVar(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	resp := dto.PublicTripDetailResponse{
		Trip:  toTripResponse(detail.TripResult),
		Stops: toStopResponses(detail.Stops),
	}
	if detail.Author != nil {
		resp.Author = &dto.AuthorResponse{
			ID:        detail.Author.ID,
			FullName:  detail.Author.FullName,
			AvatarURL: detail.Author.AvatarURL,
		}
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// Duplicate handles POST /api/public/trips/{id}/duplicate
// @Summary Copy a public trip
// @Description Copies the trip, its stops and activities into the caller's trips with new dates
// @Tags explore
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param payload body dto.DuplicateTripRequest true "New dates"
// @Success 201 {object} dto.TripWriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/public/trips/{id}/duplicate [post]
func (h *PublicTripsHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.DuplicateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	trip, err := h.trips.DuplicatePublicTrip(r.Context(), who, pathVar(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.TripWriteResponse{Trip: toTripResponse(trip)})
}
