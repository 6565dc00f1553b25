package handlers

import (
	"net/http"
	"strconv"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// ItineraryHandler serves the section editor. The trip id "draft-itinerary" addresses
// the itinerary that has no trip yet.
type ItineraryHandler struct {
	itinerary *services.ItineraryService
	logger    *utils.Logger
}

func NewItineraryHandler(itinerary *services.ItineraryService, logger *utils.Logger) *ItineraryHandler {
	return &ItineraryHandler{itinerary: itinerary, logger: logger}
}

// GetSections handles GET /api/itinerary/{tripId}/sections
// @Summary Get itinerary sections
// @Tags itinerary
// @Produce json
// @Security BearerAuth
// @Param tripId path string true "Trip ID or draft-itinerary"
// @Success 200 {object} dto.SectionsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itinerary/{tripId}/sections [get]
func (h *ItineraryHandler) GetSections(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	sections, err := h.itinerary.Sections(r.Context(), who, pathVar(r, "tripId"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toSectionsResponse(sections))
}

// Timeline handles GET /api/itinerary/{tripId}/timeline
// @Summary Itinerary timeline
// @Description Sections ordered by start date with an upcoming, active or completed status
// @Tags itinerary
// @Produce json
// @Security BearerAuth
// @Param tripId path string true "Trip ID or draft-itinerary"
// @Param q query string false "Search in title, description and type"
// @Success 200 {object} dto.TimelineResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itinerary/{tripId}/timeline [get]
func (h *ItineraryHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	timeline, err := h.itinerary.Timeline(r.Context(), who, pathVar(r, "tripId"), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTimelineResponse(timeline))
}

// SaveSections handles PUT /api/itinerary/{tripId}/sections
// @Summary Replace itinerary sections
// @Description With autosave=true the write happens after a quiet period; later edits replace earlier ones
// @Tags itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tripId path string true "Trip ID or draft-itinerary"
// @Param autosave query bool false "Debounce the write"
// @Param payload body dto.SaveSectionsRequest true "Sections"
// @Success 200 {object} dto.SectionsResponse
// @Success 202 {object} dto.SectionsResponse "Auto-save scheduled"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/itinerary/{tripId}/sections [put]
func (h *ItineraryHandler) SaveSections(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.SaveSectionsRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	autosave, _ := strconv.ParseBool(r.URL.Query().Get("autosave"))

	res, err := h.itinerary.SaveSections(r.Context(), who, pathVar(r, "tripId"), req.Sections, autosave)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	status := http.StatusOK
	if res.Pending {
		status = http.StatusAccepted
	}
	utils.WriteJSONResponse(w, status, toSectionsResponse(res))
}

// Flush handles POST /api/itinerary/{tripId}/sections/flush
// @Summary Write a pending auto-save now
// @Tags itinerary
// @Security BearerAuth
// @Param tripId path string true "Trip ID or draft-itinerary"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/itinerary/{tripId}/sections/flush [post]
func (h *ItineraryHandler) Flush(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.itinerary.Flush(r.Context(), who, pathVar(r, "tripId")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveItinerary handles POST /api/itinerary/{tripId}/save
// @Summary Save the itinerary onto its trip
// @Description The first section's title, description, dates and budget are written to the trip. Saving the draft creates a new trip.
// @Tags itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tripId path string true "Trip ID or draft-itinerary"
// @Param payload body dto.SaveSectionsRequest true "Sections"
// @Success 200 {object} dto.TripWriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/itinerary/{tripId}/save [post]
func (h *ItineraryHandler) SaveItinerary(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.SaveSectionsRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	trip, err := h.itinerary.SaveItinerary(r.Context(), who, pathVar(r, "tripId"), req.Sections)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripWriteResponse{Trip: toTripResponse(trip)})
}
