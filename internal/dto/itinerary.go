package dto

import "GLOBETROTTER_BACK-END/internal/models"

// SectionsResponse returns the itinerary sections of a trip. Saved is false when the
// list was synthesised from the trip itself.
type SectionsResponse struct {
	TripID   string                    `json:"trip_id"`
	Sections []models.ItinerarySection `json:"sections"`
	Saved    bool                      `json:"saved"`
	Pending  bool                      `json:"pending"`
}

// SaveSectionsRequest replaces the whole section list
type SaveSectionsRequest struct {
	Sections []models.ItinerarySection `json:"sections"`
}

// TimelineSection is a section with its status on the timeline
type TimelineSection struct {
	models.ItinerarySection
	Status string `json:"status"` // upcoming | active | completed
}

// TimelineResponse lists sections by start date, undated sections last
type TimelineResponse struct {
	TripID   string            `json:"trip_id"`
	Sections []TimelineSection `json:"sections"`
	Total    int               `json:"total"`
}
