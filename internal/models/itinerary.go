package models

// Itinerary section types
const (
	SectionTravel   = "travel"
	SectionHotel    = "hotel"
	SectionActivity = "activity"
	SectionFood     = "food"
)

// DraftItineraryKey holds the sections of an itinerary that has no trip yet.
const DraftItineraryKey = "draft-itinerary"

// ItinerarySection is a flat planning unit used when a trip has no stop breakdown.
// Field names follow the documents written by the itinerary editor.
type ItinerarySection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Budget      string `json:"budget"`
	Type        string `json:"type"`
}

// IsSectionType reports whether t is one of the known section types.
func IsSectionType(t string) bool {
	switch t {
	case SectionTravel, SectionHotel, SectionActivity, SectionFood:
		return true
	}
	return false
}
