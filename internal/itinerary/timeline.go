package itinerary

import (
	"slices"
	"strings"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// Section status on the timeline
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// TimelineEntry is a section with its status on a given day.
type TimelineEntry struct {
	models.ItinerarySection
	Status string
}

// SectionStatus places a section relative to the day of now. Both dates count as
// days of the section. A section without a usable start or end date is upcoming.
func SectionStatus(s models.ItinerarySection, now time.Time) string {
	start, okStart := sectionDate(s.StartDate)
	end, okEnd := sectionDate(s.EndDate)
	if !okStart || !okEnd {
		return StatusUpcoming
	}
	today := now.UTC().Truncate(24 * time.Hour)
	switch {
	case today.Before(start):
		return StatusUpcoming
	case today.After(end):
		return StatusCompleted
	default:
		return StatusActive
	}
}

// SortSectionsByStart returns the sections ordered by start date. Sections without a
// start date keep their relative order after the dated ones.
func SortSectionsByStart(sections []models.ItinerarySection) []models.ItinerarySection {
	out := slices.Clone(sections)
	slices.SortStableFunc(out, func(a, b models.ItinerarySection) int {
		da, okA := sectionDate(a.StartDate)
		db, okB := sectionDate(b.StartDate)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return da.Compare(db)
	})
	return out
}

// MatchSection reports whether query occurs in the title, description or type,
// ignoring case. An empty query matches everything.
func MatchSection(s models.ItinerarySection, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range []string{s.Title, s.Description, s.Type} {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// BuildTimeline sorts, filters and labels sections for the timeline view.
func BuildTimeline(sections []models.ItinerarySection, query string, now time.Time) []TimelineEntry {
	out := []TimelineEntry{}
	for _, s := range SortSectionsByStart(sections) {
		if !MatchSection(s, query) {
			continue
		}
		out = append(out, TimelineEntry{ItinerarySection: s, Status: SectionStatus(s, now)})
	}
	return out
}

func sectionDate(raw string) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, false
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return d.UTC(), true
}
