package itinerary

import (
	"strings"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Duplicate copies a public trip for a new owner over a new date range. The copy is
// private and gets fresh timestamps; every other field is carried over.
func Duplicate(src models.Trip, ownerID, newID string, start, end, now time.Time) (models.Trip, error) {
	if err := ValidateRange("start_date", start, end); err != nil {
		return models.Trip{}, err
	}
	dup := src
	dup.ID = newID
	dup.OwnerID = ownerID
	dup.StartDate = start
	dup.EndDate = end
	dup.IsPublic = false
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return dup, nil
}

// ToggleVisibility flips is_public. Nothing else changes.
func ToggleVisibility(t models.Trip) models.Trip {
	t.IsPublic = !t.IsPublic
	return t
}

// DefaultSection builds the single section shown for a trip that has none saved.
// It is not persisted.
func DefaultSection(t models.Trip) models.ItinerarySection {
	s := models.ItinerarySection{
		ID:        uuid.NewString(),
		Title:     t.Name,
		StartDate: utils.FormatDate(t.StartDate),
		EndDate:   utils.FormatDate(t.EndDate),
		Type:      models.SectionActivity,
	}
	if t.Description != nil {
		s.Description = *t.Description
	}
	if !t.TotalBudget.IsZero() {
		s.Budget = t.TotalBudget.String()
	}
	return s
}

// BlankSection is a new empty section as added from the editor.
func BlankSection() models.ItinerarySection {
	return models.ItinerarySection{ID: uuid.NewString(), Type: models.SectionActivity}
}

// ValidateSections checks section types and date formats. Empty dates are allowed
// while a section is being edited.
func ValidateSections(sections []models.ItinerarySection) error {
	for i, s := range sections {
		if s.ID == "" {
			return invalid("sections", "section %d has no id", i)
		}
		if !models.IsSectionType(s.Type) {
			return invalid("sections", "section %d has unknown type %q", i, s.Type)
		}
		for _, d := range []string{s.StartDate, s.EndDate} {
			if d == "" {
				continue
			}
			if _, err := utils.ParseDate(d); err != nil {
				return invalid("sections", "section %d: %v", i, err)
			}
		}
	}
	return nil
}

// ApplySections writes the first section back onto the trip: every non-empty field
// of that section replaces the trip's value. The result is validated.
func ApplySections(t models.Trip, sections []models.ItinerarySection, now time.Time) (models.Trip, error) {
	if len(sections) > 0 {
		first := sections[0]
		if strings.TrimSpace(first.Title) != "" {
			t.Name = first.Title
		}
		if first.Description != "" {
			desc := first.Description
			t.Description = &desc
		}
		if first.StartDate != "" {
			d, err := utils.ParseDate(first.StartDate)
			if err != nil {
				return models.Trip{}, invalid("start_date", "%v", err)
			}
			t.StartDate = d
		}
		if first.EndDate != "" {
			d, err := utils.ParseDate(first.EndDate)
			if err != nil {
				return models.Trip{}, invalid("end_date", "%v", err)
			}
			t.EndDate = d
		}
		if first.Budget != "" {
			b, err := ParseBudget(first.Budget)
			if err != nil {
				return models.Trip{}, err
			}
			t.TotalBudget = b
		}
	}
	t.UpdatedAt = now
	return t, ValidateTrip(t)
}

// TripFromSections builds a new trip from a draft itinerary. Missing fields fall back
// to "New Trip", today and a zero budget.
func TripFromSections(ownerID, id string, sections []models.ItinerarySection, now time.Time) (models.Trip, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	base := models.Trip{
		ID:          id,
		OwnerID:     ownerID,
		Name:        "New Trip",
		StartDate:   today,
		EndDate:     today,
		TotalBudget: decimal.Zero,
		CreatedAt:   now,
	}
	return ApplySections(base, sections, now)
}
