package itinerary

import (
	"fmt"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// DateRules checks that stops fall inside their trip and activities inside their stop.
// Violations are warnings unless Strict is set, in which case they are validation errors.
type DateRules struct {
	Strict bool
}

// CheckStop reports whether stop lies inside trip's date range.
func (r DateRules) CheckStop(trip models.Trip, stop models.Stop) ([]string, error) {
	if within(stop.StartDate, trip.StartDate, trip.EndDate) && within(stop.EndDate, trip.StartDate, trip.EndDate) {
		return nil, nil
	}
	msg := fmt.Sprintf("stop dates %s..%s fall outside trip dates %s..%s",
		utils.FormatDate(stop.StartDate), utils.FormatDate(stop.EndDate),
		utils.FormatDate(trip.StartDate), utils.FormatDate(trip.EndDate))
	return r.result("start_date", msg)
}

// CheckActivity reports whether the activity date lies inside stop's date range.
func (r DateRules) CheckActivity(stop models.Stop, a models.Activity) ([]string, error) {
	if within(a.ActivityDate, stop.StartDate, stop.EndDate) {
		return nil, nil
	}
	msg := fmt.Sprintf("activity date %s falls outside stop dates %s..%s",
		utils.FormatDate(a.ActivityDate), utils.FormatDate(stop.StartDate), utils.FormatDate(stop.EndDate))
	return r.result("activity_date", msg)
}

func (r DateRules) result(field, msg string) ([]string, error) {
	if r.Strict {
		return nil, &ValidationError{Field: field, Message: msg}
	}
	return []string{msg}, nil
}

func within(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
