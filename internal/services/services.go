// Package services implements the application operations behind the HTTP handlers.
// Every call receives the caller's session.Identity explicitly.
package services

import (
	"errors"
	"strings"
	"time"

	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/utils"
)

var (
	// ErrForbidden is returned when the caller may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrLocalTrip is returned for stop, activity and expense operations on a trip held
	// by the local store. Local trips are planned with itinerary sections instead.
	ErrLocalTrip = errors.New("trip is stored locally and has no stops, activities or expenses")
)

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func invalid(field, msg string) error {
	return &itinerary.ValidationError{Field: field, Message: msg}
}

// parseDate parses an optional date field. Emptiness is checked by the validators.
func parseDate(field, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, invalid(field, err.Error())
	}
	return d, nil
}

// optional turns "" into nil so the column is cleared.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
