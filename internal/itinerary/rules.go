// Package itinerary holds the rules that keep a trip, its stops and their activities
// consistent: date ranges, stop ordering, budget totals and the derived views used by
// the itinerary editor.
package itinerary

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"

	"github.com/shopspring/decimal"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a rejected field. It is raised before any store is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateTrip checks the fields every stored trip must satisfy.
func ValidateTrip(t models.Trip) error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "trip name is required")
	}
	if err := ValidateRange("start_date", t.StartDate, t.EndDate); err != nil {
		return err
	}
	if t.TotalBudget.IsNegative() {
		return invalid("total_budget", "total budget cannot be negative")
	}
	return nil
}

// ValidateRange requires both dates and start <= end.
func ValidateRange(field string, start, end time.Time) error {
	if start.IsZero() {
		return invalid(field, "start date is required")
	}
	if end.IsZero() {
		return invalid(strings.Replace(field, "start", "end", 1), "end date is required")
	}
	if end.Before(start) {
		return invalid(strings.Replace(field, "start", "end", 1), "end date must not be before start date")
	}
	return nil
}

// ParseBudget reads a user-entered budget. Empty or unparseable input counts as zero;
// a negative amount is rejected.
func ParseBudget(raw string) (decimal.Decimal, error) {
	return parseAmount("total_budget", raw)
}

// ParseAmount is ParseBudget for an arbitrary money field.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	return parseAmount(field, raw)
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, nil
	}
	if d.IsNegative() {
		return decimal.Zero, invalid(field, "amount cannot be negative")
	}
	return d, nil
}

// ValidateStop checks a stop on its own. Containment in the trip is checked by DateRules.
func ValidateStop(s models.Stop) error {
	if strings.TrimSpace(s.CityID) == "" {
		return invalid("city_id", "city is required")
	}
	return ValidateRange("start_date", s.StartDate, s.EndDate)
}

// ValidateActivity checks an activity on its own.
func ValidateActivity(a models.Activity) error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("name", "activity name is required")
	}
	if strings.TrimSpace(a.Category) == "" {
		return invalid("category", "category is required")
	}
	if a.Cost.IsNegative() {
		return invalid("cost", "cost cannot be negative")
	}
	if !a.DurationHours.IsPositive() {
		return invalid("duration_hours", "duration must be greater than zero")
	}
	if a.ActivityDate.IsZero() {
		return invalid("activity_date", "activity date is required")
	}
	return nil
}

// ValidateExpense checks an expense on its own.
func ValidateExpense(e models.Expense) error {
	if !slices.Contains(models.ExpenseCategories, e.Category) {
		return invalid("category", "category must be one of %s", strings.Join(models.ExpenseCategories, ", "))
	}
	if e.Amount.IsNegative() {
		return invalid("amount", "amount cannot be negative")
	}
	if e.ExpenseDate.IsZero() {
		return invalid("expense_date", "expense date is required")
	}
	return nil
}

// NextStopOrder returns the order_index for a stop appended after stops.
// order_index is a sparse key: appending continues after the largest index, so gaps
// left by deletions are never filled and never renumbered.
func NextStopOrder(stops []models.Stop) int {
	next := 0
	for _, s := range stops {
		if s.OrderIndex >= next {
			next = s.OrderIndex + 1
		}
	}
	return next
}

// NextActivityOrder is NextStopOrder for the activities of one stop.
func NextActivityOrder(activities []models.Activity) int {
	next := 0
	for _, a := range activities {
		if a.OrderIndex >= next {
			next = a.OrderIndex + 1
		}
	}
	return next
}

// SortTrips orders trips by start date, latest first.
func SortTrips(trips []models.Trip) {
	slices.SortStableFunc(trips, func(a, b models.Trip) int {
		return b.StartDate.Compare(a.StartDate)
	})
}

// SortTripsByCreated orders trips by creation time, newest first.
func SortTripsByCreated(trips []models.Trip) {
	slices.SortStableFunc(trips, func(a, b models.Trip) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// SortStops orders stops by order_index, ties by insertion time.
func SortStops(stops []models.Stop) {
	slices.SortStableFunc(stops, func(a, b models.Stop) int {
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex - b.OrderIndex
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// SortActivities orders activities by (activity_date, order_index).
func SortActivities(activities []models.Activity) {
	slices.SortStableFunc(activities, func(a, b models.Activity) int {
		if c := a.ActivityDate.Compare(b.ActivityDate); c != 0 {
			return c
		}
		return a.OrderIndex - b.OrderIndex
	})
}
