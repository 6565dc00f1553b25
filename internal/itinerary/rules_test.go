package itinerary

import (
	"errors"
	"testing"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func sampleTrip() models.Trip {
	return models.Trip{
		ID:          "trip-1",
		OwnerID:     "owner-1",
		Name:        "Tokyo & Kyoto Discovery",
		Description: ptr("Temples and ramen"),
		StartDate:   day("2024-08-01"),
		EndDate:     day("2024-08-14"),
		IsPublic:    true,
		TotalBudget: decimal.NewFromInt(3500),
		City:        ptr("Tokyo"),
		Country:     ptr("Japan"),
		CreatedAt:   day("2024-01-01"),
		UpdatedAt:   day("2024-01-02"),
	}
}

func TestValidateTrip(t *testing.T) {
	require.NoError(t, ValidateTrip(sampleTrip()))

	tests := []struct {
		name   string
		mutate func(*models.Trip)
		field  string
	}{
		{"missing name", func(tr *models.Trip) { tr.Name = "  " }, "name"},
		{"missing start", func(tr *models.Trip) { tr.StartDate = time.Time{} }, "start_date"},
		{"missing end", func(tr *models.Trip) { tr.EndDate = time.Time{} }, "end_date"},
		{"end before start", func(tr *models.Trip) { tr.EndDate = day("2024-07-31") }, "end_date"},
		{"negative budget", func(tr *models.Trip) { tr.TotalBudget = decimal.NewFromInt(-1) }, "total_budget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := sampleTrip()
			tt.mutate(&tr)
			err := ValidateTrip(tr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSingleDayTripIsValid(t *testing.T) {
	tr := sampleTrip()
	tr.EndDate = tr.StartDate
	assert.NoError(t, ValidateTrip(tr))
}

func TestParseBudget(t *testing.T) {
	b, err := ParseBudget("")
	require.NoError(t, err)
	assert.True(t, b.IsZero())

	b, err = ParseBudget("not a number")
	require.NoError(t, err)
	assert.True(t, b.IsZero())

	b, err = ParseBudget(" 1250.75 ")
	require.NoError(t, err)
	assert.Equal(t, "1250.75", b.String())

	_, err = ParseBudget("-5")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNextStopOrderAppendsZeroBased(t *testing.T) {
	var stops []models.Stop
	for k := 0; k < 4; k++ {
		idx := NextStopOrder(stops)
		assert.Equal(t, k, idx)
		stops = append(stops, models.Stop{ID: string(rune('a' + k)), OrderIndex: idx})
	}
}

func TestNextStopOrderNeverReusesAfterDelete(t *testing.T) {
	stops := []models.Stop{{OrderIndex: 0}, {OrderIndex: 2}}
	assert.Equal(t, 3, NextStopOrder(stops))

	stops = []models.Stop{{OrderIndex: 0}, {OrderIndex: 1}}
	assert.Equal(t, 2, NextStopOrder(stops))
}

func TestSorts(t *testing.T) {
	trips := []models.Trip{
		{ID: "a", StartDate: day("2024-06-15")},
		{ID: "b", StartDate: day("2024-09-10")},
		{ID: "c", StartDate: day("2024-08-01")},
	}
	SortTrips(trips)
	assert.Equal(t, []string{"b", "c", "a"}, []string{trips[0].ID, trips[1].ID, trips[2].ID})

	stops := []models.Stop{
		{ID: "late", OrderIndex: 1, CreatedAt: day("2024-01-01")},
		{ID: "tie-2", OrderIndex: 0, CreatedAt: day("2024-01-03")},
		{ID: "tie-1", OrderIndex: 0, CreatedAt: day("2024-01-02")},
	}
	SortStops(stops)
	assert.Equal(t, []string{"tie-1", "tie-2", "late"}, []string{stops[0].ID, stops[1].ID, stops[2].ID})

	acts := []models.Activity{
		{ID: "d2", ActivityDate: day("2024-08-02"), OrderIndex: 0},
		{ID: "d1b", ActivityDate: day("2024-08-01"), OrderIndex: 1},
		{ID: "d1a", ActivityDate: day("2024-08-01"), OrderIndex: 0},
	}
	SortActivities(acts)
	assert.Equal(t, []string{"d1a", "d1b", "d2"}, []string{acts[0].ID, acts[1].ID, acts[2].ID})
}

func TestSummarize(t *testing.T) {
	trip := sampleTrip()
	trip.TotalBudget = decimal.NewFromInt(1000)
	acts := []models.Activity{
		{Cost: decimal.RequireFromString("120.50")},
		{Cost: decimal.NewFromInt(300)},
	}
	exps := []models.Expense{
		{Category: "food", Amount: decimal.NewFromInt(400)},
		{Category: "food", Amount: decimal.NewFromInt(100)},
		{Category: "transport", Amount: decimal.NewFromInt(200)},
	}

	b := Summarize(trip, acts, exps)
	assert.Equal(t, "420.5", b.ActivitiesCost.String())
	assert.Equal(t, "700", b.ExpensesCost.String())
	assert.Equal(t, "1120.5", b.TotalSpent.String())
	assert.Equal(t, "-120.5", b.Remaining.String())
	assert.True(t, b.OverBudget)
	assert.Equal(t, "500", b.ByCategory["food"].String())

	empty := Summarize(trip, nil, nil)
	assert.True(t, empty.TotalSpent.IsZero())
	assert.True(t, empty.Remaining.Equal(trip.TotalBudget))
	assert.False(t, empty.OverBudget)
}

func TestDateRules(t *testing.T) {
	trip := sampleTrip()
	inside := models.Stop{StartDate: day("2024-08-02"), EndDate: day("2024-08-05")}
	outside := models.Stop{StartDate: day("2024-07-30"), EndDate: day("2024-08-03")}

	advisory := DateRules{}
	warnings, err := advisory.CheckStop(trip, inside)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	warnings, err = advisory.CheckStop(trip, outside)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)

	_, err = DateRules{Strict: true}.CheckStop(trip, outside)
	assert.ErrorIs(t, err, ErrValidation)

	warnings, err = advisory.CheckActivity(inside, models.Activity{ActivityDate: day("2024-08-05")})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	_, err = DateRules{Strict: true}.CheckActivity(inside, models.Activity{ActivityDate: day("2024-08-06")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDuplicate(t *testing.T) {
	src := sampleTrip()
	now := day("2025-03-01")

	dup, err := Duplicate(src, "user-2", "temp-1", day("2025-04-01"), day("2025-04-10"), now)
	require.NoError(t, err)
	assert.Equal(t, "temp-1", dup.ID)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "user-2", dup.OwnerID)
	assert.False(t, dup.IsPublic)
	assert.Equal(t, day("2025-04-01"), dup.StartDate)
	assert.Equal(t, now, dup.CreatedAt)

	assert.Equal(t, src.Name, dup.Name)
	assert.Equal(t, src.Description, dup.Description)
	assert.True(t, src.TotalBudget.Equal(dup.TotalBudget))
	assert.Equal(t, src.City, dup.City)
	assert.Equal(t, src.Country, dup.Country)
	assert.Equal(t, src.CoverPhotoURL, dup.CoverPhotoURL)

	assert.True(t, src.IsPublic, "source is untouched")
}

func TestDuplicateRejectsInvertedRange(t *testing.T) {
	_, err := Duplicate(sampleTrip(), "user-2", "temp-1", day("2024-09-10"), day("2024-09-05"), time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Duplicate(sampleTrip(), "user-2", "temp-1", day("2024-09-10"), time.Time{}, time.Now())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestToggleVisibility(t *testing.T) {
	tr := sampleTrip()
	flipped := ToggleVisibility(tr)
	assert.False(t, flipped.IsPublic)
	assert.True(t, ToggleVisibility(flipped).IsPublic)
	flipped.IsPublic = tr.IsPublic
	assert.Equal(t, tr, flipped)
}

func TestDefaultSection(t *testing.T) {
	s := DefaultSection(sampleTrip())
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Tokyo & Kyoto Discovery", s.Title)
	assert.Equal(t, "Temples and ramen", s.Description)
	assert.Equal(t, "2024-08-01", s.StartDate)
	assert.Equal(t, "2024-08-14", s.EndDate)
	assert.Equal(t, "3500", s.Budget)
	assert.Equal(t, models.SectionActivity, s.Type)
}

func TestApplySections(t *testing.T) {
	now := day("2025-01-01")
	sections := []models.ItinerarySection{
		{ID: "s1", Title: "Renamed", StartDate: "2024-08-03", Budget: "4000", Type: models.SectionTravel},
		{ID: "s2", Title: "ignored", Type: models.SectionFood},
	}
	out, err := ApplySections(sampleTrip(), sections, now)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Name)
	assert.Equal(t, "Temples and ramen", *out.Description)
	assert.Equal(t, day("2024-08-03"), out.StartDate)
	assert.Equal(t, day("2024-08-14"), out.EndDate)
	assert.Equal(t, "4000", out.TotalBudget.String())
	assert.Equal(t, now, out.UpdatedAt)

	_, err = ApplySections(sampleTrip(), []models.ItinerarySection{{ID: "s", EndDate: "2024-07-01", Type: "hotel"}}, now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTripFromSections(t *testing.T) {
	now := time.Date(2025, 5, 6, 15, 4, 5, 0, time.UTC)
	tr, err := TripFromSections("temp-user", "temp-9", nil, now)
	require.NoError(t, err)
	assert.Equal(t, "New Trip", tr.Name)
	assert.Equal(t, day("2025-05-06"), tr.StartDate)
	assert.True(t, tr.TotalBudget.IsZero())
	assert.False(t, tr.IsPublic)
}

func TestValidateSections(t *testing.T) {
	assert.NoError(t, ValidateSections([]models.ItinerarySection{{ID: "a", Type: "hotel"}}))
	assert.Error(t, ValidateSections([]models.ItinerarySection{{ID: "a", Type: "spa"}}))
	assert.Error(t, ValidateSections([]models.ItinerarySection{{ID: "a", Type: "food", StartDate: "tomorrow"}}))
}
