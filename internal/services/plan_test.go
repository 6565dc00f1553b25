package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
)

func stopReq(start, end string) dto.CreateStopRequest {
	return dto.CreateStopRequest{CityID: "city-kyoto", StartDate: start, EndDate: end}
}

func TestAddStopAppendsAndNeverRenumbers(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	ctx := context.Background()
	e.remoteTrip("r1", alice, false)

	var ids []string
	for i := 0; i < 3; i++ {
		s, warnings, err := e.plan.AddStop(ctx, alice, "r1", stopReq("2025-06-02", "2025-06-04"))
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, i, s.OrderIndex)
		require.NotNil(t, s.City)
		assert.Equal(t, "Kyoto", s.City.Name)
		ids = append(ids, s.ID)
	}

	require.NoError(t, e.plan.DeleteStop(ctx, alice, "r1", ids[1]))
	require.NoError(t, e.plan.DeleteStop(ctx, alice, "r1", ids[1]))

	s, _, err := e.plan.AddStop(ctx, alice, "r1", stopReq("2025-06-05", "2025-06-06"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.OrderIndex)

	stops, err := e.plan.ListStops(ctx, alice, "r1")
	require.NoError(t, err)
	var order []int
	for _, st := range stops {
		order = append(order, st.OrderIndex)
	}
	assert.Equal(t, []int{0, 2, 3}, order)
}

func TestAddStopOutsideTripIsAdvisoryByDefault(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	e.remoteTrip("r1", alice, false)

	s, warnings, err := e.plan.AddStop(context.Background(), alice, "r1", stopReq("2025-06-09", "2025-06-12"))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, e.remote.Stops, s.ID)
}

func TestAddStopOutsideTripRejectedWhenStrict(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{Strict: true})
	e.remoteTrip("r1", alice, false)

	_, _, err := e.plan.AddStop(context.Background(), alice, "r1", stopReq("2025-06-09", "2025-06-12"))
	var verr *itinerary.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start_date", verr.Field)
	assert.Empty(t, e.remote.Stops)
}

func TestAddStopValidation(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	ctx := context.Background()
	e.remoteTrip("r1", alice, false)
	calls := e.remote.CallCount()

	_, _, err := e.plan.AddStop(ctx, alice, "r1", stopReq("2025-06-05", "2025-06-02"))
	assert.ErrorIs(t, err, itinerary.ErrValidation)
	_, _, err = e.plan.AddStop(ctx, alice, "r1", dto.CreateStopRequest{StartDate: "2025-06-02", EndDate: "2025-06-03"})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
	assert.Equal(t, calls, e.remote.CallCount())

	_, _, err = e.plan.AddStop(ctx, alice, "r1", dto.CreateStopRequest{CityID: "city-atlantis", StartDate: "2025-06-02", EndDate: "2025-06-03"})
	var verr *itinerary.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "city_id", verr.Field)
}

func TestPlanAccess(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	ctx := context.Background()
	e.remoteTrip("r1", alice, true)

	_, _, err := e.plan.AddStop(ctx, bob, "r1", stopReq("2025-06-02", "2025-06-03"))
	assert.ErrorIs(t, err, ErrForbidden)

	// Public trips can be read by anyone.
	_, err = e.plan.ListStops(ctx, bob, "r1")
	assert.NoError(t, err)

	_, _, err = e.plan.AddStop(ctx, anon, "mock-1", stopReq("2024-06-16", "2024-06-18"))
	assert.ErrorIs(t, err, ErrLocalTrip)
	_, _, err = e.plan.ListExpenses(ctx, anon, "mock-1")
	assert.ErrorIs(t, err, ErrLocalTrip)
	assert.Equal(t, 0, len(e.remote.Stops))
}

func TestDeleteStopOfAnotherTrip(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	ctx := context.Background()
	e.remoteTrip("r1", alice, false)
	e.remoteTrip("r2", alice, false)
	e.remote.Stops["s2"] = models.Stop{ID: "s2", TripID: "r2", CityID: "city-kyoto"}

	assert.ErrorIs(t, e.plan.DeleteStop(ctx, alice, "r1", "s2"), store.ErrNotFound)
	assert.Contains(t, e.remote.Stops, "s2")
}

func addKyotoStop(t *testing.T, e *env) models.Stop {
	t.Helper()
	s, _, err := e.plan.AddStop(context.Background(), alice, "r1", stopReq("2025-06-02", "2025-06-04"))
	require.NoError(t, err)
	return s
}

func TestAddActivityFromTemplate(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	e.remoteTrip("r1", alice, false)
	stop := addKyotoStop(t, e)

	a, warnings, err := e.plan.AddActivity(context.Background(), alice, stop.ID, dto.CreateActivityRequest{
		TemplateID:   ptr("tpl-kyoto-inari"),
		ActivityDate: "2025-06-03",
		ActivityTime: ptr("7:30"),
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Fushimi Inari Hike", a.Name)
	assert.Equal(t, models.CategoryAdventure, a.Category)
	require.NotNil(t, a.Description)
	assert.Equal(t, "Torii gate trail to the summit.", *a.Description)
	assert.True(t, a.Cost.IsZero())
	assert.Equal(t, "2", a.DurationHours.String())
	require.NotNil(t, a.ActivityTemplateID)
	assert.Equal(t, "tpl-kyoto-inari", *a.ActivityTemplateID)
	require.NotNil(t, a.ActivityTime)
	assert.Equal(t, "07:30", *a.ActivityTime)
}

func TestAddActivityDefaultsAndOrder(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	ctx := context.Background()
	e.remoteTrip("r1", alice, false)
	stop := addKyotoStop(t, e)

	first, _, err := e.plan.AddActivity(ctx, alice, stop.ID, dto.CreateActivityRequest{Name: "Tea ceremony", ActivityDate: "2025-06-02"})
	require.NoError(t, err)
	assert.Equal(t, models.CategorySightseeing, first.Category)
	assert.True(t, first.Cost.IsZero())
	assert.Equal(t, "2", first.DurationHours.String())
	assert.Equal(t, 0, first.OrderIndex)

	cost := dto.LooseNumber("45.5")
	hours := dto.LooseNumber("1.5")
	second, warnings, err := e.plan.AddActivity(ctx, alice, stop.ID, dto.CreateActivityRequest{
		Name: "Kaiseki dinner", Category: models.CategoryFood, Cost: &cost, DurationHours: &hours, ActivityDate: "2025-06-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.OrderIndex)
	assert.Equal(t, "45.5", second.Cost.String())
	assert.Equal(t, "1.5", second.DurationHours.String())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "outside stop dates")

	activities, err := e.plan.ListActivities(ctx, alice, stop.ID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, first.ID, activities[0].ID)
}

func TestAddActivityValidation(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{Strict: true})
	ctx := context.Background()
	e.remoteTrip("r1", alice, false)
	stop := addKyotoStop(t, e)

	_, _, err := e.plan.AddActivity(ctx, alice, stop.ID, dto.CreateActivityRequest{ActivityDate: "2025-06-02"})
	assert.ErrorIs(t, err, itinerary.ErrValidation)

	zero := dto.LooseNumber("0")
	_, _, err = e.plan.AddActivity(ctx, alice, stop.ID, dto.CreateActivityRequest{Name: "Nap", DurationHours: &zero, ActivityDate: "2025-06-02"})
	assert.ErrorIs(t, err, itinerary.ErrValidation)

	_, _, err = e.plan.AddActivity(ctx, alice, stop.ID, dto.CreateActivityRequest{Name: "Late", ActivityDate: "2025-06-09"})
	assert.ErrorIs(t, err, itinerary.ErrValidation)

	_, _, err = e.plan.AddActivity(ctx, alice, stop.ID, dto.CreateActivityRequest{Name: "Clock", ActivityDate: "2025-06-02", ActivityTime: ptr("25:00")})
	assert.ErrorIs(t, err, itinerary.ErrValidation)

	_, _, err = e.plan.AddActivity(ctx, bob, stop.ID, dto.CreateActivityRequest{Name: "Intrusion", ActivityDate: "2025-06-02"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = e.plan.AddActivity(ctx, alice, "missing", dto.CreateActivityRequest{Name: "Ghost", ActivityDate: "2025-06-02"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, e.remote.Activities)
}

func TestExpenses(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	ctx := context.Background()
	e.remoteTrip("r1", alice, false)
	e.remoteTrip("r2", alice, false)
	stop := addKyotoStop(t, e)
	e.remote.Stops["other"] = models.Stop{ID: "other", TripID: "r2", CityID: "city-kyoto"}

	x1, err := e.plan.AddExpense(ctx, alice, "r1", dto.CreateExpenseRequest{
		Category: "Transport", Amount: "120", ExpenseDate: "2025-06-01", StopID: &stop.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "transport", x1.Category)

	_, err = e.plan.AddExpense(ctx, alice, "r1", dto.CreateExpenseRequest{Category: "food", Amount: "30.25", ExpenseDate: "2025-06-02"})
	require.NoError(t, err)

	_, err = e.plan.AddExpense(ctx, alice, "r1", dto.CreateExpenseRequest{Category: "souvenirs", Amount: "5", ExpenseDate: "2025-06-02"})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
	_, err = e.plan.AddExpense(ctx, alice, "r1", dto.CreateExpenseRequest{Category: "food", Amount: "-5", ExpenseDate: "2025-06-02"})
	assert.ErrorIs(t, err, itinerary.ErrValidation)
	_, err = e.plan.AddExpense(ctx, alice, "r1", dto.CreateExpenseRequest{Category: "food", Amount: "5", ExpenseDate: "2025-06-02", StopID: ptr("other")})
	assert.ErrorIs(t, err, itinerary.ErrValidation)

	expenses, total, err := e.plan.ListExpenses(ctx, alice, "r1")
	require.NoError(t, err)
	assert.Len(t, expenses, 2)
	assert.Equal(t, "150.25", total.String())

	require.NoError(t, e.plan.DeleteExpense(ctx, alice, "r1", x1.ID))
	require.NoError(t, e.plan.DeleteExpense(ctx, alice, "r1", x1.ID))
	_, total, err = e.plan.ListExpenses(ctx, alice, "r1")
	require.NoError(t, err)
	assert.Equal(t, "30.25", total.String())
}

func TestCatalog(t *testing.T) {
	e := newEnv(t, itinerary.DateRules{})
	ctx := context.Background()

	cities, err := e.plan.ListCities(ctx, store.CityQuery{})
	require.NoError(t, err)
	require.Len(t, cities, 1)

	templates, err := e.plan.ListActivityTemplates(ctx, "city-kyoto")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "tpl-kyoto-inari", templates[0].ID)

	_, err = e.plan.ListActivityTemplates(ctx, "city-atlantis")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
