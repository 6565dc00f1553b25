package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/syncpolicy"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// insertAttempts bounds retries when a concurrent append took the same order_index.
const insertAttempts = 3

// Defaults for activities created without these fields.
var (
	defaultActivityCost     = decimal.Zero
	defaultActivityDuration = decimal.NewFromInt(2)
)

// PlanService manages stops, activities and expenses of remote trips, plus the
// reference data used to plan them.
type PlanService struct {
	trips  *TripService
	remote store.Remote
	rules  itinerary.DateRules
	logger *utils.Logger
}

func NewPlanService(trips *TripService, remote store.Remote, rules itinerary.DateRules, logger *utils.Logger) *PlanService {
	return &PlanService{trips: trips, remote: remote, rules: rules, logger: logger}
}

func (s *PlanService) remoteTrip(ctx context.Context, who session.Identity, tripID string, write bool) (TripResult, error) {
	var (
		t   TripResult
		err error
	)
	if write {
		t, err = s.trips.loadForWrite(ctx, who, tripID)
	} else {
		t, err = s.trips.loadForRead(ctx, who, tripID)
	}
	if err != nil {
		return TripResult{}, err
	}
	if t.Origin == syncpolicy.Local {
		return TripResult{}, ErrLocalTrip
	}
	return t, nil
}

// stopOf loads a stop and the trip it belongs to.
func (s *PlanService) stopOf(ctx context.Context, who session.Identity, stopID string, write bool) (models.Stop, TripResult, error) {
	stop, err := s.remote.GetStop(ctx, stopID)
	if err != nil {
		return models.Stop{}, TripResult{}, err
	}
	t, err := s.remoteTrip(ctx, who, stop.TripID, write)
	if err != nil {
		return models.Stop{}, TripResult{}, err
	}
	return stop, t, nil
}

// ListStops returns the ordered stops of a trip with their activities.
func (s *PlanService) ListStops(ctx context.Context, who session.Identity, tripID string) ([]models.StopWithActivities, error) {
	if _, err := s.remoteTrip(ctx, who, tripID, false); err != nil {
		return nil, err
	}
	return loadStops(ctx, s.remote, tripID)
}

// AddStop appends a city visit after the trip's last stop. Dates outside the trip are
// warnings unless strict date rules are on.
func (s *PlanService) AddStop(ctx context.Context, who session.Identity, tripID string, req dto.CreateStopRequest) (models.Stop, []string, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return models.Stop{}, nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return models.Stop{}, nil, err
	}
	stop := models.Stop{
		ID:        syncpolicy.NewRemoteID(),
		TripID:    tripID,
		CityID:    strings.TrimSpace(req.CityID),
		StartDate: start,
		EndDate:   end,
		Notes:     optional(req.Notes),
		CreatedAt: s.trips.now(),
	}
	if err := itinerary.ValidateStop(stop); err != nil {
		return models.Stop{}, nil, err
	}

	t, err := s.remoteTrip(ctx, who, tripID, true)
	if err != nil {
		return models.Stop{}, nil, err
	}
	warnings, err := s.rules.CheckStop(t.Trip, stop)
	if err != nil {
		return models.Stop{}, nil, err
	}
	city, err := s.remote.GetCity(ctx, stop.CityID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Stop{}, nil, invalid("city_id", "unknown city")
	}
	if err != nil {
		return models.Stop{}, nil, fmt.Errorf("get city: %w", err)
	}

	for attempt := 1; ; attempt++ {
		existing, err := s.remote.ListStops(ctx, tripID)
		if err != nil {
			return models.Stop{}, nil, fmt.Errorf("list stops: %w", err)
		}
		stop.OrderIndex = itinerary.NextStopOrder(existing)

		created, err := s.remote.InsertStop(ctx, stop)
		if errors.Is(err, store.ErrConflict) && attempt < insertAttempts {
			s.logger.Warn("Stop order %d of trip %s taken, retrying", stop.OrderIndex, tripID)
			continue
		}
		if err != nil {
			return models.Stop{}, nil, fmt.Errorf("insert stop: %w", err)
		}
		created.City = &city
		return created, warnings, nil
	}
}

// DeleteStop removes a stop and its activities. Remaining stops keep their order_index.
func (s *PlanService) DeleteStop(ctx context.Context, who session.Identity, tripID, stopID string) error {
	if _, err := s.remoteTrip(ctx, who, tripID, true); err != nil {
		return err
	}
	stop, err := s.remote.GetStop(ctx, stopID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if stop.TripID != tripID {
		return store.ErrNotFound
	}
	return s.remote.DeleteStop(ctx, stopID)
}

// ListActivities returns the activities of a stop ordered by date and order_index.
func (s *PlanService) ListActivities(ctx context.Context, who session.Identity, stopID string) ([]models.Activity, error) {
	if _, _, err := s.stopOf(ctx, who, stopID, false); err != nil {
		return nil, err
	}
	activities, err := s.remote.ListActivities(ctx, stopID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	itinerary.SortActivities(activities)
	return activities, nil
}

// AddActivity schedules an activity at a stop. With a template id, fields missing from
// the request are taken from the template.
func (s *PlanService) AddActivity(ctx context.Context, who session.Identity, stopID string, req dto.CreateActivityRequest) (models.Activity, []string, error) {
	stop, _, err := s.stopOf(ctx, who, stopID, true)
	if err != nil {
		return models.Activity{}, nil, err
	}

	a := models.Activity{
		ID:            syncpolicy.NewRemoteID(),
		StopID:        stopID,
		Name:          strings.TrimSpace(req.Name),
		Description:   optional(req.Description),
		Category:      strings.TrimSpace(req.Category),
		Cost:          defaultActivityCost,
		DurationHours: defaultActivityDuration,
		CreatedAt:     s.trips.now(),
	}

	if req.TemplateID != nil && *req.TemplateID != "" {
		tpl, err := s.remote.GetActivityTemplate(ctx, *req.TemplateID)
		if errors.Is(err, store.ErrNotFound) {
			return models.Activity{}, nil, invalid("activity_template_id", "unknown activity template")
		}
		if err != nil {
			return models.Activity{}, nil, fmt.Errorf("get activity template: %w", err)
		}
		a.ActivityTemplateID = &tpl.ID
		if a.Name == "" {
			a.Name = tpl.Name
		}
		if a.Description == nil {
			a.Description = tpl.Description
		}
		if a.Category == "" {
			a.Category = tpl.Category
		}
		a.Cost = tpl.EstimatedCost
		if tpl.DurationHours.IsPositive() {
			a.DurationHours = tpl.DurationHours
		}
	}
	if a.Category == "" {
		a.Category = models.CategorySightseeing
	}
	if req.Cost != nil && *req.Cost != "" {
		if a.Cost, err = itinerary.ParseAmount("cost", string(*req.Cost)); err != nil {
			return models.Activity{}, nil, err
		}
	}
	if req.DurationHours != nil && *req.DurationHours != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(string(*req.DurationHours)))
		if err != nil {
			return models.Activity{}, nil, invalid("duration_hours", "duration must be a number")
		}
		a.DurationHours = d
	}
	if a.ActivityDate, err = parseDate("activity_date", req.ActivityDate); err != nil {
		return models.Activity{}, nil, err
	}
	if req.ActivityTime != nil && *req.ActivityTime != "" {
		clock, err := utils.ParseClock(*req.ActivityTime)
		if err != nil {
			return models.Activity{}, nil, invalid("activity_time", err.Error())
		}
		a.ActivityTime = &clock
	}
	if err := itinerary.ValidateActivity(a); err != nil {
		return models.Activity{}, nil, err
	}
	warnings, err := s.rules.CheckActivity(stop, a)
	if err != nil {
		return models.Activity{}, nil, err
	}

	existing, err := s.remote.ListActivities(ctx, stopID)
	if err != nil {
		return models.Activity{}, nil, fmt.Errorf("list activities: %w", err)
	}
	a.OrderIndex = itinerary.NextActivityOrder(existing)
	created, err := s.remote.InsertActivity(ctx, a)
	if err != nil {
		return models.Activity{}, nil, fmt.Errorf("insert activity: %w", err)
	}
	return created, warnings, nil
}

// ListExpenses returns a trip's expenses and their sum.
func (s *PlanService) ListExpenses(ctx context.Context, who session.Identity, tripID string) ([]models.Expense, decimal.Decimal, error) {
	if _, err := s.remoteTrip(ctx, who, tripID, false); err != nil {
		return nil, decimal.Zero, err
	}
	expenses, err := s.remote.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list expenses: %w", err)
	}
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return expenses, total, nil
}

// AddExpense records money spent on a trip, optionally at one of its stops.
func (s *PlanService) AddExpense(ctx context.Context, who session.Identity, tripID string, req dto.CreateExpenseRequest) (models.Expense, error) {
	amount, err := itinerary.ParseAmount("amount", string(req.Amount))
	if err != nil {
		return models.Expense{}, err
	}
	date, err := parseDate("expense_date", req.ExpenseDate)
	if err != nil {
		return models.Expense{}, err
	}
	e := models.Expense{
		ID:          syncpolicy.NewRemoteID(),
		TripID:      tripID,
		StopID:      optional(req.StopID),
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Amount:      amount,
		Description: optional(req.Description),
		ExpenseDate: date,
		CreatedAt:   s.trips.now(),
	}
	if err := itinerary.ValidateExpense(e); err != nil {
		return models.Expense{}, err
	}
	if _, err := s.remoteTrip(ctx, who, tripID, true); err != nil {
		return models.Expense{}, err
	}
	if e.StopID != nil {
		stop, err := s.remote.GetStop(ctx, *e.StopID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && stop.TripID != tripID) {
			return models.Expense{}, invalid("stop_id", "stop does not belong to this trip")
		}
		if err != nil {
			return models.Expense{}, fmt.Errorf("get stop: %w", err)
		}
	}
	created, err := s.remote.InsertExpense(ctx, e)
	if err != nil {
		return models.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return created, nil
}

// DeleteExpense removes an expense of the trip. A missing expense counts as deleted.
func (s *PlanService) DeleteExpense(ctx context.Context, who session.Identity, tripID, expenseID string) error {
	if _, err := s.remoteTrip(ctx, who, tripID, true); err != nil {
		return err
	}
	e, err := s.remote.GetExpense(ctx, expenseID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if e.TripID != tripID {
		return store.ErrNotFound
	}
	return s.remote.DeleteExpense(ctx, expenseID)
}

// ListCities returns the reference cities.
func (s *PlanService) ListCities(ctx context.Context, q store.CityQuery) ([]models.City, error) {
	if q.Limit < 0 {
		q.Limit = 0
	}
	return s.remote.ListCities(ctx, q)
}

// ListActivityTemplates returns the suggested activities of a city.
func (s *PlanService) ListActivityTemplates(ctx context.Context, cityID string) ([]models.ActivityTemplate, error) {
	if _, err := s.remote.GetCity(ctx, cityID); err != nil {
		return nil, err
	}
	return s.remote.ListActivityTemplates(ctx, cityID)
}
