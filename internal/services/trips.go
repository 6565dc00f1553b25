package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
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

// TripResult is a trip together with the store that holds it.
type TripResult struct {
	Trip   models.Trip
	Origin syncpolicy.Origin
}

// Permissions tells what the caller may do with a trip.
type Permissions struct {
	CanEdit   bool
	CanDelete bool
}

// BudgetView is the budget tab of a trip.
type BudgetView struct {
	itinerary.Budget
	TripID string
	ByStop []StopCost
}

// StopCost is the planned activity cost at one stop.
type StopCost struct {
	StopID   string
	CityName string
	Cost     decimal.Decimal
}

// PublicTripsQuery filters the explore listing.
type PublicTripsQuery struct {
	Search  string
	City    string
	Country string
}

// PublicTrips is the explore listing with the values available to the filter menus.
type PublicTrips struct {
	Trips     []TripResult
	Cities    []string
	Countries []string
}

// PublicTripDetail is the shared trip page.
type PublicTripDetail struct {
	TripResult
	Author *models.Profile
	Stops  []models.StopWithActivities
}

type TripService struct {
	trips  *syncpolicy.Trips
	remote store.Remote
	logger *utils.Logger
	now    Clock
}

func NewTripService(trips *syncpolicy.Trips, remote store.Remote, logger *utils.Logger) *TripService {
	return &TripService{trips: trips, remote: remote, logger: logger, now: utcNow}
}

// canView: owners, administrators, anyone for public trips, and every profile-less
// session for local trips, since those sessions share the local namespace.
func canView(who session.Identity, t TripResult) bool {
	return t.Trip.IsPublic || who.Admin || canEdit(who, t)
}

// canEdit has no administrator bypass.
func canEdit(who session.Identity, t TripResult) bool {
	if t.Trip.OwnerID == who.ID {
		return true
	}
	return t.Origin == syncpolicy.Local && who.PrefersLocal()
}

func (s *TripService) load(ctx context.Context, id string) (TripResult, error) {
	t, origin, err := s.trips.Get(ctx, id, true)
	if err != nil {
		return TripResult{}, err
	}
	return TripResult{Trip: t, Origin: origin}, nil
}

func (s *TripService) loadForRead(ctx context.Context, who session.Identity, id string) (TripResult, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return TripResult{}, err
	}
	if !canView(who, t) {
		return TripResult{}, ErrForbidden
	}
	return t, nil
}

func (s *TripService) loadForWrite(ctx context.Context, who session.Identity, id string) (TripResult, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return TripResult{}, err
	}
	if !canEdit(who, t) {
		return TripResult{}, ErrForbidden
	}
	return t, nil
}

func originFor(who session.Identity) syncpolicy.Origin {
	if who.PrefersLocal() {
		return syncpolicy.Local
	}
	return syncpolicy.Remote
}

// CreateTrip validates the form and stores the trip where the caller's trips live.
func (s *TripService) CreateTrip(ctx context.Context, who session.Identity, req dto.CreateTripRequest) (TripResult, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return TripResult{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return TripResult{}, err
	}
	budget, err := itinerary.ParseBudget(string(req.TotalBudget))
	if err != nil {
		return TripResult{}, err
	}

	now := s.now()
	origin := originFor(who)
	t := models.Trip{
		ID:            syncpolicy.NewID(origin, now),
		OwnerID:       who.ID,
		Name:          strings.TrimSpace(req.Name),
		Description:   optional(req.Description),
		StartDate:     start,
		EndDate:       end,
		CoverPhotoURL: optional(req.CoverPhotoURL),
		IsPublic:      req.IsPublic,
		TotalBudget:   budget,
		City:          optional(req.City),
		Country:       optional(req.Country),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := itinerary.ValidateTrip(t); err != nil {
		return TripResult{}, err
	}

	created, err := s.trips.Create(ctx, t)
	if err != nil {
		return TripResult{}, err
	}
	s.logger.Info("Trip %s created by %s (%s)", created.ID, who.ID, origin)
	return TripResult{Trip: created, Origin: origin}, nil
}

// ListMyTrips lists the caller's trips, newest start date first.
func (s *TripService) ListMyTrips(ctx context.Context, who session.Identity) []TripResult {
	filter := store.TripFilter{OwnerID: who.ID}
	var trips []models.Trip
	if who.PrefersLocal() {
		trips = s.trips.ListShared(ctx, filter)
	} else {
		trips = s.trips.List(ctx, filter)
	}
	return results(trips)
}

func results(trips []models.Trip) []TripResult {
	out := make([]TripResult, 0, len(trips))
	for _, t := range trips {
		out = append(out, TripResult{Trip: t, Origin: syncpolicy.RefOf(t.ID).Origin})
	}
	return out
}

// GetTrip returns a trip the caller may see, with the caller's permissions on it.
func (s *TripService) GetTrip(ctx context.Context, who session.Identity, id string) (TripResult, Permissions, error) {
	t, err := s.loadForRead(ctx, who, id)
	if err != nil {
		return TripResult{}, Permissions{}, err
	}
	edit := canEdit(who, t)
	return t, Permissions{CanEdit: edit, CanDelete: edit}, nil
}

// UpdateTrip applies a partial update. Stops falling outside a changed date range are
// reported as warnings.
func (s *TripService) UpdateTrip(ctx context.Context, who session.Identity, id string, req dto.UpdateTripRequest) (TripResult, []string, error) {
	cur, err := s.loadForWrite(ctx, who, id)
	if err != nil {
		return TripResult{}, nil, err
	}
	t := cur.Trip

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = optional(req.Description)
	}
	if req.StartDate != nil {
		if t.StartDate, err = parseDate("start_date", *req.StartDate); err != nil {
			return TripResult{}, nil, err
		}
	}
	if req.EndDate != nil {
		if t.EndDate, err = parseDate("end_date", *req.EndDate); err != nil {
			return TripResult{}, nil, err
		}
	}
	if req.CoverPhotoURL != nil {
		t.CoverPhotoURL = optional(req.CoverPhotoURL)
	}
	if req.IsPublic != nil {
		t.IsPublic = *req.IsPublic
	}
	if req.TotalBudget != nil {
		if t.TotalBudget, err = itinerary.ParseBudget(string(*req.TotalBudget)); err != nil {
			return TripResult{}, nil, err
		}
	}
	if req.City != nil {
		t.City = optional(req.City)
	}
	if req.Country != nil {
		t.Country = optional(req.Country)
	}
	if err := itinerary.ValidateTrip(t); err != nil {
		return TripResult{}, nil, err
	}
	t.UpdatedAt = s.now()

	saved, err := s.trips.Save(ctx, t)
	if err != nil {
		return TripResult{}, nil, err
	}

	var warnings []string
	if cur.Origin == syncpolicy.Remote && (!t.StartDate.Equal(cur.Trip.StartDate) || !t.EndDate.Equal(cur.Trip.EndDate)) {
		stops, err := s.remote.ListStops(ctx, id)
		if err != nil {
			s.logger.Warn("Could not re-check stops of trip %s: %v", id, err)
		}
		advisory := itinerary.DateRules{}
		for _, st := range stops {
			w, _ := advisory.CheckStop(saved, st)
			warnings = append(warnings, w...)
		}
	}
	return TripResult{Trip: saved, Origin: cur.Origin}, warnings, nil
}

// ToggleVisibility flips is_public on the caller's trip.
func (s *TripService) ToggleVisibility(ctx context.Context, who session.Identity, id string) (TripResult, error) {
	cur, err := s.loadForWrite(ctx, who, id)
	if err != nil {
		return TripResult{}, err
	}
	t := itinerary.ToggleVisibility(cur.Trip)
	t.UpdatedAt = s.now()
	saved, err := s.trips.Save(ctx, t)
	if err != nil {
		return TripResult{}, err
	}
	return TripResult{Trip: saved, Origin: cur.Origin}, nil
}

// DeleteTrip removes the caller's trip with everything it owns. A trip that is already
// gone counts as deleted.
func (s *TripService) DeleteTrip(ctx context.Context, who session.Identity, id string) error {
	_, err := s.loadForWrite(ctx, who, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Trip %s deleted by %s", id, who.ID)
	return nil
}

// DuplicatePublicTrip copies a public trip into the caller's trips over new dates.
func (s *TripService) DuplicatePublicTrip(ctx context.Context, who session.Identity, id string, req dto.DuplicateTripRequest) (TripResult, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return TripResult{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return TripResult{}, err
	}
	if err := itinerary.ValidateRange("start_date", start, end); err != nil {
		return TripResult{}, err
	}

	src, err := s.load(ctx, id)
	if err != nil {
		return TripResult{}, err
	}
	if !src.Trip.IsPublic {
		return TripResult{}, ErrForbidden
	}

	now := s.now()
	origin := originFor(who)
	dup, err := itinerary.Duplicate(src.Trip, who.ID, syncpolicy.NewID(origin, now), start, end, now)
	if err != nil {
		return TripResult{}, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		dup.Name = strings.TrimSpace(*req.Name)
	}
	created, err := s.trips.Create(ctx, dup)
	if err != nil {
		return TripResult{}, err
	}
	s.logger.Info("Trip %s duplicated from %s by %s", created.ID, id, who.ID)
	return TripResult{Trip: created, Origin: origin}, nil
}

// ListPublicTrips lists public trips from both stores, newest first.
func (s *TripService) ListPublicTrips(ctx context.Context, q PublicTripsQuery) PublicTrips {
	all := s.trips.List(ctx, store.TripFilter{PublicOnly: true})

	var out PublicTrips
	cities := map[string]struct{}{}
	countries := map[string]struct{}{}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range all {
		if t.City != nil && *t.City != "" {
			cities[*t.City] = struct{}{}
		}
		if t.Country != nil && *t.Country != "" {
			countries[*t.Country] = struct{}{}
		}
		if !matchesSearch(t, search) || !equalFold(t.City, q.City) || !equalFold(t.Country, q.Country) {
			continue
		}
		out.Trips = append(out.Trips, TripResult{Trip: t, Origin: syncpolicy.RefOf(t.ID).Origin})
	}
	out.Cities = sortedKeys(cities)
	out.Countries = sortedKeys(countries)
	return out
}

func matchesSearch(t models.Trip, search string) bool {
	if search == "" {
		return true
	}
	fields := []string{t.Name}
	for _, p := range []*string{t.Description, t.City, t.Country} {
		if p != nil {
			fields = append(fields, *p)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func equalFold(field *string, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return field != nil && strings.EqualFold(*field, want)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// GetPublicTrip returns a public trip with its author and stops.
func (s *TripService) GetPublicTrip(ctx context.Context, id string) (PublicTripDetail, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return PublicTripDetail{}, err
	}
	if !t.Trip.IsPublic {
		return PublicTripDetail{}, store.ErrNotFound
	}

	detail := PublicTripDetail{TripResult: t}
	if t.Origin == syncpolicy.Remote {
		if p, err := s.remote.GetProfile(ctx, t.Trip.OwnerID); err == nil {
			detail.Author = &p
		} else if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("Could not load author of trip %s: %v", id, err)
		}
		if detail.Stops, err = s.stopsWithActivities(ctx, id); err != nil {
			return PublicTripDetail{}, err
		}
	}
	return detail, nil
}

// Itinerary returns the ordered stops and activities of a trip. Local trips have none.
func (s *TripService) Itinerary(ctx context.Context, who session.Identity, id string) (TripResult, []models.StopWithActivities, error) {
	t, err := s.loadForRead(ctx, who, id)
	if err != nil {
		return TripResult{}, nil, err
	}
	if t.Origin == syncpolicy.Local {
		return t, []models.StopWithActivities{}, nil
	}
	stops, err := s.stopsWithActivities(ctx, id)
	if err != nil {
		return TripResult{}, nil, err
	}
	return t, stops, nil
}

// BudgetSummary totals activity costs and expenses against the trip budget.
func (s *TripService) BudgetSummary(ctx context.Context, who session.Identity, id string) (BudgetView, error) {
	t, err := s.loadForRead(ctx, who, id)
	if err != nil {
		return BudgetView{}, err
	}
	view := BudgetView{TripID: id, ByStop: []StopCost{}}
	if t.Origin == syncpolicy.Local {
		view.Budget = itinerary.Summarize(t.Trip, nil, nil)
		return view, nil
	}

	stops, err := s.stopsWithActivities(ctx, id)
	if err != nil {
		return BudgetView{}, err
	}
	expenses, err := s.remote.ListExpenses(ctx, id)
	if err != nil {
		return BudgetView{}, fmt.Errorf("list expenses: %w", err)
	}
	var activities []models.Activity
	for _, st := range stops {
		activities = append(activities, st.Activities...)
		name := st.CityID
		if st.City != nil {
			name = st.City.Name
		}
		view.ByStop = append(view.ByStop, StopCost{
			StopID:   st.ID,
			CityName: name,
			Cost:     itinerary.StopCost(st.Activities),
		})
	}
	view.Budget = itinerary.Summarize(t.Trip, activities, expenses)
	return view, nil
}

func (s *TripService) stopsWithActivities(ctx context.Context, tripID string) ([]models.StopWithActivities, error) {
	return loadStops(ctx, s.remote, tripID)
}

// loadStops groups the activities of a remote trip under its ordered stops.
func loadStops(ctx context.Context, remote store.Remote, tripID string) ([]models.StopWithActivities, error) {
	stops, err := remote.ListStops(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}
	activities, err := remote.ListTripActivities(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	itinerary.SortStops(stops)

	byStop := make(map[string][]models.Activity, len(stops))
	for _, a := range activities {
		byStop[a.StopID] = append(byStop[a.StopID], a)
	}
	out := make([]models.StopWithActivities, 0, len(stops))
	for _, st := range stops {
		acts := byStop[st.ID]
		if acts == nil {
			acts = []models.Activity{}
		}
		itinerary.SortActivities(acts)
		out = append(out, models.StopWithActivities{Stop: st, Activities: acts})
	}
	return out, nil
}
