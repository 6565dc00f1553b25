package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/utils"
)

const (
	dashboardTrips  = 4
	dashboardCities = 8
)

// Dashboard is the home page of a session.
type Dashboard struct {
	RecentTrips   []TripResult
	PopularCities []models.City
	// NextTrip is the caller's soonest trip starting after today, if any.
	NextTrip *TripResult
	// RecentBudget sums the budgets of RecentTrips.
	RecentBudget decimal.Decimal
}

type DashboardService struct {
	trips   *TripService
	catalog store.Catalog
	logger  *utils.Logger
}

func NewDashboardService(trips *TripService, catalog store.Catalog, logger *utils.Logger) *DashboardService {
	return &DashboardService{trips: trips, catalog: catalog, logger: logger}
}

// Dashboard collects the caller's latest trips, the next upcoming one and the most
// popular cities. Without the remote store the city list is empty.
func (s *DashboardService) Dashboard(ctx context.Context, who session.Identity) Dashboard {
	mine := s.trips.ListMyTrips(ctx, who)
	today := s.trips.now().UTC().Truncate(24 * time.Hour)

	d := Dashboard{RecentTrips: mine[:min(len(mine), dashboardTrips)], RecentBudget: decimal.Zero}
	for _, t := range d.RecentTrips {
		d.RecentBudget = d.RecentBudget.Add(t.Trip.TotalBudget)
	}
	for i := range mine {
		t := mine[i]
		if !t.Trip.StartDate.After(today) {
			continue
		}
		if d.NextTrip == nil || t.Trip.StartDate.Before(d.NextTrip.Trip.StartDate) {
			d.NextTrip = &t
		}
	}

	cities, err := s.catalog.ListCities(ctx, store.CityQuery{Popular: true, Limit: dashboardCities})
	if err != nil {
		s.logger.Warn("Popular cities unavailable: %v", err)
	}
	if cities == nil {
		cities = []models.City{}
	}
	d.PopularCities = cities
	return d
}
