package models

import "github.com/shopspring/decimal"

// Analytics is the aggregate view shown to administrators
type Analytics struct {
	TotalUsers        int               `json:"total_users"`
	TotalTrips        int               `json:"total_trips"`
	PublicTrips       int               `json:"public_trips"`
	TotalStops        int               `json:"total_stops"`
	TotalActivities   int               `json:"total_activities"`
	TotalBudget       decimal.Decimal   `json:"total_budget"`
	TotalExpenses     decimal.Decimal   `json:"total_expenses"`
	PopularCities     []CityStat        `json:"popular_cities"`
	PopularActivities []CategoryStat    `json:"popular_activity_categories"`
	TopUsers          []UserTripSummary `json:"top_users"`
}

// CityStat counts stops planned in a city.
type CityStat struct {
	CityID     string  `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Country    string  `json:"country" db:"country"`
	Visits     int     `json:"visits" db:"visits"`
	Percentage float64 `json:"percentage" db:"-"`
}

// CategoryStat counts activities per category.
type CategoryStat struct {
	Category     string  `json:"category" db:"category"`
	Participants int     `json:"participants" db:"participants"`
	Percentage   float64 `json:"percentage" db:"-"`
}

// UserTripSummary aggregates one user's trips.
type UserTripSummary struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Email       string          `json:"email" db:"email"`
	TripsCount  int             `json:"trips_count" db:"trips_count"`
	TotalBudget decimal.Decimal `json:"total_budget" db:"total_budget"`
}
