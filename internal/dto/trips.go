package dto

import (
	"github.com/shopspring/decimal"

	"GLOBETROTTER_BACK-END/internal/models"
)

// CreateTripRequest represents the payload to create a trip
type CreateTripRequest struct {
	Name          string      `json:"name"`
	Description   *string     `json:"description"`
	StartDate     string      `json:"start_date"` // YYYY-MM-DD or RFC3339
	EndDate       string      `json:"end_date"`   // YYYY-MM-DD or RFC3339
	CoverPhotoURL *string     `json:"cover_photo_url"`
	IsPublic      bool        `json:"is_public"`
	TotalBudget   LooseNumber `json:"total_budget"` // empty or unparseable => 0
	City          *string     `json:"city"`
	Country       *string     `json:"country"`
}

// UpdateTripRequest represents fields allowed to update a trip
// All fields are optional; only provided ones will be updated
type UpdateTripRequest struct {
	Name          *string      `json:"name"`
	Description   *string      `json:"description"`
	StartDate     *string      `json:"start_date"`
	EndDate       *string      `json:"end_date"`
	CoverPhotoURL *string      `json:"cover_photo_url"` // "" => NULL
	IsPublic      *bool        `json:"is_public"`
	TotalBudget   *LooseNumber `json:"total_budget"`
	City          *string      `json:"city"`
	Country       *string      `json:"country"`
}

// DuplicateTripRequest carries the new dates for a copied public trip
type DuplicateTripRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Name      *string `json:"name,omitempty"`
}

// TripResponse represents a trip object in responses
type TripResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	CoverPhotoURL *string         `json:"cover_photo_url"`
	IsPublic      bool            `json:"is_public"`
	TotalBudget   decimal.Decimal `json:"total_budget"`
	City          *string         `json:"city"`
	Country       *string         `json:"country"`
	Origin        string          `json:"origin"` // remote | local
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// TripWriteResponse wraps a written trip with advisory warnings
type TripWriteResponse struct {
	Trip     TripResponse `json:"trip"`
	Warnings []string     `json:"warnings,omitempty"`
}

// TripListResponse envelope
type TripListResponse struct {
	Trips []TripResponse `json:"trips"`
	Total int            `json:"total"`
}

// TripPermissions tells the caller what it may do with a trip
type TripPermissions struct {
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// TripDetailResponse envelope
type TripDetailResponse struct {
	Trip        TripResponse    `json:"trip"`
	Permissions TripPermissions `json:"permissions"`
}

// AuthorResponse is the public face of a trip owner
type AuthorResponse struct {
	ID        string  `json:"id"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// PublicTripListResponse lists public trips with filter menus
type PublicTripListResponse struct {
	Trips     []TripResponse `json:"trips"`
	Total     int            `json:"total"`
	Cities    []string       `json:"cities"`
	Countries []string       `json:"countries"`
}

// PublicTripDetailResponse is the shared trip page
type PublicTripDetailResponse struct {
	Trip   TripResponse    `json:"trip"`
	Author *AuthorResponse `json:"author"`
	Stops  []StopResponse  `json:"stops"`
}

// BudgetResponse summarises the money side of a trip
type BudgetResponse struct {
	TripID         string                     `json:"trip_id"`
	TotalBudget    decimal.Decimal            `json:"total_budget"`
	ActivitiesCost decimal.Decimal            `json:"activities_cost"`
	ExpensesCost   decimal.Decimal            `json:"expenses_cost"`
	TotalSpent     decimal.Decimal            `json:"total_spent"`
	Remaining      decimal.Decimal            `json:"remaining"`
	OverBudget     bool                       `json:"over_budget"`
	ByStop         []StopCostResponse         `json:"by_stop"`
	ByCategory     map[string]decimal.Decimal `json:"expenses_by_category"`
}

// StopCostResponse is the activity cost planned at one stop
type StopCostResponse struct {
	StopID   string          `json:"stop_id"`
	CityName string          `json:"city_name"`
	Cost     decimal.Decimal `json:"cost"`
}

// ItineraryResponse is the ordered stop/activity view of a trip
type ItineraryResponse struct {
	Trip  TripResponse   `json:"trip"`
	Stops []StopResponse `json:"stops"`
}

// DashboardResponse is the home page of a session
type DashboardResponse struct {
	RecentTrips   []TripResponse  `json:"recent_trips"`
	NextTrip      *TripResponse   `json:"next_trip"`
	PopularCities []models.City   `json:"popular_cities"`
	RecentBudget  decimal.Decimal `json:"recent_budget"`
}
