package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity categories offered by the planner. Templates may carry free text.
const (
	CategorySightseeing = "sightseeing"
	CategoryFood        = "food"
	CategoryAdventure   = "adventure"
	CategoryCulture     = "culture"
	CategoryShopping    = "shopping"
	CategoryNightlife   = "nightlife"
)

// ActivityCategories is the fixed category list.
var ActivityCategories = []string{
	CategorySightseeing, CategoryFood, CategoryAdventure, CategoryCulture, CategoryShopping, CategoryNightlife,
}

// ExpenseCategories is the fixed expense category list.
var ExpenseCategories = []string{"transport", "accommodation", "food", "activities", "other"}

// City is read-mostly reference data
type City struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Country         string          `json:"country" db:"country"`
	Region          *string         `json:"region" db:"region"`
	CostIndex       decimal.Decimal `json:"cost_index" db:"cost_index"`
	PopularityScore int             `json:"popularity_score" db:"popularity_score"`
	Description     *string         `json:"description" db:"description"`
	ImageURL        *string         `json:"image_url" db:"image_url"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

func (City) Columns() []string {
	return []string{"id", "name", "country", "region", "cost_index", "popularity_score", "description", "image_url", "created_at"}
}

// ActivityTemplate is a suggested activity for a city
type ActivityTemplate struct {
	ID            string          `json:"id" db:"id"`
	CityID        string          `json:"city_id" db:"city_id"`
	Name          string          `json:"name" db:"name"`
	Description   *string         `json:"description" db:"description"`
	Category      string          `json:"category" db:"category"`
	EstimatedCost decimal.Decimal `json:"estimated_cost" db:"estimated_cost"`
	DurationHours decimal.Decimal `json:"duration_hours" db:"duration_hours"`
	ImageURL      *string         `json:"image_url" db:"image_url"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

func (ActivityTemplate) Columns() []string {
	return []string{"id", "city_id", "name", "description", "category", "estimated_cost", "duration_hours", "image_url", "created_at"}
}

// Stop is a city visit within a trip
type Stop struct {
	ID         string    `json:"id" db:"id"`
	TripID     string    `json:"trip_id" db:"trip_id"`
	CityID     string    `json:"city_id" db:"city_id"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	Notes      *string   `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	City       *City     `json:"city,omitempty" db:"-"`
}

func (Stop) Columns() []string {
	return []string{"id", "trip_id", "city_id", "order_index", "start_date", "end_date", "notes", "created_at"}
}

func (s Stop) Values() map[string]any {
	return map[string]any{
		"id":          s.ID,
		"trip_id":     s.TripID,
		"city_id":     s.CityID,
		"order_index": s.OrderIndex,
		"start_date":  s.StartDate,
		"end_date":    s.EndDate,
		"notes":       s.Notes,
		"created_at":  s.CreatedAt,
	}
}

// Activity is a scheduled, costed event within a stop
type Activity struct {
	ID                 string          `json:"id" db:"id"`
	StopID             string          `json:"stop_id" db:"stop_id"`
	ActivityTemplateID *string         `json:"activity_template_id" db:"activity_template_id"`
	Name               string          `json:"name" db:"name"`
	Description        *string         `json:"description" db:"description"`
	Category           string          `json:"category" db:"category"`
	Cost               decimal.Decimal `json:"cost" db:"cost"`
	DurationHours      decimal.Decimal `json:"duration_hours" db:"duration_hours"`
	ActivityDate       time.Time       `json:"activity_date" db:"activity_date"`
	ActivityTime       *string         `json:"activity_time" db:"activity_time"`
	OrderIndex         int             `json:"order_index" db:"order_index"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

func (Activity) Columns() []string {
	return []string{"id", "stop_id", "activity_template_id", "name", "description", "category", "cost",
		"duration_hours", "activity_date", "activity_time", "order_index", "created_at"}
}

func (a Activity) Values() map[string]any {
	return map[string]any{
		"id":                   a.ID,
		"stop_id":              a.StopID,
		"activity_template_id": a.ActivityTemplateID,
		"name":                 a.Name,
		"description":          a.Description,
		"category":             a.Category,
		"cost":                 a.Cost,
		"duration_hours":       a.DurationHours,
		"activity_date":        a.ActivityDate,
		"activity_time":        a.ActivityTime,
		"order_index":          a.OrderIndex,
		"created_at":           a.CreatedAt,
	}
}

// Expense is money spent on a trip, independent of activity costs
type Expense struct {
	ID          string          `json:"id" db:"id"`
	TripID      string          `json:"trip_id" db:"trip_id"`
	StopID      *string         `json:"stop_id" db:"stop_id"`
	Category    string          `json:"category" db:"category"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description *string         `json:"description" db:"description"`
	ExpenseDate time.Time       `json:"expense_date" db:"expense_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

func (Expense) Columns() []string {
	return []string{"id", "trip_id", "stop_id", "category", "amount", "description", "expense_date", "created_at"}
}

func (e Expense) Values() map[string]any {
	return map[string]any{
		"id":           e.ID,
		"trip_id":      e.TripID,
		"stop_id":      e.StopID,
		"category":     e.Category,
		"amount":       e.Amount,
		"description":  e.Description,
		"expense_date": e.ExpenseDate,
		"created_at":   e.CreatedAt,
	}
}

// StopWithActivities is a stop together with its activities, as shown on itinerary pages.
type StopWithActivities struct {
	Stop
	Activities []Activity `json:"activities"`
}
