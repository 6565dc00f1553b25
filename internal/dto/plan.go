package dto

import (
	"GLOBETROTTER_BACK-END/internal/models"

	"github.com/shopspring/decimal"
)

// CreateStopRequest appends a city visit to a trip
type CreateStopRequest struct {
	CityID    string  `json:"city_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Notes     *string `json:"notes"`
}

// StopResponse represents a stop, optionally with its activities
type StopResponse struct {
	ID         string             `json:"id"`
	TripID     string             `json:"trip_id"`
	CityID     string             `json:"city_id"`
	City       *models.City       `json:"city,omitempty"`
	OrderIndex int                `json:"order_index"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	Notes      *string            `json:"notes"`
	CreatedAt  string             `json:"created_at"`
	Activities []ActivityResponse `json:"activities,omitempty"`
}

// StopWriteResponse wraps a created stop with advisory warnings
type StopWriteResponse struct {
	Stop     StopResponse `json:"stop"`
	Warnings []string     `json:"warnings,omitempty"`
}

// StopListResponse envelope
type StopListResponse struct {
	Stops []StopResponse `json:"stops"`
}

// CreateActivityRequest adds an activity to a stop. When TemplateID is set, missing
// fields are copied from the template.
type CreateActivityRequest struct {
	TemplateID    *string      `json:"activity_template_id"`
	Name          string       `json:"name"`
	Description   *string      `json:"description"`
	Category      string       `json:"category"`
	Cost          *LooseNumber `json:"cost"`
	DurationHours *LooseNumber `json:"duration_hours"`
	ActivityDate  string       `json:"activity_date"`
	ActivityTime  *string      `json:"activity_time"` // HH:MM
}

// ActivityResponse represents an activity
type ActivityResponse struct {
	ID                 string          `json:"id"`
	StopID             string          `json:"stop_id"`
	ActivityTemplateID *string         `json:"activity_template_id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	Category           string          `json:"category"`
	Cost               decimal.Decimal `json:"cost"`
	DurationHours      decimal.Decimal `json:"duration_hours"`
	ActivityDate       string          `json:"activity_date"`
	ActivityTime       *string         `json:"activity_time"`
	OrderIndex         int             `json:"order_index"`
	CreatedAt          string          `json:"created_at"`
}

// ActivityWriteResponse wraps a created activity with advisory warnings
type ActivityWriteResponse struct {
	Activity ActivityResponse `json:"activity"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ActivityListResponse envelope
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// CreateExpenseRequest records money spent on a trip
type CreateExpenseRequest struct {
	StopID      *string     `json:"stop_id"`
	Category    string      `json:"category"`
	Amount      LooseNumber `json:"amount"`
	Description *string     `json:"description"`
	ExpenseDate string      `json:"expense_date"`
}

// ExpenseResponse represents an expense
type ExpenseResponse struct {
	ID          string          `json:"id"`
	TripID      string          `json:"trip_id"`
	StopID      *string         `json:"stop_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	ExpenseDate string          `json:"expense_date"`
	CreatedAt   string          `json:"created_at"`
}

// ExpenseListResponse envelope
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    decimal.Decimal   `json:"total"`
}

// CityListResponse envelope
type CityListResponse struct {
	Cities []models.City `json:"cities"`
}

// ActivityTemplateListResponse envelope
type ActivityTemplateListResponse struct {
	Templates []models.ActivityTemplate `json:"activity_templates"`
}
