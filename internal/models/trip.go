package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Budgets travel as plain JSON numbers, matching the documents kept by the local store.
	decimal.MarshalJSONWithoutQuotes = true
}

// Trip represents a travel trip created by a user
type Trip struct {
	ID            string          `json:"id" db:"id"`
	OwnerID       string          `json:"user_id" db:"user_id"`
	Name          string          `json:"name" db:"name"`
	Description   *string         `json:"description" db:"description"`
	StartDate     time.Time       `json:"start_date" db:"start_date"`
	EndDate       time.Time       `json:"end_date" db:"end_date"`
	CoverPhotoURL *string         `json:"cover_photo_url" db:"cover_photo_url"`
	IsPublic      bool            `json:"is_public" db:"is_public"`
	TotalBudget   decimal.Decimal `json:"total_budget" db:"total_budget"`
	City          *string         `json:"city" db:"city"`
	Country       *string         `json:"country" db:"country"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// Columns lists the trips table columns in scan order.
func (Trip) Columns() []string {
	return []string{"id", "user_id", "name", "description", "start_date", "end_date",
		"cover_photo_url", "is_public", "total_budget", "city", "country", "created_at", "updated_at"}
}

// Values maps the trip onto its table columns.
func (t Trip) Values() map[string]any {
	return map[string]any{
		"id":              t.ID,
		"user_id":         t.OwnerID,
		"name":            t.Name,
		"description":     t.Description,
		"start_date":      t.StartDate,
		"end_date":        t.EndDate,
		"cover_photo_url": t.CoverPhotoURL,
		"is_public":       t.IsPublic,
		"total_budget":    t.TotalBudget,
		"city":            t.City,
		"country":         t.Country,
		"created_at":      t.CreatedAt,
		"updated_at":      t.UpdatedAt,
	}
}
