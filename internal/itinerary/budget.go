package itinerary

import (
	"GLOBETROTTER_BACK-END/internal/models"

	"github.com/shopspring/decimal"
)

// Budget is the derived money view of a trip. Remaining goes negative when the trip
// is over budget.
type Budget struct {
	TotalBudget    decimal.Decimal
	ActivitiesCost decimal.Decimal
	ExpensesCost   decimal.Decimal
	TotalSpent     decimal.Decimal
	Remaining      decimal.Decimal
	OverBudget     bool
	ByCategory     map[string]decimal.Decimal
}

// Summarize adds up activity costs and expenses against the trip's budget.
func Summarize(trip models.Trip, activities []models.Activity, expenses []models.Expense) Budget {
	b := Budget{
		TotalBudget:    trip.TotalBudget,
		ActivitiesCost: decimal.Zero,
		ExpensesCost:   decimal.Zero,
		ByCategory:     map[string]decimal.Decimal{},
	}
	for _, a := range activities {
		b.ActivitiesCost = b.ActivitiesCost.Add(a.Cost)
	}
	for _, e := range expenses {
		b.ExpensesCost = b.ExpensesCost.Add(e.Amount)
		b.ByCategory[e.Category] = b.ByCategory[e.Category].Add(e.Amount)
	}
	b.TotalSpent = b.ActivitiesCost.Add(b.ExpensesCost)
	b.Remaining = b.TotalBudget.Sub(b.TotalSpent)
	b.OverBudget = b.Remaining.IsNegative()
	return b
}

// StopCost sums the activity cost of one stop.
func StopCost(activities []models.Activity) decimal.Decimal {
	total := decimal.Zero
	for _, a := range activities {
		total = total.Add(a.Cost)
	}
	return total
}
