package services

import (
	"context"
	"fmt"
	"math"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
)

const analyticsTopN = 5

type AdminService struct {
	analytics store.Analytics
}

func NewAdminService(analytics store.Analytics) *AdminService {
	return &AdminService{analytics: analytics}
}

// Analytics returns platform totals and the most popular cities and categories.
func (s *AdminService) Analytics(ctx context.Context, who session.Identity) (models.Analytics, error) {
	if !who.Admin {
		return models.Analytics{}, ErrForbidden
	}
	a, err := s.analytics.Analytics(ctx, analyticsTopN)
	if err != nil {
		return models.Analytics{}, fmt.Errorf("analytics: %w", err)
	}

	visits := 0
	for _, c := range a.PopularCities {
		visits += c.Visits
	}
	for i := range a.PopularCities {
		a.PopularCities[i].Percentage = percent(a.PopularCities[i].Visits, visits)
	}
	participants := 0
	for _, c := range a.PopularActivities {
		participants += c.Participants
	}
	for i := range a.PopularActivities {
		a.PopularActivities[i].Percentage = percent(a.PopularActivities[i].Participants, participants)
	}

	if a.PopularCities == nil {
		a.PopularCities = []models.CityStat{}
	}
	if a.PopularActivities == nil {
		a.PopularActivities = []models.CategoryStat{}
	}
	if a.TopUsers == nil {
		a.TopUsers = []models.UserTripSummary{}
	}
	return a, nil
}

// percent rounds n/total to one decimal place.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*1000/float64(total)) / 10
}
