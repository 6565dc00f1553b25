package localstore

import (
	"time"

	"github.com/shopspring/decimal"

	"GLOBETROTTER_BACK-END/internal/models"
)

// SeedOwnerID owns the sample trips.
const SeedOwnerID = "temp-user"

func str(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedTrips returns the sample trips written on first run, stamped with now.
func SeedTrips(now time.Time) []models.Trip {
	return []models.Trip{
		{
			ID:            "mock-1",
			OwnerID:       SeedOwnerID,
			Name:          "Summer Europe Adventure",
			Description:   str("Exploring the beautiful cities of Europe during summer"),
			StartDate:     date(2024, time.June, 15),
			EndDate:       date(2024, time.July, 15),
			CoverPhotoURL: str("https://images.pexels.com/photos/346885/pexels-photo-346885.jpeg"),
			IsPublic:      false,
			TotalBudget:   decimal.NewFromInt(5000),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "mock-2",
			OwnerID:       SeedOwnerID,
			Name:          "Tokyo & Kyoto Discovery",
			Description:   str("Immersing in Japanese culture and cuisine"),
			StartDate:     date(2024, time.August, 1),
			EndDate:       date(2024, time.August, 14),
			CoverPhotoURL: str("https://picsum.photos/200"),
			IsPublic:      true,
			TotalBudget:   decimal.NewFromInt(3500),
			City:          str("Tokyo"),
			Country:       str("Japan"),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "mock-3",
			OwnerID:       SeedOwnerID,
			Name:          "Bali Beach Paradise",
			Description:   str("Relaxing on beautiful beaches and exploring tropical islands"),
			StartDate:     date(2024, time.September, 10),
			EndDate:       date(2024, time.September, 24),
			CoverPhotoURL: str("https://picsum.photos/seed/picsum/200/300"),
			IsPublic:      false,
			TotalBudget:   decimal.NewFromInt(2500),
			City:          str("Bali"),
			Country:       str("Indonesia"),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
