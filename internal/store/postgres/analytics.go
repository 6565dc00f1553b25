package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"GLOBETROTTER_BACK-END/internal/models"
)

// Analytics aggregates platform usage. limit bounds each ranking.
func (s *Store) Analytics(ctx context.Context, limit int) (models.Analytics, error) {
	var a models.Analytics

	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(1) FROM profiles),
			(SELECT COUNT(1) FROM trips),
			(SELECT COUNT(1) FROM trips WHERE is_public),
			(SELECT COUNT(1) FROM stops),
			(SELECT COUNT(1) FROM activities),
			(SELECT COALESCE(SUM(total_budget), 0) FROM trips),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses)
	`).Scan(&a.TotalUsers, &a.TotalTrips, &a.PublicTrips, &a.TotalStops, &a.TotalActivities, &a.TotalBudget, &a.TotalExpenses)
	if err != nil {
		return a, wrapErr("analytics", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.name, c.country, COUNT(s.id) AS visits
		FROM stops s JOIN cities c ON c.id = s.city_id
		GROUP BY c.id, c.name, c.country
		ORDER BY visits DESC, c.name
		LIMIT $1`, limit)
	if err != nil {
		return a, wrapErr("analytics", err)
	}
	if a.PopularCities, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.CityStat]); err != nil {
		return a, wrapErr("analytics", err)
	}

	rows, err = s.db.Query(ctx, `
		SELECT category, COUNT(1) AS participants
		FROM activities
		GROUP BY category
		ORDER BY participants DESC, category
		LIMIT $1`, limit)
	if err != nil {
		return a, wrapErr("analytics", err)
	}
	if a.PopularActivities, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.CategoryStat]); err != nil {
		return a, wrapErr("analytics", err)
	}

	rows, err = s.db.Query(ctx, `
		SELECT p.id, COALESCE(p.full_name, p.email) AS name, p.email,
		       COUNT(t.id) AS trips_count, COALESCE(SUM(t.total_budget), 0) AS total_budget
		FROM profiles p JOIN trips t ON t.user_id = p.id
		GROUP BY p.id, p.full_name, p.email
		ORDER BY trips_count DESC, total_budget DESC
		LIMIT $1`, limit)
	if err != nil {
		return a, wrapErr("analytics", err)
	}
	if a.TopUsers, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.UserTripSummary]); err != nil {
		return a, wrapErr("analytics", err)
	}

	return a, nil
}
