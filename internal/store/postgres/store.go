package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/utils"
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed.sql
var seedSQL string

// DB is a DBTX that can also open transactions, such as *pgxpool.Pool.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the remote entity store backed by PostgreSQL.
type Store struct {
	db     DB
	logger *utils.Logger

	trips      *Table[models.Trip]
	stops      *Table[models.Stop]
	activities *Table[models.Activity]
	expenses   *Table[models.Expense]
	profiles   *Table[models.Profile]
	cities     *Table[models.City]
	templates  *Table[models.ActivityTemplate]
	posts      *Table[models.Post]
	comments   *Table[models.Comment]
}

var _ store.Remote = (*Store)(nil)

// New wires the table clients onto db.
func New(db DB, logger *utils.Logger) *Store {
	return &Store{
		db:         db,
		logger:     logger,
		trips:      NewTable[models.Trip](db, "trips", models.Trip{}.Columns()),
		stops:      NewTable[models.Stop](db, "stops", models.Stop{}.Columns()),
		activities: NewTable[models.Activity](db, "activities", models.Activity{}.Columns()),
		expenses:   NewTable[models.Expense](db, "expenses", models.Expense{}.Columns()),
		profiles:   NewTable[models.Profile](db, "profiles", models.Profile{}.Columns()),
		cities:     NewTable[models.City](db, "cities", models.City{}.Columns()),
		templates:  NewTable[models.ActivityTemplate](db, "activity_templates", models.ActivityTemplate{}.Columns()),
		posts:      NewTable[models.Post](db, "posts", models.Post{}.Columns()),
		comments:   NewTable[models.Comment](db, "post_comments", models.Comment{}.Columns()),
	}
}

// Migrate creates missing tables and seeds the reference data.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := s.db.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	s.logger.Info("Database schema is ready")
	return nil
}

// Ping checks connectivity when the underlying handle supports it.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%v: %w", err, store.ErrUnavailable)
		}
		return nil
	}
	var one int
	return s.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// Trips

func (s *Store) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	return s.trips.Get(ctx, id)
}

func (s *Store) ListTrips(ctx context.Context, f store.TripFilter) ([]models.Trip, error) {
	q := Query{Orders: []Order{Desc("start_date"), Desc("created_at")}}
	if f.OwnerID != "" {
		q.Filters = append(q.Filters, Eq("user_id", f.OwnerID))
	}
	if f.PublicOnly {
		q.Filters = append(q.Filters, Eq("is_public", true))
		q.Orders = []Order{Desc("created_at")}
	}
	if f.City != "" {
		q.Filters = append(q.Filters, Eq("city", f.City))
	}
	if f.Country != "" {
		q.Filters = append(q.Filters, Eq("country", f.Country))
	}
	return s.trips.Select(ctx, q)
}

func (s *Store) InsertTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	return s.trips.Insert(ctx, t.Values())
}

func (s *Store) UpdateTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	patch := t.Values()
	delete(patch, "id")
	delete(patch, "created_at")
	return s.trips.Update(ctx, t.ID, patch)
}

func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	return s.trips.Delete(ctx, id)
}

// Stops

func (s *Store) GetStop(ctx context.Context, id string) (models.Stop, error) {
	stop, err := s.stops.Get(ctx, id)
	if err != nil {
		return models.Stop{}, err
	}
	if city, err := s.cities.Get(ctx, stop.CityID); err == nil {
		stop.City = &city
	}
	return stop, nil
}

func (s *Store) ListStops(ctx context.Context, tripID string) ([]models.Stop, error) {
	stops, err := s.stops.Select(ctx, Query{
		Filters: []Filter{Eq("trip_id", tripID)},
		Orders:  []Order{Asc("order_index"), Asc("created_at")},
	})
	if err != nil || len(stops) == 0 {
		return stops, err
	}

	cities, err := s.cities.Select(ctx, Query{})
	if err != nil {
		s.logger.Warn("Could not load cities for trip %s: %v", tripID, err)
		return stops, nil
	}
	byID := make(map[string]models.City, len(cities))
	for _, c := range cities {
		byID[c.ID] = c
	}
	for i := range stops {
		if c, ok := byID[stops[i].CityID]; ok {
			stops[i].City = &c
		}
	}
	return stops, nil
}

func (s *Store) InsertStop(ctx context.Context, st models.Stop) (models.Stop, error) {
	out, err := s.stops.Insert(ctx, st.Values())
	if err != nil {
		return models.Stop{}, err
	}
	out.City = st.City
	return out, nil
}

func (s *Store) DeleteStop(ctx context.Context, id string) error {
	return s.stops.Delete(ctx, id)
}

// Activities

func (s *Store) ListActivities(ctx context.Context, stopID string) ([]models.Activity, error) {
	return s.activities.Select(ctx, Query{
		Filters: []Filter{Eq("stop_id", stopID)},
		Orders:  []Order{Asc("activity_date"), Asc("order_index")},
	})
}

func (s *Store) ListTripActivities(ctx context.Context, tripID string) ([]models.Activity, error) {
	columns := (models.Activity{}).Columns()
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, "a."+pgx.Identifier{c}.Sanitize())
	}
	sql := fmt.Sprintf(`SELECT %s FROM activities a
		JOIN stops s ON s.id = a.stop_id
		WHERE s.trip_id = $1
		ORDER BY s.order_index, a.activity_date, a.order_index`, strings.Join(cols, ", "))
	rows, err := s.db.Query(ctx, sql, tripID)
	if err != nil {
		return nil, wrapErr("activities", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Activity])
	if err != nil {
		return nil, wrapErr("activities", err)
	}
	return out, nil
}

func (s *Store) InsertActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	return s.activities.Insert(ctx, a.Values())
}

// Expenses

func (s *Store) GetExpense(ctx context.Context, id string) (models.Expense, error) {
	return s.expenses.Get(ctx, id)
}

func (s *Store) ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	return s.expenses.Select(ctx, Query{
		Filters: []Filter{Eq("trip_id", tripID)},
		Orders:  []Order{Asc("expense_date"), Asc("created_at")},
	})
}

func (s *Store) InsertExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	return s.expenses.Insert(ctx, e.Values())
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.expenses.Delete(ctx, id)
}

// Profiles

func (s *Store) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	return s.profiles.Get(ctx, id)
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	return s.profiles.One(ctx, Eq("email", strings.ToLower(strings.TrimSpace(email))))
}

func (s *Store) InsertProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return s.profiles.Insert(ctx, p.Values())
}

// UpdateProfile applies patch and bumps updated_at.
func (s *Store) UpdateProfile(ctx context.Context, id string, patch map[string]any) (models.Profile, error) {
	if len(patch) == 0 {
		return s.profiles.Get(ctx, id)
	}
	values := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		values[k] = v
	}
	values["updated_at"] = time.Now().UTC()
	return s.profiles.Update(ctx, id, values)
}

// Catalog

func (s *Store) ListCities(ctx context.Context, q store.CityQuery) ([]models.City, error) {
	orders := []Order{Asc("name")}
	if q.Popular {
		orders = []Order{Desc("popularity_score"), Asc("name")}
	}
	return s.cities.Select(ctx, Query{Orders: orders, Limit: q.Limit})
}

func (s *Store) GetCity(ctx context.Context, id string) (models.City, error) {
	return s.cities.Get(ctx, id)
}

func (s *Store) ListActivityTemplates(ctx context.Context, cityID string) ([]models.ActivityTemplate, error) {
	return s.templates.Select(ctx, Query{
		Filters: []Filter{Eq("city_id", cityID)},
		Orders:  []Order{Asc("name")},
	})
}

func (s *Store) GetActivityTemplate(ctx context.Context, id string) (models.ActivityTemplate, error) {
	return s.templates.Get(ctx, id)
}
