// Package store declares the remote entity store used by the services. The postgres
// subpackage implements it; storetest holds in-memory fakes.
package store

import (
	"context"
	"errors"

	"GLOBETROTTER_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the remote store cannot be reached or is disabled.
	ErrUnavailable = errors.New("remote store unavailable")
	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("already exists")
)

// TripFilter narrows a trip listing. Zero fields do not filter.
type TripFilter struct {
	OwnerID    string
	PublicOnly bool
	City       string
	Country    string
}

// Match applies the filter to a single trip.
func (f TripFilter) Match(t models.Trip) bool {
	if f.OwnerID != "" && t.OwnerID != f.OwnerID {
		return false
	}
	if f.PublicOnly && !t.IsPublic {
		return false
	}
	if f.City != "" && (t.City == nil || *t.City != f.City) {
		return false
	}
	if f.Country != "" && (t.Country == nil || *t.Country != f.Country) {
		return false
	}
	return true
}

type Trips interface {
	GetTrip(ctx context.Context, id string) (models.Trip, error)
	ListTrips(ctx context.Context, filter TripFilter) ([]models.Trip, error)
	InsertTrip(ctx context.Context, t models.Trip) (models.Trip, error)
	UpdateTrip(ctx context.Context, t models.Trip) (models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}

type Stops interface {
	GetStop(ctx context.Context, id string) (models.Stop, error)
	ListStops(ctx context.Context, tripID string) ([]models.Stop, error)
	InsertStop(ctx context.Context, s models.Stop) (models.Stop, error)
	DeleteStop(ctx context.Context, id string) error
}

type Activities interface {
	ListActivities(ctx context.Context, stopID string) ([]models.Activity, error)
	ListTripActivities(ctx context.Context, tripID string) ([]models.Activity, error)
	InsertActivity(ctx context.Context, a models.Activity) (models.Activity, error)
}

type Expenses interface {
	GetExpense(ctx context.Context, id string) (models.Expense, error)
	ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error)
	InsertExpense(ctx context.Context, e models.Expense) (models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

type Profiles interface {
	GetProfile(ctx context.Context, id string) (models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (models.Profile, error)
	InsertProfile(ctx context.Context, p models.Profile) (models.Profile, error)
	UpdateProfile(ctx context.Context, id string, patch map[string]any) (models.Profile, error)
}

// CityQuery orders and limits the city list. Popular sorts by popularity score,
// highest first; otherwise cities are sorted by name. Limit 0 means no limit.
type CityQuery struct {
	Popular bool
	Limit   int
}

// Catalog serves the read-only reference data.
type Catalog interface {
	ListCities(ctx context.Context, q CityQuery) ([]models.City, error)
	GetCity(ctx context.Context, id string) (models.City, error)
	ListActivityTemplates(ctx context.Context, cityID string) ([]models.ActivityTemplate, error)
	GetActivityTemplate(ctx context.Context, id string) (models.ActivityTemplate, error)
}

// PostQuery pages through the community feed.
type PostQuery struct {
	Filter   string // all | trips | tips | questions
	Search   string
	ViewerID string
	Limit    int
	Offset   int
}

type Community interface {
	ListPosts(ctx context.Context, q PostQuery) ([]models.Post, int, error)
	GetPost(ctx context.Context, id, viewerID string) (models.Post, error)
	InsertPost(ctx context.Context, p models.Post) (models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (likes int, liked bool, err error)
	InsertComment(ctx context.Context, c models.Comment) (models.Comment, error)
}

type Analytics interface {
	Analytics(ctx context.Context, limit int) (models.Analytics, error)
}

// Remote is everything the services need from the remote store.
type Remote interface {
	Trips
	Stops
	Activities
	Expenses
	Profiles
	Catalog
	Community
	Analytics
	Ping(ctx context.Context) error
}
