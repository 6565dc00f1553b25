package postgres

import (
	"context"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
)

// Unavailable stands in for the remote store when it is disabled. Every call fails
// with store.ErrUnavailable, so reads fall back to the local store exactly as they
// would during an outage.
type Unavailable struct{}

var _ store.Remote = Unavailable{}

func (Unavailable) Ping(context.Context) error { return store.ErrUnavailable }

func (Unavailable) GetTrip(context.Context, string) (models.Trip, error) {
	return models.Trip{}, store.ErrUnavailable
}
func (Unavailable) ListTrips(context.Context, store.TripFilter) ([]models.Trip, error) {
	return nil, store.ErrUnavailable
}
func (Unavailable) InsertTrip(context.Context, models.Trip) (models.Trip, error) {
	return models.Trip{}, store.ErrUnavailable
}
func (Unavailable) UpdateTrip(context.Context, models.Trip) (models.Trip, error) {
	return models.Trip{}, store.ErrUnavailable
}
func (Unavailable) DeleteTrip(context.Context, string) error { return store.ErrUnavailable }

func (Unavailable) GetStop(context.Context, string) (models.Stop, error) {
	return models.Stop{}, store.ErrUnavailable
}
func (Unavailable) ListStops(context.Context, string) ([]models.Stop, error) {
	return nil, store.ErrUnavailable
}
func (Unavailable) InsertStop(context.Context, models.Stop) (models.Stop, error) {
	return models.Stop{}, store.ErrUnavailable
}
func (Unavailable) DeleteStop(context.Context, string) error { return store.ErrUnavailable }

func (Unavailable) ListActivities(context.Context, string) ([]models.Activity, error) {
	return nil, store.ErrUnavailable
}
func (Unavailable) ListTripActivities(context.Context, string) ([]models.Activity, error) {
	return nil, store.ErrUnavailable
}
func (Unavailable) InsertActivity(context.Context, models.Activity) (models.Activity, error) {
	return models.Activity{}, store.ErrUnavailable
}

func (Unavailable) GetExpense(context.Context, string) (models.Expense, error) {
	return models.Expense{}, store.ErrUnavailable
}
func (Unavailable) ListExpenses(context.Context, string) ([]models.Expense, error) {
	return nil, store.ErrUnavailable
}
func (Unavailable) InsertExpense(context.Context, models.Expense) (models.Expense, error) {
	return models.Expense{}, store.ErrUnavailable
}
func (Unavailable) DeleteExpense(context.Context, string) error { return store.ErrUnavailable }

func (Unavailable) GetProfile(context.Context, string) (models.Profile, error) {
	return models.Profile{}, store.ErrUnavailable
}
func (Unavailable) GetProfileByEmail(context.Context, string) (models.Profile, error) {
	return models.Profile{}, store.ErrUnavailable
}
func (Unavailable) InsertProfile(context.Context, models.Profile) (models.Profile, error) {
	return models.Profile{}, store.ErrUnavailable
}
func (Unavailable) UpdateProfile(context.Context, string, map[string]any) (models.Profile, error) {
	return models.Profile{}, store.ErrUnavailable
}

func (Unavailable) ListCities(context.Context, store.CityQuery) ([]models.City, error) {
	return nil, store.ErrUnavailable
}
func (Unavailable) GetCity(context.Context, string) (models.City, error) {
	return models.City{}, store.ErrUnavailable
}
func (Unavailable) ListActivityTemplates(context.Context, string) ([]models.ActivityTemplate, error) {
	return nil, store.ErrUnavailable
}
func (Unavailable) GetActivityTemplate(context.Context, string) (models.ActivityTemplate, error) {
	return models.ActivityTemplate{}, store.ErrUnavailable
}

func (Unavailable) ListPosts(context.Context, store.PostQuery) ([]models.Post, int, error) {
	return nil, 0, store.ErrUnavailable
}
func (Unavailable) GetPost(context.Context, string, string) (models.Post, error) {
	return models.Post{}, store.ErrUnavailable
}
func (Unavailable) InsertPost(context.Context, models.Post) (models.Post, error) {
	return models.Post{}, store.ErrUnavailable
}
func (Unavailable) ToggleLike(context.Context, string, string) (int, bool, error) {
	return 0, false, store.ErrUnavailable
}
func (Unavailable) InsertComment(context.Context, models.Comment) (models.Comment, error) {
	return models.Comment{}, store.ErrUnavailable
}

func (Unavailable) Analytics(context.Context, int) (models.Analytics, error) {
	return models.Analytics{}, store.ErrUnavailable
}
