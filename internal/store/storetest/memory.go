// Package storetest provides an in-memory store.Remote for tests.
package storetest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
)

// Remote is an in-memory store.Remote. Set Err to make every call fail with it.
// Calls counts every method invocation, which lets tests assert the remote was not touched.
type Remote struct {
	mu sync.Mutex

	Err   error
	Calls int

	Trips      map[string]models.Trip
	Stops      map[string]models.Stop
	Activities map[string]models.Activity
	Expenses   map[string]models.Expense
	Profiles   map[string]models.Profile
	Cities     map[string]models.City
	Templates  map[string]models.ActivityTemplate
	Posts      map[string]models.Post
	Likes      map[string]map[string]bool
}

var _ store.Remote = (*Remote)(nil)

// NewRemote returns an empty fake with one city and one template.
func NewRemote() *Remote {
	r := &Remote{
		Trips:      map[string]models.Trip{},
		Stops:      map[string]models.Stop{},
		Activities: map[string]models.Activity{},
		Expenses:   map[string]models.Expense{},
		Profiles:   map[string]models.Profile{},
		Cities:     map[string]models.City{},
		Templates:  map[string]models.ActivityTemplate{},
		Posts:      map[string]models.Post{},
		Likes:      map[string]map[string]bool{},
	}
	r.Cities["city-kyoto"] = models.City{ID: "city-kyoto", Name: "Kyoto", Country: "Japan"}
	desc := "Torii gate trail to the summit."
	r.Templates["tpl-kyoto-inari"] = models.ActivityTemplate{
		ID: "tpl-kyoto-inari", CityID: "city-kyoto", Name: "Fushimi Inari Hike",
		Description: &desc, Category: models.CategoryAdventure,
	}
	return r
}

// CallCount returns the number of calls so far.
func (r *Remote) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Calls
}

// Fail makes subsequent calls return err; nil restores normal behaviour.
func (r *Remote) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Err = err
}

func (r *Remote) enter() (func(), error) {
	r.mu.Lock()
	r.Calls++
	if r.Err != nil {
		err := r.Err
		r.mu.Unlock()
		return func() {}, err
	}
	return r.mu.Unlock, nil
}

func (r *Remote) Ping(context.Context) error {
	done, err := r.enter()
	defer done()
	return err
}

// Trips

func (r *Remote) GetTrip(_ context.Context, id string) (models.Trip, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Trip{}, err
	}
	t, ok := r.Trips[id]
	if !ok {
		return models.Trip{}, store.ErrNotFound
	}
	return t, nil
}

func (r *Remote) ListTrips(_ context.Context, f store.TripFilter) ([]models.Trip, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, err
	}
	var out []models.Trip
	for _, t := range r.Trips {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Trip) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *Remote) InsertTrip(_ context.Context, t models.Trip) (models.Trip, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Trip{}, err
	}
	if _, ok := r.Trips[t.ID]; ok {
		return models.Trip{}, store.ErrConflict
	}
	r.Trips[t.ID] = t
	return t, nil
}

func (r *Remote) UpdateTrip(_ context.Context, t models.Trip) (models.Trip, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Trip{}, err
	}
	old, ok := r.Trips[t.ID]
	if !ok {
		return models.Trip{}, store.ErrNotFound
	}
	t.CreatedAt = old.CreatedAt
	r.Trips[t.ID] = t
	return t, nil
}

func (r *Remote) DeleteTrip(_ context.Context, id string) error {
	done, err := r.enter()
	defer done()
	if err != nil {
		return err
	}
	delete(r.Trips, id)
	for sid, s := range r.Stops {
		if s.TripID == id {
			r.deleteStopLocked(sid)
		}
	}
	for eid, e := range r.Expenses {
		if e.TripID == id {
			delete(r.Expenses, eid)
		}
	}
	return nil
}

// Stops

func (r *Remote) GetStop(_ context.Context, id string) (models.Stop, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Stop{}, err
	}
	s, ok := r.Stops[id]
	if !ok {
		return models.Stop{}, store.ErrNotFound
	}
	return s, nil
}

func (r *Remote) ListStops(_ context.Context, tripID string) ([]models.Stop, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, err
	}
	var out []models.Stop
	for _, s := range r.Stops {
		if s.TripID == tripID {
			if c, ok := r.Cities[s.CityID]; ok {
				s.City = &c
			}
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b models.Stop) int { return a.OrderIndex - b.OrderIndex })
	return out, nil
}

func (r *Remote) InsertStop(_ context.Context, s models.Stop) (models.Stop, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Stop{}, err
	}
	if _, ok := r.Trips[s.TripID]; !ok {
		return models.Stop{}, store.ErrNotFound
	}
	for _, other := range r.Stops {
		if other.TripID == s.TripID && other.OrderIndex == s.OrderIndex {
			return models.Stop{}, store.ErrConflict
		}
	}
	r.Stops[s.ID] = s
	return s, nil
}

func (r *Remote) DeleteStop(_ context.Context, id string) error {
	done, err := r.enter()
	defer done()
	if err != nil {
		return err
	}
	r.deleteStopLocked(id)
	return nil
}

func (r *Remote) deleteStopLocked(id string) {
	delete(r.Stops, id)
	for aid, a := range r.Activities {
		if a.StopID == id {
			delete(r.Activities, aid)
		}
	}
}

// Activities

func (r *Remote) ListActivities(_ context.Context, stopID string) ([]models.Activity, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, err
	}
	var out []models.Activity
	for _, a := range r.Activities {
		if a.StopID == stopID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b models.Activity) int { return a.OrderIndex - b.OrderIndex })
	return out, nil
}

func (r *Remote) ListTripActivities(_ context.Context, tripID string) ([]models.Activity, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, err
	}
	var out []models.Activity
	for _, a := range r.Activities {
		if s, ok := r.Stops[a.StopID]; ok && s.TripID == tripID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b models.Activity) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *Remote) InsertActivity(_ context.Context, a models.Activity) (models.Activity, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Activity{}, err
	}
	if _, ok := r.Stops[a.StopID]; !ok {
		return models.Activity{}, store.ErrNotFound
	}
	r.Activities[a.ID] = a
	return a, nil
}

// Expenses

func (r *Remote) GetExpense(_ context.Context, id string) (models.Expense, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Expense{}, err
	}
	e, ok := r.Expenses[id]
	if !ok {
		return models.Expense{}, store.ErrNotFound
	}
	return e, nil
}

func (r *Remote) ListExpenses(_ context.Context, tripID string) ([]models.Expense, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, err
	}
	var out []models.Expense
	for _, e := range r.Expenses {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.Expense) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *Remote) InsertExpense(_ context.Context, e models.Expense) (models.Expense, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Expense{}, err
	}
	if _, ok := r.Trips[e.TripID]; !ok {
		return models.Expense{}, store.ErrNotFound
	}
	r.Expenses[e.ID] = e
	return e, nil
}

func (r *Remote) DeleteExpense(_ context.Context, id string) error {
	done, err := r.enter()
	defer done()
	if err != nil {
		return err
	}
	delete(r.Expenses, id)
	return nil
}

// Profiles

func (r *Remote) GetProfile(_ context.Context, id string) (models.Profile, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Profile{}, err
	}
	p, ok := r.Profiles[id]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	return p, nil
}

func (r *Remote) GetProfileByEmail(_ context.Context, email string) (models.Profile, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Profile{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, p := range r.Profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return models.Profile{}, store.ErrNotFound
}

func (r *Remote) InsertProfile(_ context.Context, p models.Profile) (models.Profile, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Profile{}, err
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	for _, other := range r.Profiles {
		if other.Email == p.Email || other.ID == p.ID {
			return models.Profile{}, store.ErrConflict
		}
	}
	r.Profiles[p.ID] = p
	return p, nil
}

func (r *Remote) UpdateProfile(_ context.Context, id string, patch map[string]any) (models.Profile, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Profile{}, err
	}
	p, ok := r.Profiles[id]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "full_name":
			p.FullName, _ = v.(*string)
		case "avatar_url":
			p.AvatarURL, _ = v.(*string)
		case "language":
			p.Language, _ = v.(string)
		}
	}
	p.UpdatedAt = time.Now().UTC()
	r.Profiles[id] = p
	return p, nil
}

// Catalog

func (r *Remote) ListCities(_ context.Context, q store.CityQuery) ([]models.City, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, err
	}
	out := make([]models.City, 0, len(r.Cities))
	for _, c := range r.Cities {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.City) int {
		if q.Popular && a.PopularityScore != b.PopularityScore {
			return b.PopularityScore - a.PopularityScore
		}
		return strings.Compare(a.Name, b.Name)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *Remote) GetCity(_ context.Context, id string) (models.City, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.City{}, err
	}
	c, ok := r.Cities[id]
	if !ok {
		return models.City{}, store.ErrNotFound
	}
	return c, nil
}

func (r *Remote) ListActivityTemplates(_ context.Context, cityID string) ([]models.ActivityTemplate, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, err
	}
	var out []models.ActivityTemplate
	for _, t := range r.Templates {
		if t.CityID == cityID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.ActivityTemplate) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *Remote) GetActivityTemplate(_ context.Context, id string) (models.ActivityTemplate, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.ActivityTemplate{}, err
	}
	t, ok := r.Templates[id]
	if !ok {
		return models.ActivityTemplate{}, store.ErrNotFound
	}
	return t, nil
}

// Community

func matchesFeed(p models.Post, q store.PostQuery) bool {
	switch q.Filter {
	case models.PostFilterTrips:
		if p.TripName == nil || *p.TripName == "" {
			return false
		}
	case models.PostFilterTips:
		if !strings.Contains(strings.ToLower(p.Content), "tip") {
			return false
		}
	case models.PostFilterQuestion:
		if !strings.Contains(p.Content, "?") {
			return false
		}
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		loc := ""
		if p.Location != nil {
			loc = *p.Location
		}
		return strings.Contains(strings.ToLower(p.Content), s) ||
			strings.Contains(strings.ToLower(loc), s) ||
			strings.Contains(strings.ToLower(p.UserName), s)
	}
	return true
}

func (r *Remote) decorate(p models.Post, viewerID string) models.Post {
	p.IsLiked = viewerID != "" && r.Likes[p.ID][viewerID]
	p.Likes = len(r.Likes[p.ID])
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	return p
}

func (r *Remote) ListPosts(_ context.Context, q store.PostQuery) ([]models.Post, int, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return nil, 0, err
	}
	var all []models.Post
	for _, p := range r.Posts {
		if matchesFeed(p, q) {
			all = append(all, r.decorate(p, q.ViewerID))
		}
	}
	slices.SortFunc(all, func(a, b models.Post) int { return b.CreatedAt.Compare(a.CreatedAt) })
	total := len(all)
	start := min(q.Offset, total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return all[start:end], total, nil
}

func (r *Remote) GetPost(_ context.Context, id, viewerID string) (models.Post, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Post{}, err
	}
	p, ok := r.Posts[id]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	return r.decorate(p, viewerID), nil
}

func (r *Remote) InsertPost(_ context.Context, p models.Post) (models.Post, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Post{}, err
	}
	p.Comments = []models.Comment{}
	r.Posts[p.ID] = p
	return p, nil
}

func (r *Remote) ToggleLike(_ context.Context, postID, userID string) (int, bool, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return 0, false, err
	}
	if _, ok := r.Posts[postID]; !ok {
		return 0, false, store.ErrNotFound
	}
	likes := r.Likes[postID]
	if likes == nil {
		likes = map[string]bool{}
		r.Likes[postID] = likes
	}
	liked := !likes[userID]
	if liked {
		likes[userID] = true
	} else {
		delete(likes, userID)
	}
	return len(likes), liked, nil
}

func (r *Remote) InsertComment(_ context.Context, c models.Comment) (models.Comment, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Comment{}, err
	}
	p, ok := r.Posts[c.PostID]
	if !ok {
		return models.Comment{}, store.ErrNotFound
	}
	p.Comments = append(p.Comments, c)
	r.Posts[c.PostID] = p
	return c, nil
}

// Analytics

func (r *Remote) Analytics(_ context.Context, limit int) (models.Analytics, error) {
	done, err := r.enter()
	defer done()
	if err != nil {
		return models.Analytics{}, err
	}
	a := models.Analytics{
		TotalUsers:      len(r.Profiles),
		TotalTrips:      len(r.Trips),
		TotalStops:      len(r.Stops),
		TotalActivities: len(r.Activities),
	}
	for _, t := range r.Trips {
		if t.IsPublic {
			a.PublicTrips++
		}
		a.TotalBudget = a.TotalBudget.Add(t.TotalBudget)
	}
	for _, e := range r.Expenses {
		a.TotalExpenses = a.TotalExpenses.Add(e.Amount)
	}

	visits := map[string]int{}
	for _, s := range r.Stops {
		visits[s.CityID]++
	}
	for id, n := range visits {
		c := r.Cities[id]
		a.PopularCities = append(a.PopularCities, models.CityStat{CityID: id, Name: c.Name, Country: c.Country, Visits: n})
	}
	slices.SortFunc(a.PopularCities, func(x, y models.CityStat) int { return y.Visits - x.Visits })

	cats := map[string]int{}
	for _, act := range r.Activities {
		cats[act.Category]++
	}
	for c, n := range cats {
		a.PopularActivities = append(a.PopularActivities, models.CategoryStat{Category: c, Participants: n})
	}
	slices.SortFunc(a.PopularActivities, func(x, y models.CategoryStat) int {
		if x.Participants != y.Participants {
			return y.Participants - x.Participants
		}
		return strings.Compare(x.Category, y.Category)
	})

	if limit > 0 {
		a.PopularCities = a.PopularCities[:min(limit, len(a.PopularCities))]
		a.PopularActivities = a.PopularActivities[:min(limit, len(a.PopularActivities))]
	}
	return a, nil
}
