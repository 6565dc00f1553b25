package syncpolicy

import (
	"context"
	"errors"
	"fmt"

	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/localstore"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// Trips routes trip operations by origin.
type Trips struct {
	remote store.Trips
	local  *localstore.Store
	logger *utils.Logger
}

func NewTrips(remote store.Trips, local *localstore.Store, logger *utils.Logger) *Trips {
	return &Trips{remote: remote, local: local, logger: logger}
}

// Local exposes the fallback store for itinerary sections.
func (p *Trips) Local() *localstore.Store { return p.local }

// Create stores a new trip where its id says it lives. A remote failure is returned
// unchanged and nothing is written locally.
func (p *Trips) Create(ctx context.Context, t models.Trip) (models.Trip, error) {
	switch RefOf(t.ID).Origin {
	case Local:
		return p.local.Upsert(ctx, t), nil
	default:
		created, err := p.remote.InsertTrip(ctx, t)
		if err != nil {
			return models.Trip{}, fmt.Errorf("insert trip: %w", err)
		}
		return created, nil
	}
}

// Save writes an existing trip back to its owning store.
func (p *Trips) Save(ctx context.Context, t models.Trip) (models.Trip, error) {
	switch RefOf(t.ID).Origin {
	case Local:
		return p.local.Upsert(ctx, t), nil
	default:
		saved, err := p.remote.UpdateTrip(ctx, t)
		if err != nil {
			return models.Trip{}, fmt.Errorf("update trip: %w", err)
		}
		return saved, nil
	}
}

// Get loads a trip. Local ids never reach the remote store. For remote ids, tryLocal
// falls back to the local store when the remote has no such row or cannot be reached.
// Without a local copy the remote error is returned as is, so an unreachable remote is
// never reported as a missing trip.
func (p *Trips) Get(ctx context.Context, id string, tryLocal bool) (models.Trip, Origin, error) {
	if RefOf(id).Origin == Local {
		if t, ok := p.local.Get(ctx, id); ok {
			return t, Local, nil
		}
		return models.Trip{}, Local, store.ErrNotFound
	}

	t, err := p.remote.GetTrip(ctx, id)
	if err == nil {
		return t, Remote, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Warn("Remote trip lookup failed for %s: %v", id, err)
	}
	if tryLocal {
		if lt, ok := p.local.Get(ctx, id); ok {
			return lt, Local, nil
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		return models.Trip{}, Remote, store.ErrNotFound
	}
	return models.Trip{}, Remote, fmt.Errorf("get trip: %w", err)
}

// List merges remote and local trips matching filter. A failing remote counts as empty.
// On an id present in both, the remote copy wins. Owner listings are ordered by start
// date, other listings by creation time, newest first.
func (p *Trips) List(ctx context.Context, filter store.TripFilter) []models.Trip {
	return p.list(ctx, filter, filter)
}

// ListShared is List where every local trip passing the other filters is included
// whatever its owner. Sessions without a remote profile share the local namespace.
func (p *Trips) ListShared(ctx context.Context, filter store.TripFilter) []models.Trip {
	local := filter
	local.OwnerID = ""
	return p.list(ctx, filter, local)
}

func (p *Trips) list(ctx context.Context, filter, localFilter store.TripFilter) []models.Trip {
	remote, err := p.remote.ListTrips(ctx, filter)
	if err != nil {
		p.logger.Warn("Remote trip listing failed, using local trips only: %v", err)
		remote = nil
	}

	seen := make(map[string]struct{}, len(remote))
	out := make([]models.Trip, 0, len(remote))
	for _, t := range remote {
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	for _, t := range p.local.List(ctx) {
		if _, dup := seen[t.ID]; dup || !localFilter.Match(t) {
			continue
		}
		out = append(out, t)
	}

	if filter.OwnerID != "" {
		itinerary.SortTrips(out)
	} else {
		itinerary.SortTripsByCreated(out)
	}
	return out
}

// Delete removes a trip and its itinerary sections. Deleting an absent trip succeeds.
func (p *Trips) Delete(ctx context.Context, id string) error {
	if RefOf(id).Origin == Remote {
		if err := p.remote.DeleteTrip(ctx, id); err != nil {
			return fmt.Errorf("delete trip: %w", err)
		}
	}
	p.local.Delete(ctx, id)
	p.local.DeleteSections(ctx, id)
	return nil
}
