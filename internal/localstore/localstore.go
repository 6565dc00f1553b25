// Package localstore is the local fallback store: trips and itinerary sections kept as
// JSON documents on a key-value medium. It never returns errors. A broken medium reads
// as empty and writes become logged no-ops.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"GLOBETROTTER_BACK-END/internal/localstore/kv"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/utils"
)

const (
	DefaultPrefix = "globe_trotter_"

	tripsKey    = "temp_trips"
	sectionsKey = "itinerary_sections"
)

// Store is the local fallback store.
type Store struct {
	medium kv.Store
	prefix string
	logger *utils.Logger
	now    func() time.Time

	// mu serialises read-modify-write cycles over whole collections.
	mu sync.Mutex
}

// New returns a Store over medium. An empty prefix means DefaultPrefix.
func New(medium kv.Store, prefix string, logger *utils.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		medium: medium,
		prefix: prefix,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the timestamp source used by Upsert.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

func (s *Store) key(name string) string { return s.prefix + name }

// Initialize seeds the sample trips when no trip collection exists yet. Existing data,
// even an empty list, is never overwritten.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.medium.Get(ctx, s.key(tripsKey))
	switch {
	case err == nil:
		return
	case !errors.Is(err, kv.ErrNotFound):
		s.logger.Warn("Local store unavailable, skipping seed: %v", err)
		return
	}
	s.writeTrips(ctx, SeedTrips(s.now()))
	s.logger.Info("Seeded local store with sample trips")
}

// List returns every local trip in stored order.
func (s *Store) List(ctx context.Context) []models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readTrips(ctx)
}

// Get returns the trip with id, if present.
func (s *Store) Get(ctx context.Context, id string) (models.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.readTrips(ctx) {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trip{}, false
}

// Upsert replaces the trip with the same id or appends it. updated_at is always
// refreshed; created_at is set on insert. The stored record is returned.
func (s *Store) Upsert(ctx context.Context, t models.Trip) models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	trips := s.readTrips(ctx)
	i := slices.IndexFunc(trips, func(x models.Trip) bool { return x.ID == t.ID })
	t.UpdatedAt = now
	if i >= 0 {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = trips[i].CreatedAt
		}
		trips[i] = t
	} else {
		t.CreatedAt = now
		trips = append(trips, t)
	}
	s.writeTrips(ctx, trips)
	return t
}

// Delete removes the trip with id. Absence is not an error.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.readTrips(ctx)
	kept := slices.DeleteFunc(slices.Clone(trips), func(x models.Trip) bool { return x.ID == id })
	if len(kept) == len(trips) {
		return
	}
	s.writeTrips(ctx, kept)
}

// Clear drops the whole trip collection. The next Initialize reseeds it.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.medium.Delete(ctx, s.key(tripsKey)); err != nil {
		s.logger.Error("Error clearing local trips: %v", err)
	}
}

// Ping reports whether the medium answers. It is the only method that returns the
// medium's errors.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.medium.Get(ctx, s.key(tripsKey))
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	return nil
}

// Sections returns the saved sections for tripID. ok is false when none were saved.
func (s *Store) Sections(ctx context.Context, tripID string) ([]models.ItinerarySection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sections, ok := s.readSections(ctx)[tripID]
	return sections, ok
}

// SaveSections replaces the whole section list of tripID.
func (s *Store) SaveSections(ctx context.Context, tripID string, sections []models.ItinerarySection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.readSections(ctx)
	if sections == nil {
		sections = []models.ItinerarySection{}
	}
	all[tripID] = sections
	s.writeSections(ctx, all)
}

// DeleteSections drops the sections of tripID.
func (s *Store) DeleteSections(ctx context.Context, tripID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.readSections(ctx)
	if _, ok := all[tripID]; !ok {
		return
	}
	delete(all, tripID)
	s.writeSections(ctx, all)
}

func (s *Store) readTrips(ctx context.Context) []models.Trip {
	raw, err := s.medium.Get(ctx, s.key(tripsKey))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error("Error reading local trips: %v", err)
		}
		return []models.Trip{}
	}
	var trips []models.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		s.logger.Error("Error decoding local trips, treating as empty: %v", err)
		return []models.Trip{}
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	return trips
}

func (s *Store) writeTrips(ctx context.Context, trips []models.Trip) {
	raw, err := json.Marshal(trips)
	if err != nil {
		s.logger.Error("Error encoding local trips: %v", err)
		return
	}
	if err := s.medium.Set(ctx, s.key(tripsKey), raw); err != nil {
		s.logger.Error("Error saving local trips: %v", err)
	}
}

func (s *Store) readSections(ctx context.Context) map[string][]models.ItinerarySection {
	all := map[string][]models.ItinerarySection{}
	raw, err := s.medium.Get(ctx, s.key(sectionsKey))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error("Error reading itinerary sections: %v", err)
		}
		return all
	}
	if err := json.Unmarshal(raw, &all); err != nil {
		s.logger.Error("Error decoding itinerary sections, treating as empty: %v", err)
		return map[string][]models.ItinerarySection{}
	}
	if all == nil {
		all = map[string][]models.ItinerarySection{}
	}
	return all
}

func (s *Store) writeSections(ctx context.Context, all map[string][]models.ItinerarySection) {
	raw, err := json.Marshal(all)
	if err != nil {
		s.logger.Error("Error encoding itinerary sections: %v", err)
		return
	}
	if err := s.medium.Set(ctx, s.key(sectionsKey), raw); err != nil {
		s.logger.Error("Error saving itinerary sections: %v", err)
	}
}
