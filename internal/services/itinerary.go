package services

import (
	"context"
	"time"

	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/localstore"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/syncpolicy"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// Sections is the section list of one itinerary.
type Sections struct {
	TripID   string
	Sections []models.ItinerarySection
	// Saved is false when the list was built from the trip and never stored.
	Saved   bool
	Pending bool
}

// Timeline is the dated view of an itinerary's sections.
type Timeline struct {
	TripID  string
	Entries []itinerary.TimelineEntry
}

// ItineraryService edits the flat itinerary sections kept in the local store and
// writes the editor's result back onto trips.
type ItineraryService struct {
	trips  *TripService
	local  *localstore.Store
	saver  *itinerary.AutoSaver
	logger *utils.Logger
}

func NewItineraryService(trips *TripService, local *localstore.Store, delay time.Duration, logger *utils.Logger) *ItineraryService {
	s := &ItineraryService{trips: trips, local: local, logger: logger}
	s.saver = itinerary.NewAutoSaver(delay, func(ctx context.Context, key string, sections []models.ItinerarySection) error {
		local.SaveSections(ctx, key, sections)
		return nil
	}, logger)
	return s
}

func isDraft(tripID string) bool {
	return tripID == "" || tripID == models.DraftItineraryKey
}

// Sections returns the saved sections of a trip, or a single section derived from the
// trip when none were saved. A pending auto-save is written first.
func (s *ItineraryService) Sections(ctx context.Context, who session.Identity, tripID string) (Sections, error) {
	if isDraft(tripID) {
		tripID = models.DraftItineraryKey
	} else {
		if _, err := s.trips.loadForRead(ctx, who, tripID); err != nil {
			return Sections{}, err
		}
	}
	if err := s.saver.Flush(ctx, tripID); err != nil {
		return Sections{}, err
	}

	if saved, ok := s.local.Sections(ctx, tripID); ok {
		return Sections{TripID: tripID, Sections: saved, Saved: true}, nil
	}
	if tripID == models.DraftItineraryKey {
		return Sections{TripID: tripID, Sections: []models.ItinerarySection{itinerary.BlankSection()}}, nil
	}
	t, err := s.trips.load(ctx, tripID)
	if err != nil {
		return Sections{}, err
	}
	return Sections{TripID: tripID, Sections: []models.ItinerarySection{itinerary.DefaultSection(t.Trip)}}, nil
}

// Timeline lists the sections by start date with their status today. query filters on
// title, description and type.
func (s *ItineraryService) Timeline(ctx context.Context, who session.Identity, tripID, query string) (Timeline, error) {
	sections, err := s.Sections(ctx, who, tripID)
	if err != nil {
		return Timeline{}, err
	}
	return Timeline{
		TripID:  sections.TripID,
		Entries: itinerary.BuildTimeline(sections.Sections, query, s.trips.now()),
	}, nil
}

// SaveSections replaces the section list. With autosave the write is debounced and the
// result reports it as pending.
func (s *ItineraryService) SaveSections(ctx context.Context, who session.Identity, tripID string, sections []models.ItinerarySection, autosave bool) (Sections, error) {
	if err := itinerary.ValidateSections(sections); err != nil {
		return Sections{}, err
	}
	if isDraft(tripID) {
		tripID = models.DraftItineraryKey
	} else if _, err := s.trips.loadForWrite(ctx, who, tripID); err != nil {
		return Sections{}, err
	}
	if sections == nil {
		sections = []models.ItinerarySection{}
	}

	s.saver.Schedule(tripID, sections)
	if autosave {
		return Sections{TripID: tripID, Sections: sections, Saved: true, Pending: s.saver.Pending(tripID)}, nil
	}
	if err := s.saver.Flush(ctx, tripID); err != nil {
		return Sections{}, err
	}
	return Sections{TripID: tripID, Sections: sections, Saved: true}, nil
}

// Flush writes a pending auto-save now.
func (s *ItineraryService) Flush(ctx context.Context, who session.Identity, tripID string) error {
	if isDraft(tripID) {
		tripID = models.DraftItineraryKey
	} else if _, err := s.trips.loadForWrite(ctx, who, tripID); err != nil {
		return err
	}
	return s.saver.Flush(ctx, tripID)
}

// SaveItinerary saves the sections and writes the first one back onto the trip. The
// draft itinerary becomes a new local trip and its draft sections are dropped.
func (s *ItineraryService) SaveItinerary(ctx context.Context, who session.Identity, tripID string, sections []models.ItinerarySection) (TripResult, error) {
	if err := itinerary.ValidateSections(sections); err != nil {
		return TripResult{}, err
	}
	now := s.trips.now()

	if isDraft(tripID) {
		t, err := itinerary.TripFromSections(who.ID, syncpolicy.NewLocalID(now), sections, now)
		if err != nil {
			return TripResult{}, err
		}
		created, err := s.trips.trips.Create(ctx, t)
		if err != nil {
			return TripResult{}, err
		}
		s.saver.Cancel(models.DraftItineraryKey)
		s.local.DeleteSections(ctx, models.DraftItineraryKey)
		s.local.SaveSections(ctx, created.ID, sections)
		s.logger.Info("Draft itinerary saved as trip %s", created.ID)
		return TripResult{Trip: created, Origin: syncpolicy.Local}, nil
	}

	cur, err := s.trips.loadForWrite(ctx, who, tripID)
	if err != nil {
		return TripResult{}, err
	}
	t, err := itinerary.ApplySections(cur.Trip, sections, now)
	if err != nil {
		return TripResult{}, err
	}
	saved, err := s.trips.trips.Save(ctx, t)
	if err != nil {
		return TripResult{}, err
	}
	s.saver.Schedule(tripID, sections)
	if err := s.saver.Flush(ctx, tripID); err != nil {
		return TripResult{}, err
	}
	return TripResult{Trip: saved, Origin: cur.Origin}, nil
}

// Close writes every pending auto-save. Later saves are written immediately.
func (s *ItineraryService) Close(ctx context.Context) error {
	return s.saver.Close(ctx)
}
