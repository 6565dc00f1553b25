package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/localstore"
	"GLOBETROTTER_BACK-END/internal/localstore/kv"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store/storetest"
	"GLOBETROTTER_BACK-END/internal/syncpolicy"
	"GLOBETROTTER_BACK-END/internal/utils"
)

var (
	alice = session.Identity{ID: "u-alice", Email: "alice@example.com", DisplayName: "Alice", Kind: session.KindRegistered}
	bob   = session.Identity{ID: "u-bob", Email: "bob@example.com", DisplayName: "Bob", Kind: session.KindRegistered}
	demo  = session.Identity{ID: session.DemoUserID, Email: "demo@globetrotter.com", DisplayName: "Demo User", Kind: session.KindDemo}
	admin = session.Identity{ID: session.AdminUserID, Email: "admin@globetrotter.com", DisplayName: "Admin User", Kind: session.KindAdmin, Admin: true}
	anon  = session.Anonymous()

	fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
)

type env struct {
	remote    *storetest.Remote
	local     *localstore.Store
	trips     *TripService
	plan      *PlanService
	itinerary *ItineraryService
}

func newEnv(t *testing.T, rules itinerary.DateRules) *env {
	t.Helper()
	logger := utils.Discard()
	remote := storetest.NewRemote()
	for _, who := range []session.Identity{alice, bob} {
		remote.Profiles[who.ID] = models.Profile{ID: who.ID, Email: who.Email, FullName: &who.DisplayName, Language: "en", Role: models.RoleUser}
	}
	local := localstore.New(kv.NewMemory(), "", logger)
	local.Initialize(context.Background())

	trips := NewTripService(syncpolicy.NewTrips(remote, local, logger), remote, logger)
	trips.now = func() time.Time { return fixedNow }
	e := &env{
		remote:    remote,
		local:     local,
		trips:     trips,
		plan:      NewPlanService(trips, remote, rules, logger),
		itinerary: NewItineraryService(trips, local, 20*time.Millisecond, logger),
	}
	t.Cleanup(func() { _ = e.itinerary.Close(context.Background()) })
	return e
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

// remoteTrip stores a remote trip owned by owner running 2025-06-01..2025-06-10.
func (e *env) remoteTrip(id string, owner session.Identity, public bool) models.Trip {
	t := models.Trip{
		ID:          id,
		OwnerID:     owner.ID,
		Name:        "Japan",
		Description: ptr("Temples and trains"),
		StartDate:   day("2025-06-01"),
		EndDate:     day("2025-06-10"),
		IsPublic:    public,
		TotalBudget: decimal.NewFromInt(3000),
		City:        ptr("Kyoto"),
		Country:     ptr("Japan"),
		CreatedAt:   fixedNow.Add(-time.Hour),
		UpdatedAt:   fixedNow.Add(-time.Hour),
	}
	e.remote.Trips[id] = t
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
