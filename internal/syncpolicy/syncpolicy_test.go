package syncpolicy

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GLOBETROTTER_BACK-END/internal/localstore"
	"GLOBETROTTER_BACK-END/internal/localstore/kv"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/store/storetest"
	"GLOBETROTTER_BACK-END/internal/utils"
)

func setup(t *testing.T) (*Trips, *storetest.Remote, *localstore.Store) {
	t.Helper()
	remote := storetest.NewRemote()
	local := localstore.New(kv.NewMemory(), "", utils.Discard())
	local.Initialize(context.Background())
	return NewTrips(remote, local, utils.Discard()), remote, local
}

func trip(id, owner, start string) models.Trip {
	d, _ := time.Parse("2006-01-02", start)
	return models.Trip{
		ID: id, OwnerID: owner, Name: "Trip " + id,
		StartDate: d, EndDate: d.AddDate(0, 0, 3),
		TotalBudget: decimal.NewFromInt(100),
		CreatedAt:   d,
	}
}

func TestRefOf(t *testing.T) {
	tests := []struct {
		id     string
		origin Origin
		seed   bool
	}{
		{"temp-1712345678901-abc123def", Local, false},
		{"mock-2", Local, true},
		{"3f1c2d0e-8a9b-4c1d-9e2f-0123456789ab", Remote, false},
		{"tempo-trip", Remote, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			ref := RefOf(tt.id)
			assert.Equal(t, tt.origin, ref.Origin)
			assert.Equal(t, tt.seed, ref.IsSeed())
			assert.Equal(t, tt.id, ref.ID)
		})
	}
}

func TestNewLocalID(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	id := NewLocalID(now)
	assert.Regexp(t, regexp.MustCompile(`^temp-1712345678901-[0-9a-z]{9}$`), id)
	assert.True(t, IsLocal(id))
	assert.NotEqual(t, id, NewLocalID(now))

	assert.False(t, IsLocal(NewRemoteID()))
	assert.True(t, IsLocal(NewID(Local, now)))
	assert.False(t, IsLocal(NewID(Remote, now)))
}

func TestLocalIDsNeverTouchRemote(t *testing.T) {
	ctx := context.Background()
	p, remote, _ := setup(t)

	created, err := p.Create(ctx, trip("temp-1-aaaaaaaaa", "u1", "2025-05-01"))
	require.NoError(t, err)
	created.Name = "Renamed"
	_, err = p.Save(ctx, created)
	require.NoError(t, err)

	got, origin, err := p.Get(ctx, "temp-1-aaaaaaaaa", true)
	require.NoError(t, err)
	assert.Equal(t, Local, origin)
	assert.Equal(t, "Renamed", got.Name)

	_, _, err = p.Get(ctx, "mock-1", false)
	require.NoError(t, err)
	require.NoError(t, p.Delete(ctx, "temp-1-aaaaaaaaa"))
	_, _, err = p.Get(ctx, "temp-unknown", true)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Zero(t, remote.CallCount())
}

func TestRemoteCreateFailureWritesNothingLocally(t *testing.T) {
	ctx := context.Background()
	p, remote, local := setup(t)
	remote.Fail(store.ErrUnavailable)

	_, err := p.Create(ctx, trip("r1", "u1", "2025-05-01"))
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, ok := local.Get(ctx, "r1")
	assert.False(t, ok)
	assert.Len(t, local.List(ctx), 3)
}

func TestGetRemote(t *testing.T) {
	ctx := context.Background()
	p, remote, local := setup(t)
	remote.Trips["r1"] = trip("r1", "u1", "2025-05-01")

	got, origin, err := p.Get(ctx, "r1", false)
	require.NoError(t, err)
	assert.Equal(t, Remote, origin)
	assert.Equal(t, "r1", got.ID)

	_, _, err = p.Get(ctx, "r2", false)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// A remote-shaped id that only exists locally is found by probing.
	local.Upsert(ctx, trip("r2", "u1", "2025-06-01"))
	got, origin, err = p.Get(ctx, "r2", true)
	require.NoError(t, err)
	assert.Equal(t, Local, origin)
	assert.Equal(t, "r2", got.ID)
}

func TestGetRemoteErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	p, remote, _ := setup(t)
	boom := errors.New("connection reset")
	remote.Fail(boom)

	_, _, err := p.Get(ctx, "r1", false)
	assert.ErrorIs(t, err, boom)

	_, _, err = p.Get(ctx, "r1", true)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestListFallsBackToLocalWhenRemoteEmpty(t *testing.T) {
	p, _, _ := setup(t)

	trips := p.List(context.Background(), store.TripFilter{OwnerID: localstore.SeedOwnerID})
	require.Len(t, trips, 3)
	assert.Equal(t, []string{"mock-3", "mock-2", "mock-1"}, []string{trips[0].ID, trips[1].ID, trips[2].ID})
}

func TestListFallsBackToLocalWhenRemoteFails(t *testing.T) {
	p, remote, _ := setup(t)
	remote.Fail(store.ErrUnavailable)

	trips := p.List(context.Background(), store.TripFilter{OwnerID: localstore.SeedOwnerID})
	assert.Len(t, trips, 3)
}

func TestListUnionRemoteWins(t *testing.T) {
	ctx := context.Background()
	p, remote, local := setup(t)

	shadow := trip("mock-1", localstore.SeedOwnerID, "2030-01-01")
	shadow.Name = "Remote copy"
	remote.Trips["mock-1"] = shadow
	remote.Trips["r1"] = trip("r1", localstore.SeedOwnerID, "2026-01-01")
	remote.Trips["r2"] = trip("r2", "someone-else", "2026-01-01")
	local.Upsert(ctx, trip("temp-9-zzzzzzzzz", "someone-else", "2027-01-01"))

	trips := p.List(ctx, store.TripFilter{OwnerID: localstore.SeedOwnerID})
	ids := make([]string, 0, len(trips))
	for _, tr := range trips {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"mock-1", "r1", "mock-3", "mock-2"}, ids)
	assert.Equal(t, "Remote copy", trips[0].Name)
}

func TestListPublicOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	p, remote, _ := setup(t)
	pub := trip("r1", "u1", "2020-01-01")
	pub.IsPublic = true
	pub.CreatedAt = time.Now().Add(time.Hour)
	remote.Trips["r1"] = pub

	trips := p.List(ctx, store.TripFilter{PublicOnly: true})
	require.Len(t, trips, 2)
	assert.Equal(t, "r1", trips[0].ID)
	assert.Equal(t, "mock-2", trips[1].ID)
}

func TestDeletePurgesSectionsAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p, remote, local := setup(t)
	remote.Trips["r1"] = trip("r1", "u1", "2025-01-01")
	local.SaveSections(ctx, "r1", []models.ItinerarySection{{ID: "s1", Type: models.SectionFood}})
	local.SaveSections(ctx, "mock-1", []models.ItinerarySection{{ID: "s2", Type: models.SectionFood}})

	require.NoError(t, p.Delete(ctx, "r1"))
	require.NoError(t, p.Delete(ctx, "r1"))
	require.NoError(t, p.Delete(ctx, "mock-1"))
	require.NoError(t, p.Delete(ctx, "mock-1"))

	_, ok := remote.Trips["r1"]
	assert.False(t, ok)
	_, ok = local.Sections(ctx, "r1")
	assert.False(t, ok)
	_, ok = local.Sections(ctx, "mock-1")
	assert.False(t, ok)
	assert.Len(t, local.List(ctx), 2)
}

func TestDeleteRemoteFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	p, remote, _ := setup(t)
	remote.Fail(store.ErrUnavailable)

	assert.ErrorIs(t, p.Delete(ctx, "r1"), store.ErrUnavailable)
}

func TestListSharedIgnoresLocalOwner(t *testing.T) {
	ctx := context.Background()
	p, remote, local := setup(t)
	remote.Trips["r1"] = trip("r1", "someone-else", "2026-01-01")
	local.Upsert(ctx, trip("temp-5-bbbbbbbbb", "mock-user-id-123", "2025-01-01"))

	trips := p.ListShared(ctx, store.TripFilter{OwnerID: "mock-user-id-123"})
	require.Len(t, trips, 4)
	assert.Equal(t, "temp-5-bbbbbbbbb", trips[0].ID)
	for _, tr := range trips {
		assert.NotEqual(t, "r1", tr.ID)
	}
}
