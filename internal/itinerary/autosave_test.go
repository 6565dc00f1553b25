package itinerary

import (
	"context"
	"sync"
	"testing"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	mu    sync.Mutex
	saves []map[string]string
}

func (r *recordingSaver) save(_ context.Context, key string, sections []models.ItinerarySection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, map[string]string{"key": key, "title": sections[0].Title})
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *recordingSaver) last() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[len(r.saves)-1]
}

func edit(title string) []models.ItinerarySection {
	return []models.ItinerarySection{{ID: "s1", Title: title, Type: models.SectionActivity}}
}

func TestAutoSaverCoalescesRapidEdits(t *testing.T) {
	rec := &recordingSaver{}
	delay := 40 * time.Millisecond
	a := NewAutoSaver(delay, rec.save, utils.Discard())

	a.Schedule("trip-1", edit("P"))
	a.Schedule("trip-1", edit("Pa"))
	a.Schedule("trip-1", edit("Paris"))
	assert.True(t, a.Pending("trip-1"))

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * delay)
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "Paris", rec.last()["title"])
	assert.False(t, a.Pending("trip-1"))
}

func TestAutoSaverKeysAreIndependent(t *testing.T) {
	rec := &recordingSaver{}
	a := NewAutoSaver(20*time.Millisecond, rec.save, utils.Discard())

	a.Schedule("trip-1", edit("one"))
	a.Schedule(models.DraftItineraryKey, edit("draft"))

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestAutoSaverFlushWritesImmediately(t *testing.T) {
	rec := &recordingSaver{}
	a := NewAutoSaver(time.Hour, rec.save, utils.Discard())

	a.Schedule("trip-1", edit("first"))
	a.Schedule("trip-1", edit("final"))
	require.NoError(t, a.Flush(context.Background(), "trip-1"))

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "final", rec.last()["title"])
	assert.False(t, a.Pending("trip-1"))

	require.NoError(t, a.Flush(context.Background(), "trip-1"))
	assert.Equal(t, 1, rec.count(), "nothing pending, nothing written")
}

func TestAutoSaverCloseFlushesAndWritesThrough(t *testing.T) {
	rec := &recordingSaver{}
	a := NewAutoSaver(time.Hour, rec.save, utils.Discard())

	a.Schedule("trip-1", edit("a"))
	a.Schedule("trip-2", edit("b"))
	require.NoError(t, a.Close(context.Background()))
	assert.Equal(t, 2, rec.count())

	a.Schedule("trip-3", edit("c"))
	assert.Equal(t, 3, rec.count())
	assert.Equal(t, "trip-3", rec.last()["key"])
}

func TestAutoSaverCancel(t *testing.T) {
	rec := &recordingSaver{}
	a := NewAutoSaver(20*time.Millisecond, rec.save, utils.Discard())

	a.Schedule("trip-1", edit("gone"))
	a.Cancel("trip-1")
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
}
