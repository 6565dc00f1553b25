package itinerary

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// DefaultAutosaveDelay is the quiet period after the last edit before sections are saved.
const DefaultAutosaveDelay = 500 * time.Millisecond

// SaveFunc persists the whole section list stored under key.
type SaveFunc func(ctx context.Context, key string, sections []models.ItinerarySection) error

// AutoSaver coalesces rapid section edits into one write per key. Each Schedule cancels
// the pending save for that key and restarts the delay, so the last edit wins.
type AutoSaver struct {
	delay  time.Duration
	save   SaveFunc
	logger *utils.Logger

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingSave
	closed  bool

	// saveMu orders writes so an older snapshot never lands after a newer one.
	saveMu  sync.Mutex
	written map[string]uint64
}

type pendingSave struct {
	timer    *time.Timer
	seq      uint64
	sections []models.ItinerarySection
}

// NewAutoSaver returns an AutoSaver that calls save delay after the last edit.
func NewAutoSaver(delay time.Duration, save SaveFunc, logger *utils.Logger) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &AutoSaver{
		delay:   delay,
		save:    save,
		logger:  logger,
		pending: make(map[string]*pendingSave),
		written: make(map[string]uint64),
	}
}

// Schedule queues sections for key, replacing any save still waiting. After Close the
// save happens immediately.
func (a *AutoSaver) Schedule(key string, sections []models.ItinerarySection) {
	snapshot := slices.Clone(sections)

	a.mu.Lock()
	a.seq++
	seq := a.seq
	if a.closed {
		a.mu.Unlock()
		a.write(context.Background(), key, seq, snapshot)
		return
	}
	if p, ok := a.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pendingSave{seq: seq, sections: snapshot}
	p.timer = time.AfterFunc(a.delay, func() { a.fire(key, seq) })
	a.pending[key] = p
	a.mu.Unlock()
}

// Pending reports whether a save for key is waiting.
func (a *AutoSaver) Pending(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.pending[key]
	return ok
}

// Flush writes the pending save for key now. It is a no-op when nothing is pending.
func (a *AutoSaver) Flush(ctx context.Context, key string) error {
	a.mu.Lock()
	p, ok := a.pending[key]
	if ok {
		p.timer.Stop()
		delete(a.pending, key)
	}
	a.mu.Unlock()
	if !ok {
		return nil
	}
	return a.write(ctx, key, p.seq, p.sections)
}

// Cancel drops the pending save for key without writing it.
func (a *AutoSaver) Cancel(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[key]; ok {
		p.timer.Stop()
		delete(a.pending, key)
	}
}

// Close flushes every pending save. Later Schedule calls write through.
func (a *AutoSaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	keys := make([]string, 0, len(a.pending))
	for k := range a.pending {
		keys = append(keys, k)
	}
	a.mu.Unlock()

	var errs []error
	for _, k := range keys {
		if err := a.Flush(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *AutoSaver) fire(key string, seq uint64) {
	a.mu.Lock()
	p, ok := a.pending[key]
	if !ok || p.seq != seq {
		a.mu.Unlock()
		return
	}
	delete(a.pending, key)
	a.mu.Unlock()

	if err := a.write(context.Background(), key, seq, p.sections); err != nil {
		a.logger.Error("Autosave of itinerary %s failed: %v", key, err)
	}
}

func (a *AutoSaver) write(ctx context.Context, key string, seq uint64, sections []models.ItinerarySection) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	if seq < a.written[key] {
		return nil
	}
	a.written[key] = seq
	return a.save(ctx, key, sections)
}
