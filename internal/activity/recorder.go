// Package activity keeps a short, volatile feed of recent mutations per owner.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/frahmantamala/bizmanager/internal/core/events"
)

const DefaultCapacity = 50

type Recorder struct {
	mu       sync.RWMutex
	capacity int
	feeds    map[int64][]events.Activity
	logger   *slog.Logger
}

func NewRecorder(capacity int, logger *slog.Logger) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		capacity: capacity,
		feeds:    make(map[int64][]events.Activity),
		logger:   logger,
	}
}

// Subscribe attaches the recorder to the bus.
func (r *Recorder) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeActivity, r.Handle)
}

func (r *Recorder) Handle(_ context.Context, event events.Event) error {
	a, ok := event.(*events.Activity)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}
	r.Record(*a)
	return nil
}

// Record inserts a into its owner's feed, newest first, dropping the oldest
// entry when full. The bus delivers out of order, so a finds its place by
// timestamp and sequence rather than arrival.
func (r *Recorder) Record(a events.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	feed := r.feeds[a.OwnerID]
	at := slices.IndexFunc(feed, func(x events.Activity) bool { return x.Before(&a) })
	if at < 0 {
		at = len(feed)
	}
	feed = slices.Insert(feed, at, a)
	if len(feed) > r.capacity {
		feed = feed[:r.capacity]
	}
	r.feeds[a.OwnerID] = feed
	r.logger.Debug("activity recorded", "owner_id", a.OwnerID, "kind", a.Kind, "action", a.Action, "record_id", a.RecordID)
}

// Recent returns up to limit activities of ownerID, newest first.
func (r *Recorder) Recent(ownerID int64, limit int) []events.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feed := r.feeds[ownerID]
	if limit <= 0 || limit > len(feed) {
		limit = len(feed)
	}
	out := make([]events.Activity, limit)
	copy(out, feed[:limit])
	return out
}
