package audit

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"
)

const (
	ActionServiceTextSaved  = "service_text_saved"
	ActionProductStockSaved = "product_stock_saved"
)

// Event captures a change applied through an admin client.
type Event struct {
	EntityType string
	EntityID   string
	Action     string
	OccurredAt time.Time
	Metadata   map[string]any
}

// Recorder persists audit events.
type Recorder interface {
	Record(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
	Clear(ctx context.Context) error
}

// MemoryRecorder accumulates audit events in memory.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
	limit  int
	err    error
}

// NewMemoryRecorder constructs an empty recorder. A positive limit keeps only
// the most recent events.
func NewMemoryRecorder(limit int) *MemoryRecorder {
	return &MemoryRecorder{limit: limit}
}

// Record stores the supplied event.
func (r *MemoryRecorder) Record(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	copied := event
	if copied.OccurredAt.IsZero() {
		copied.OccurredAt = time.Now().UTC()
	}
	copied.Metadata = maps.Clone(event.Metadata)
	r.events = append(r.events, copied)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = append([]Event(nil), r.events[len(r.events)-r.limit:]...)
	}
	return nil
}

// Fail makes subsequent Record calls return err.
func (r *MemoryRecorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// List returns the recorded events ordered by occurrence.
func (r *MemoryRecorder) List(context.Context) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

// Clear removes all recorded events.
func (r *MemoryRecorder) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}
