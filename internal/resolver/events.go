package resolver

import (
	"sync"
	"time"

	"reelmatch/internal/media"
)

// trailCap bounds the retained event tail so long runs stay cheap to keep.
const trailCap = 50

// Event records one resolution outcome for diagnostics.
type Event struct {
	Time    time.Time  `json:"time"`
	Title   string     `json:"title"`
	Kind    media.Kind `json:"kind"`
	Pass    string     `json:"pass"`
	Outcome string     `json:"outcome"`
	Detail  string     `json:"detail,omitempty"`
}

// Trail is a bounded in-memory event log safe for concurrent use. Once the
// cap is reached the oldest events are dropped.
type Trail struct {
	mu     sync.Mutex
	events []Event
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Append records an event, evicting the oldest entry when full.
func (t *Trail) Append(event Event) {
	if t == nil {
		return
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
	if len(t.events) > trailCap {
		t.events = t.events[len(t.events)-trailCap:]
	}
}

// Events returns a copy of the retained tail, oldest first.
func (t *Trail) Events() []Event {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Len reports the number of retained events.
func (t *Trail) Len() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}
