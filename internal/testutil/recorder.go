package testutil

import (
	"sync"

	"github.com/roach88/tablestate/internal/table"
)

// Recorded is one captured table event. Exactly one of Change and
// Selection is set.
type Recorded struct {
	Change    *table.ChangeEvent
	Selection *table.SelectionEvent
}

// Seq returns the event's sequence number.
func (r Recorded) Seq() int64 {
	if r.Change != nil {
		return r.Change.Seq
	}
	return r.Selection.Seq
}

// Name returns "change:<action>" or "selection:<way>".
func (r Recorded) Name() string {
	if r.Change != nil {
		return "change:" + string(r.Change.Extra.Action)
	}
	return "selection:" + string(r.Selection.Way)
}

// EventRecorder captures every event a table emits. Install it with
// Hook before building the table.
type EventRecorder struct {
	mu     sync.Mutex
	events []Recorded
}

// Hook wires the recorder into props, chaining any callbacks already set.
func (r *EventRecorder) Hook(props *table.Props) {
	prevChange, prevSelection := props.OnChange, props.OnSelection

	props.OnChange = func(ev table.ChangeEvent) {
		r.add(Recorded{Change: &ev})
		if prevChange != nil {
			prevChange(ev)
		}
	}
	props.OnSelection = func(ev table.SelectionEvent) {
		r.add(Recorded{Selection: &ev})
		if prevSelection != nil {
			prevSelection(ev)
		}
	}
}

func (r *EventRecorder) add(ev Recorded) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of everything captured so far.
func (r *EventRecorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.events))
	copy(out, r.events)
	return out
}

// Since returns the events captured after the first n.
func (r *EventRecorder) Since(n int) []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n >= len(r.events) {
		return nil
	}
	out := make([]Recorded, len(r.events)-n)
	copy(out, r.events[n:])
	return out
}

// Len returns the number of captured events.
func (r *EventRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
