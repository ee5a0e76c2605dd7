package table

import "sync/atomic"

// Clock is a monotonic logical clock for event ordering.
//
// Every emitted event is stamped with a strictly increasing seq from the
// table's clock, so callers can order events without wall-clock time.
// Safe for concurrent use, though a Table only calls Next from the
// goroutine driving it.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
