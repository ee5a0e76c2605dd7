package session

import (
	"sync"

	"github.com/roach88/tablestate/internal/table"
)

// op is one unit of work for the Run loop.
type op struct {
	name string
	fn   func(*table.Table) error
	// reply is nil for fire-and-forget operations.
	reply chan result
}

type result struct {
	err      error
	panicked any
}

// opQueue is a thread-safe unbounded FIFO of operations.
//
// The signal channel (buffered, size 1) lets the Run loop wait with
// select, so context cancellation never leaves it blocked.
type opQueue struct {
	mu     sync.Mutex
	ops    []op
	closed bool
	signal chan struct{}
}

func newOpQueue() *opQueue {
	return &opQueue{
		ops:    make([]op, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends o. Returns false if the queue is closed.
func (q *opQueue) Enqueue(o op) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.ops = append(q.ops, o)

	// Non-blocking: the buffer of 1 coalesces signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue pops the front operation without blocking.
func (q *opQueue) TryDequeue() (op, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ops) == 0 {
		return op{}, false
	}
	o := q.ops[0]
	// Clear the slot so the closure and reply channel can be collected.
	q.ops[0] = op{}
	if len(q.ops) == 1 {
		q.ops = q.ops[:0]
	} else {
		q.ops = q.ops[1:]
	}
	return o, true
}

// Wait returns the channel signalling that operations may be available.
// It is closed when the queue closes.
func (q *opQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of pending operations.
func (q *opQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Close stops accepting operations and wakes the Run loop.
func (q *opQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}

// drain removes and returns every pending operation.
func (q *opQueue) drain() []op {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.ops
	q.ops = nil
	return out
}
