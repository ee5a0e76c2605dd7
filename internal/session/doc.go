// Package session serializes access to a table.Table.
//
// A table.Table is a synchronous state machine with no internal locking.
// Session wraps one Table in a single-writer loop: callers on any
// goroutine submit operations, and Run applies them one at a time in FIFO
// order. No operation ever observes another one half-applied.
//
// ARCHITECTURE:
//
//	HTTP handler ─┐
//	CLI command  ─┼─> Do/Enqueue ─> opQueue ─> Run loop ─> table.Table
//	test         ─┘
//
// Exec is the serializable path: a Command is validated, applied and
// snapshotted as one operation, and handed to an optional Recorder (the
// store package journals sessions this way).
//
// CRITICAL: All Table mutations happen in the Run goroutine.
//
// Thread-safety model:
//   - Do(), Exec(), Enqueue(), Stop(), ID(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//
// Cancelling the context passed to Do stops the caller from waiting; it
// does not un-apply an operation the loop already picked up.
package session
