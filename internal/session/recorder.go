package session

import "context"

// Entry is one command as Exec ran it.
type Entry struct {
	SessionID string
	// Seq is the 1-based position of the command within the session.
	Seq     int64
	Command Command
	// ErrorCode is the table error code, or "" when the command succeeded.
	ErrorCode string
	// EventDigest identifies the emitted event; "" when none was emitted.
	EventDigest string
}

// Recorder receives every command executed through Session.Exec, in
// order, on the session goroutine.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// MemoryRecorder keeps entries in memory. Safe only for reading after the
// session stopped, or from the session goroutine.
type MemoryRecorder struct {
	Entries []Entry
}

// Record appends e.
func (m *MemoryRecorder) Record(_ context.Context, e Entry) error {
	m.Entries = append(m.Entries, e)
	return nil
}
