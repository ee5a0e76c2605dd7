package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/table"
)

// ErrClosed is returned for operations submitted after Stop or after Run
// returned.
var ErrClosed = errors.New("session closed")

// PanicError wraps a panic raised by an operation. Do re-panics with it
// on the caller's goroutine, so a sorter that panics still reaches the
// code that triggered the sort.
type PanicError struct {
	Op    string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("session op %q panicked: %v", e.Op, e.Value)
}

// Session is a single-writer wrapper around one table.Table.
type Session struct {
	id       string
	tbl      *table.Table
	queue    *opQueue
	logger   *slog.Logger
	recorder Recorder

	// seq numbers commands run through Exec. Touched only by Run.
	seq int64
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	idGen    IDGenerator
	logger   *slog.Logger
	recorder Recorder
}

// WithIDGenerator sets the ID source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *sessionConfig) {
		c.idGen = g
	}
}

// WithLogger sets the session logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = l
	}
}

// WithRecorder sends every command run through Exec to r.
func WithRecorder(r Recorder) Option {
	return func(c *sessionConfig) {
		c.recorder = r
	}
}

// New wraps tbl. The caller must not touch tbl directly afterwards.
func New(tbl *table.Table, opts ...Option) *Session {
	cfg := sessionConfig{idGen: UUIDv7Generator{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := cfg.idGen.Generate()
	return &Session{
		id:       id,
		tbl:      tbl,
		queue:    newOpQueue(),
		logger:   cfg.logger.With("session", id),
		recorder: cfg.recorder,
	}
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Run applies queued operations until ctx is cancelled or Stop is called.
// Operations still queued at shutdown fail with ErrClosed.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session starting")
	defer s.abandonPending()

	for {
		if o, ok := s.queue.TryDequeue(); ok {
			s.apply(o)
			continue
		}

		select {
		case <-ctx.Done():
			s.logger.Info("session stopping: context cancelled")
			s.queue.Close()
			return ctx.Err()

		case <-s.queue.Wait():
			// A closed signal channel fires immediately; stop once the
			// queue is both closed and empty.
			if s.queue.Len() == 0 && s.isClosed() {
				s.logger.Info("session stopping: queue closed")
				return nil
			}
		}
	}
}

func (s *Session) isClosed() bool {
	s.queue.mu.Lock()
	defer s.queue.mu.Unlock()
	return s.queue.closed
}

// Stop closes the queue. Run returns after applying what was already
// queued.
func (s *Session) Stop() {
	s.queue.Close()
}

// apply runs one operation. CRITICAL: called only from Run.
func (s *Session) apply(o op) {
	res := result{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.panicked = r
				s.logger.Error("session op panicked", "op", o.name, "panic", fmt.Sprint(r))
			}
		}()
		res.err = o.fn(s.tbl)
	}()

	if o.reply != nil {
		o.reply <- res
		return
	}
	if res.err != nil {
		s.logger.Warn("session op failed", "op", o.name, "error", res.err)
	}
}

func (s *Session) abandonPending() {
	for _, o := range s.queue.drain() {
		if o.reply != nil {
			o.reply <- result{err: ErrClosed}
		}
	}
}

// Do runs fn on the session goroutine and waits for it.
//
// Returns ErrClosed if the session no longer accepts work, ctx.Err() if
// ctx ends first, or fn's error. A panic inside fn is re-raised here as
// *PanicError.
func (s *Session) Do(ctx context.Context, name string, fn func(*table.Table) error) error {
	reply := make(chan result, 1)
	if !s.queue.Enqueue(op{name: name, fn: fn, reply: reply}) {
		return ErrClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-reply:
		if res.panicked != nil {
			panic(&PanicError{Op: name, Value: res.panicked})
		}
		return res.err
	}
}

// Enqueue submits fn without waiting. Errors are logged. Returns false if
// the session is closed.
func (s *Session) Enqueue(name string, fn func(*table.Table) error) bool {
	return s.queue.Enqueue(op{name: name, fn: fn})
}

// Snapshot is a convenience wrapper running Table.Snapshot through Do.
func (s *Session) Snapshot(ctx context.Context) (table.Snapshot, error) {
	var snap table.Snapshot
	err := s.Do(ctx, "snapshot", func(t *table.Table) error {
		snap = t.Snapshot()
		return nil
	})
	return snap, err
}

// Exec validates cmd, then applies it and takes a snapshot as one
// operation, so the snapshot reflects exactly that command. Commands the
// table rejects are still recorded, keeping the recorded sequence
// identical to what callers submitted.
func (s *Session) Exec(ctx context.Context, cmd Command) (any, table.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, table.Snapshot{}, err
	}

	var (
		ev   any
		snap table.Snapshot
	)
	err := s.Do(ctx, cmd.Op, func(t *table.Table) error {
		var err error
		ev, err = cmd.Apply(t)
		s.recordEntry(ctx, cmd, ev, err)
		if err != nil {
			return err
		}
		snap = t.Snapshot()
		return nil
	})
	if err != nil {
		return nil, table.Snapshot{}, err
	}
	return ev, snap, nil
}

// recordEntry hands one executed command to the recorder. CRITICAL: called
// only from Run.
func (s *Session) recordEntry(ctx context.Context, cmd Command, ev any, opErr error) {
	s.seq++
	if s.recorder == nil {
		return
	}
	entry := Entry{
		SessionID: s.id,
		Seq:       s.seq,
		Command:   cmd,
		ErrorCode: string(table.ErrorCode(opErr)),
	}
	if ev != nil {
		digest, err := record.Digest(record.DomainEvent, ev)
		if err != nil {
			s.logger.Error("event digest failed", "seq", s.seq, "op", cmd.Op, "error", err)
			return
		}
		entry.EventDigest = digest
	}
	// The caller may stop waiting; the command is applied either way.
	if err := s.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error("record command failed", "seq", s.seq, "op", cmd.Op, "error", err)
	}
}
