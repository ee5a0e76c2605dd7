package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/table"
)

func newTestSession(t *testing.T, props table.Props) (*Session, func()) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tbl := table.New(props, table.WithLogger(logger))
	s := New(tbl, WithIDGenerator(NewFixedGenerator("session-1")), WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	return s, func() {
		cancel()
		<-done
	}
}

func rows(n int) []record.Object {
	out := make([]record.Object, n)
	for i := range out {
		out[i] = record.NewObject(record.O("key", record.Int(i+1)))
	}
	return out
}

func TestSession_DoAppliesInOrder(t *testing.T) {
	s, stop := newTestSession(t, table.Props{DataSource: rows(30)})
	defer stop()
	ctx := context.Background()

	assert.Equal(t, "session-1", s.ID())

	require.NoError(t, s.Do(ctx, "page", func(tbl *table.Table) error {
		_, err := tbl.ChangePage(2)
		return err
	}))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Pagination.Current)
	assert.Equal(t, "11", snap.PageKeys[0])
}

func TestSession_ConcurrentCallersAreSerialized(t *testing.T) {
	s, stop := newTestSession(t, table.Props{
		DataSource:   rows(100),
		Pagination:   &table.PaginationConfig{Disabled: true},
		RowSelection: &table.RowSelection{},
	})
	defer stop()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			err := s.Do(ctx, "select", func(tbl *table.Table) error {
				_, err := tbl.ToggleSingle(index, true, false)
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.SelectedKeys, 100)
}

func TestSession_ErrorIsReturned(t *testing.T) {
	s, stop := newTestSession(t, table.Props{DataSource: rows(3)})
	defer stop()

	err := s.Do(context.Background(), "sort", func(tbl *table.Table) error {
		_, err := tbl.ToggleSort("missing")
		return err
	})
	assert.True(t, table.IsOpError(err, table.ErrCodeUnknownColumn))
}

func TestSession_PanicReachesCaller(t *testing.T) {
	s, stop := newTestSession(t, table.Props{DataSource: rows(3)})
	defer stop()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		var pe *PanicError
		require.ErrorAs(t, r.(error), &pe)
		assert.Equal(t, "boom", pe.Value)
		assert.Equal(t, "explode", pe.Op)
	}()
	_ = s.Do(context.Background(), "explode", func(*table.Table) error { panic("boom") })
}

func TestSession_SurvivesPanickingEnqueue(t *testing.T) {
	s, stop := newTestSession(t, table.Props{DataSource: rows(3)})
	defer stop()

	require.True(t, s.Enqueue("explode", func(*table.Table) error { panic("boom") }))
	require.True(t, s.Enqueue("fail", func(*table.Table) error { return errors.New("nope") }))

	_, err := s.Snapshot(context.Background())
	assert.NoError(t, err, "loop keeps running after a failed operation")
}

func TestSession_StopRejectsNewWork(t *testing.T) {
	s, stop := newTestSession(t, table.Props{})
	defer stop()

	s.Stop()
	err := s.Do(context.Background(), "late", func(*table.Table) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, s.Enqueue("late", func(*table.Table) error { return nil }))
}

func TestSession_RunReturnsOnCancel(t *testing.T) {
	s := New(table.New(table.Props{}), WithIDGenerator(NewFixedGenerator("s")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSession_DoHonorsContext(t *testing.T) {
	// No Run loop: the operation is never picked up.
	s := New(table.New(table.Props{}), WithIDGenerator(NewFixedGenerator("s")))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Do(ctx, "stuck", func(*table.Table) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
}
