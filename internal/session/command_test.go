package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablestate/internal/table"
)

func TestCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr string
	}{
		{"sort", Command{Op: OpSort, Column: "age"}, ""},
		{"sort without column", Command{Op: OpSort}, "column is required"},
		{"filter without column", Command{Op: OpFilter, Values: []string{"a"}}, "column is required"},
		{"page", Command{Op: OpPage, Current: 2}, ""},
		{"select", Command{Op: OpSelect}, ""},
		{"bulk", Command{Op: OpSelectBulk, Bulk: table.BulkInvert}, ""},
		{"bad bulk", Command{Op: OpSelectBulk, Bulk: "some"}, `unknown bulk op "some"`},
		{"custom without key", Command{Op: OpSelectCustom}, "key is required"},
		{"unknown op", Command{Op: "drop"}, `unknown op "drop"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidCommand)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCommand_ApplyReturnsUntypedNil(t *testing.T) {
	tbl := table.New(table.Props{
		DataSource: rows(3),
		Columns:    []*table.Column{{Key: "key", DataIndex: "key"}},
	})

	// Unchanged filter: no event, and the interface must be a plain nil.
	ev, err := Command{Op: OpFilter, Column: "key"}.Apply(tbl)
	require.NoError(t, err)
	assert.True(t, ev == nil)

	_, err = Command{Op: OpSort, Column: "missing"}.Apply(tbl)
	assert.True(t, table.IsOpError(err, table.ErrCodeUnknownColumn))

	ev, err = Command{Op: OpPage, Current: 1}.Apply(tbl)
	require.NoError(t, err)
	_, ok := ev.(*table.ChangeEvent)
	assert.True(t, ok)
}

func TestSession_ExecRecordsCommands(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := &MemoryRecorder{}
	s := New(table.New(table.Props{DataSource: rows(30)}, table.WithLogger(logger)),
		WithIDGenerator(NewFixedGenerator("session-1")),
		WithLogger(logger),
		WithRecorder(rec),
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	ev, snap, err := s.Exec(ctx, Command{Op: OpPage, Current: 2})
	require.NoError(t, err)
	require.IsType(t, &table.ChangeEvent{}, ev)
	assert.Equal(t, "11", snap.PageKeys[0])

	_, _, err = s.Exec(ctx, Command{Op: OpSelect, Index: 0, Checked: true})
	assert.True(t, table.IsOpError(err, table.ErrCodeSelectionDisabled))

	// Invalid commands never reach the table or the recorder.
	_, _, err = s.Exec(ctx, Command{Op: OpSort})
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, snap, err = s.Exec(ctx, Command{Op: OpPage, Current: 3, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"11", "12", "13", "14", "15"}, snap.PageKeys)

	cancel()
	<-done

	require.Len(t, rec.Entries, 3)
	for i, e := range rec.Entries {
		assert.Equal(t, "session-1", e.SessionID)
		assert.Equal(t, int64(i+1), e.Seq)
	}
	assert.Len(t, rec.Entries[0].EventDigest, 64)
	assert.Empty(t, rec.Entries[0].ErrorCode)
	assert.Equal(t, "SELECTION_DISABLED", rec.Entries[1].ErrorCode)
	assert.Empty(t, rec.Entries[1].EventDigest)
	assert.Equal(t, Command{Op: OpPage, Current: 3, PageSize: 5}, rec.Entries[2].Command)
	assert.NotEqual(t, rec.Entries[0].EventDigest, rec.Entries[2].EventDigest)
}
