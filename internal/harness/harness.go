package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/tablestate/internal/config"
	"github.com/roach88/tablestate/internal/logging"
	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/session"
	"github.com/roach88/tablestate/internal/source"
	"github.com/roach88/tablestate/internal/table"
	"github.com/roach88/tablestate/internal/testutil"
)

// Harness runs one scenario against one session.
type Harness struct {
	sess     *session.Session
	clock    *table.Clock
	recorder *testutil.EventRecorder
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Build table props from the config and load the rows
//  2. Start a session on a deterministic clock
//  3. Run each step through the session, tracing its events and checking
//     its expect clause
//  4. Evaluate assertions against the trace and final state
//
// A returned error means the scenario could not run at all. Failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, logging.Discard())
}

// RunContext is Run with a caller context and logger.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	props, err := buildProps(ctx, scenario)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		clock:    table.NewClock(),
		recorder: &testutil.EventRecorder{},
		logger:   logger.With("scenario", scenario.Name),
	}
	h.recorder.Hook(&props)

	tbl := table.New(props, table.WithClock(h.clock), table.WithLogger(h.logger))
	h.sess = session.New(tbl,
		session.WithIDGenerator(testutil.NewConstantIDGenerator(scenario.SessionID)),
		session.WithLogger(h.logger),
	)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.sess.Run(runCtx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	result := NewResult()
	result.SessionID = h.sess.ID()

	for i, step := range scenario.Steps {
		if err := h.executeStep(runCtx, i, step, result); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}

	err = h.sess.Do(runCtx, "final", func(t *table.Table) error {
		result.Final = FinalState{
			PageKeys:     t.PageKeys(),
			SelectedKeys: t.SelectedKeys(),
			Warnings:     t.Warnings(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read final state: %w", err)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func buildProps(ctx context.Context, scenario *Scenario) (table.Props, error) {
	cfg := scenario.Table
	if scenario.Config != "" {
		loaded, err := config.Load(scenario.Config)
		if err != nil {
			return table.Props{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else if errs := config.Validate(cfg); len(errs) > 0 {
		return table.Props{}, fmt.Errorf("inline table: %w", errors.Join(errs...))
	}

	props, err := config.Build(cfg)
	if err != nil {
		return table.Props{}, fmt.Errorf("build table: %w", err)
	}

	switch {
	case scenario.Source != "":
		rows, err := source.LoadString(ctx, scenario.Source)
		if err != nil {
			return table.Props{}, err
		}
		props.DataSource = rows
	default:
		rows, err := convertRows(scenario.Data)
		if err != nil {
			return table.Props{}, fmt.Errorf("data: %w", err)
		}
		props.DataSource = rows
	}
	return props, nil
}

// convertRows converts YAML-decoded rows into records.
func convertRows(data []map[string]any) ([]record.Object, error) {
	rows := make([]record.Object, len(data))
	for i, raw := range data {
		v, err := record.FromGo(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = v.(record.Object)
	}
	return rows, nil
}

// executeStep applies one step on the session goroutine, traces the events
// it produced and checks its expect clause against the state right after
// it.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) error {
	var (
		opErr  error
		trace  []TraceEvent
		snap   table.Snapshot
		events []testutil.Recorded
	)

	before := h.recorder.Len()
	err := h.sess.Do(ctx, step.Op, func(t *table.Table) error {
		opErr = applyStep(t, step)
		events = h.recorder.Since(before)
		trace = traceStep(t, i, step.Op, events, opErr)
		snap = t.Snapshot()
		return nil
	})
	if err != nil {
		return err
	}

	var tblErr *table.OpError
	if opErr != nil && !errors.As(opErr, &tblErr) {
		return opErr
	}

	result.Trace = append(result.Trace, trace...)
	for _, msg := range checkExpect(i, step, opErr, events, snap) {
		result.AddError(msg)
	}

	h.logger.Debug("step completed",
		"step", i,
		"op", step.Op,
		"events", len(events),
		"error", table.ErrorCode(opErr),
	)
	return nil
}

// applyStep performs the step's operation. Events reach the recorder via
// the table callbacks, so only the error matters here.
func applyStep(t *table.Table, step Step) error {
	var err error
	switch step.Op {
	case OpSort:
		_, err = t.ToggleSort(step.Column)
	case OpFilter:
		_, err = t.SetFilter(step.Column, step.Values)
	case OpPage:
		_, err = t.ChangePage(step.Page)
	case OpPageSize:
		_, err = t.ChangePageSize(step.Page, step.PageSize)
	case OpSelect:
		checked := step.Checked == nil || *step.Checked
		_, err = t.Select(step.Index, checked, step.Shift)
	case OpBulk:
		_, err = t.BulkSelect(step.Bulk)
	case OpCustom:
		_, err = t.CustomSelect(step.Selection)
	case OpSetData:
		rows, convErr := convertRows(step.Data)
		if convErr != nil {
			return convErr
		}
		t.SetDataSource(rows)
	case OpResetDirty:
		t.ResetDirty()
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return err
}

// traceStep turns a step outcome into trace entries. CRITICAL: called on
// the session goroutine, since it resolves row keys through t.
func traceStep(t *table.Table, i int, op string, events []testutil.Recorded, opErr error) []TraceEvent {
	if opErr != nil {
		return []TraceEvent{{Step: i, Op: op, Event: EventError, Error: string(table.ErrorCode(opErr))}}
	}
	if len(events) == 0 {
		return []TraceEvent{{Step: i, Op: op, Event: EventNone}}
	}

	out := make([]TraceEvent, 0, len(events))
	for _, ev := range events {
		te := TraceEvent{Step: i, Op: op, Event: ev.Name(), Seq: ev.Seq()}
		switch {
		case ev.Change != nil:
			c := ev.Change
			te.Committed = c.Committed
			te.Filters = activeFilters(c.Filters)
			te.Pagination = c.Pagination
			te.DataKeys = keysOf(t, c.Extra.CurrentDataSource)
			if c.Sorter.Order != table.SortNone {
				te.Sorter = &table.SortState{ColumnKey: c.Sorter.ColumnKey, Order: c.Sorter.Order}
			}
		case ev.Selection != nil:
			s := ev.Selection
			te.Committed = s.Committed
			te.SelectedKeys = slices.Clone(s.SelectedKeys)
			te.ChangedKeys = slices.Clone(s.ChangedKeys)
		}
		out = append(out, te)
	}
	return out
}

func keysOf(t *table.Table, rows []record.Object) []string {
	keys := make([]string, len(rows))
	for i, rec := range rows {
		keys[i] = t.RowKeyOf(rec, i)
	}
	return keys
}

func activeFilters(f table.Filters) table.Filters {
	out := table.Filters{}
	for _, k := range f.Active() {
		out[k] = f[k]
	}
	return out
}

// checkExpect compares a step's outcome with its expect clause.
func checkExpect(i int, step Step, opErr error, events []testutil.Recorded, snap table.Snapshot) []string {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf("steps[%d] %s: ", i, step.Op)+fmt.Sprintf(format, args...))
	}

	exp := step.Expect
	if exp == nil {
		exp = &Expect{}
	}

	gotCode := string(table.ErrorCode(opErr))
	if gotCode != exp.Error {
		if exp.Error == "" {
			fail("unexpected error: %v", opErr)
		} else {
			fail("expected error %s, got %q", exp.Error, gotCode)
		}
	}

	if exp.Event != "" {
		switch {
		case exp.Event == EventNone:
			if len(events) != 0 {
				fail("expected no event, got %d", len(events))
			}
		case len(events) != 1:
			fail("expected one %s event, got %d", exp.Event, len(events))
		case events[0].Name() != exp.Event:
			fail("expected event %s, got %s", exp.Event, events[0].Name())
		}
	}
	if exp.Committed != nil {
		if len(events) == 0 {
			fail("expected committed=%t, but no event was emitted", *exp.Committed)
		} else if got := committedOf(events[len(events)-1]); got != *exp.Committed {
			fail("expected committed=%t, got %t", *exp.Committed, got)
		}
	}

	if exp.PageKeys != nil && !slices.Equal(*exp.PageKeys, snap.PageKeys) {
		fail("page_keys: expected %v, got %v", *exp.PageKeys, snap.PageKeys)
	}
	if exp.SelectedKeys != nil && !sameKeys(*exp.SelectedKeys, snap.SelectedKeys) {
		fail("selected_keys: expected %v, got %v", *exp.SelectedKeys, snap.SelectedKeys)
	}
	if exp.Sort != nil && *exp.Sort != snap.Sort {
		fail("sort: expected %+v, got %+v", *exp.Sort, snap.Sort)
	}
	if exp.Current != 0 || exp.PageSize != 0 {
		if snap.Pagination == nil {
			fail("pagination: expected enabled, got disabled")
		} else {
			if exp.Current != 0 && exp.Current != snap.Pagination.Current {
				fail("current: expected %d, got %d", exp.Current, snap.Pagination.Current)
			}
			if exp.PageSize != 0 && exp.PageSize != snap.Pagination.PageSize {
				fail("page_size: expected %d, got %d", exp.PageSize, snap.Pagination.PageSize)
			}
		}
	}
	if exp.Total != nil && *exp.Total != snap.Total {
		fail("total: expected %d, got %d", *exp.Total, snap.Total)
	}
	if exp.Dirty != nil && *exp.Dirty != snap.Dirty {
		fail("dirty: expected %t, got %t", *exp.Dirty, snap.Dirty)
	}
	return errs
}

func committedOf(ev testutil.Recorded) bool {
	if ev.Change != nil {
		return ev.Change.Committed
	}
	return ev.Selection.Committed
}

// sameKeys compares key sets ignoring order.
func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
