package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tablestate/internal/record"
)

// GoldenDir is where RunWithGolden and AssertGolden keep golden files,
// relative to the test's package directory.
const GoldenDir = "testdata/golden"

// MarshalTrace renders a run as canonical JSON followed by a newline.
// Only fields that are set appear, so adding an optional field to
// TraceEvent does not rewrite existing golden files.
func MarshalTrace(name string, result *Result) ([]byte, error) {
	trace := make(record.Array, len(result.Trace))
	for i, ev := range result.Trace {
		trace[i] = traceObject(ev)
	}

	snapshot := record.Object{
		"scenario_name": record.String(name),
		"session_id":    record.String(result.SessionID),
		"trace":         trace,
		"final": record.Object{
			"page_keys":     stringArray(result.Final.PageKeys),
			"selected_keys": stringArray(result.Final.SelectedKeys),
		},
	}

	data, err := record.MarshalCanonical(snapshot)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func traceObject(ev TraceEvent) record.Object {
	obj := record.Object{
		"step":  record.Int(ev.Step),
		"op":    record.String(ev.Op),
		"event": record.String(ev.Event),
	}
	if ev.Event == EventError {
		obj["error"] = record.String(ev.Error)
		return obj
	}
	if ev.Event == EventNone {
		return obj
	}

	obj["seq"] = record.Int(ev.Seq)
	obj["committed"] = record.Bool(ev.Committed)
	if ev.Filters != nil {
		filters := record.Object{}
		for k, v := range ev.Filters {
			filters[k] = stringArray(v)
		}
		obj["filters"] = filters
	}
	if ev.Sorter != nil {
		obj["sorter"] = record.Object{
			"column_key": record.String(ev.Sorter.ColumnKey),
			"order":      record.String(string(ev.Sorter.Order)),
		}
	}
	if ev.Pagination != nil {
		obj["pagination"] = record.Object{
			"current":   record.Int(ev.Pagination.Current),
			"page_size": record.Int(ev.Pagination.PageSize),
			"total":     record.Int(ev.Pagination.Total),
		}
	}
	if strings.HasPrefix(ev.Event, "change:") {
		obj["data_keys"] = stringArray(ev.DataKeys)
	} else {
		obj["selected_keys"] = stringArray(ev.SelectedKeys)
		if len(ev.ChangedKeys) > 0 {
			obj["changed_keys"] = stringArray(ev.ChangedKeys)
		}
	}
	return obj
}

func stringArray(ss []string) record.Array {
	arr := make(record.Array, len(ss))
	for i, s := range ss {
		arr[i] = record.String(s)
	}
	return arr
}

// RunWithGolden executes a scenario and compares its trace with
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalTrace(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
