package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tablestate/internal/table"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		if ev.Error != "" {
			fmt.Fprintf(&buf, "  [step %d] %s -> %s\n", ev.Step, ev.Op, ev.Error)
			continue
		}
		fmt.Fprintf(&buf, "  [step %d] %s -> %s (seq %d)\n", ev.Step, ev.Op, ev.Event, ev.Seq)
	}

	return buf.String()
}

func assertPageKeys(result *Result, a Assertion) error {
	if slices.Equal(result.Final.PageKeys, a.Keys) {
		return nil
	}
	return &AssertionError{
		Type:     AssertPageKeys,
		Expected: fmt.Sprintf("%v", a.Keys),
		Actual:   fmt.Sprintf("%v", result.Final.PageKeys),
		Trace:    result.Trace,
	}
}

func assertSelectedKeys(result *Result, a Assertion) error {
	if sameKeys(result.Final.SelectedKeys, a.Keys) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSelectedKeys,
		Expected: fmt.Sprintf("%v (any order)", a.Keys),
		Actual:   fmt.Sprintf("%v", result.Final.SelectedKeys),
		Trace:    result.Trace,
	}
}

// assertEventCount counts table events, or only those named a.Event.
func assertEventCount(result *Result, a Assertion) error {
	count := 0
	for _, name := range result.EventNames() {
		if a.Event == "" || name == a.Event {
			count++
		}
	}
	if count == a.Count {
		return nil
	}

	what := "events"
	if a.Event != "" {
		what = a.Event + " events"
	}
	return &AssertionError{
		Type:     AssertEventCount,
		Expected: fmt.Sprintf("%d %s", a.Count, what),
		Actual:   fmt.Sprintf("%d", count),
		Trace:    result.Trace,
	}
}

// assertEventOrder checks that a.Events occur as a subsequence of the
// emitted events. Intervening events are allowed.
func assertEventOrder(result *Result, a Assertion) error {
	names := result.EventNames()
	next := 0
	for _, name := range names {
		if next < len(a.Events) && name == a.Events[next] {
			next++
		}
	}
	if next == len(a.Events) {
		return nil
	}
	return &AssertionError{
		Type:     AssertEventOrder,
		Expected: fmt.Sprintf("events in order: %v", a.Events),
		Actual:   fmt.Sprintf("%v (stopped at %s)", names, a.Events[next]),
		Trace:    result.Trace,
	}
}

func assertWarnings(result *Result, a Assertion) error {
	got := make([]table.WarningCode, len(result.Final.Warnings))
	for i, w := range result.Final.Warnings {
		got[i] = w.Code
	}
	if slices.Equal(got, a.Codes) {
		return nil
	}
	return &AssertionError{
		Type:     AssertWarnings,
		Expected: fmt.Sprintf("%v", a.Codes),
		Actual:   fmt.Sprintf("%v", got),
		Trace:    result.Trace,
	}
}

// EvaluateAssertions evaluates all assertions against the result and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertPageKeys:
			err = assertPageKeys(result, a)
		case AssertSelectedKeys:
			err = assertSelectedKeys(result, a)
		case AssertEventCount:
			err = assertEventCount(result, a)
		case AssertEventOrder:
			err = assertEventOrder(result, a)
		case AssertWarnings:
			err = assertWarnings(result, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}
