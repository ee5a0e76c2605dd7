package harness

import "github.com/roach88/tablestate/internal/table"

// Trace event kinds that are not table events.
const (
	EventNone  = "none"
	EventError = "error"
)

// TraceEvent is one entry of a scenario trace: a table event emitted by a
// step, a step that emitted nothing, or a step that failed.
type TraceEvent struct {
	Step  int    `json:"step"`
	Op    string `json:"op"`
	Event string `json:"event"`
	Seq   int64  `json:"seq,omitempty"`
	Error string `json:"error,omitempty"`

	Committed  bool              `json:"committed,omitempty"`
	Sorter     *table.SortState  `json:"sorter,omitempty"`
	Filters    table.Filters     `json:"filters,omitempty"`
	Pagination *table.Pagination `json:"pagination,omitempty"`
	DataKeys   []string          `json:"data_keys,omitempty"`

	SelectedKeys []string `json:"selected_keys,omitempty"`
	ChangedKeys  []string `json:"changed_keys,omitempty"`
}

// FinalState is the table state after the last step.
type FinalState struct {
	PageKeys     []string        `json:"page_keys"`
	SelectedKeys []string        `json:"selected_keys"`
	Warnings     []table.Warning `json:"warnings,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	SessionID string       `json:"session_id"`
	Trace     []TraceEvent `json:"trace"`
	Final     FinalState   `json:"final"`

	// Errors lists failed expectations and assertions. Empty if Pass.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// EventNames returns the Event field of every trace entry that is a table
// event.
func (r *Result) EventNames() []string {
	var names []string
	for _, ev := range r.Trace {
		if ev.Event != EventNone && ev.Event != EventError {
			names = append(names, ev.Event)
		}
	}
	return names
}
