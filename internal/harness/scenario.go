package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tablestate/internal/config"
	"github.com/roach88/tablestate/internal/table"
)

// Scenario defines one table contract test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is a table config file (.cue, .yaml, .yml, .json or a CUE
	// package directory). Exactly one of Config and Table is set.
	Config string `yaml:"config,omitempty"`

	// Table is an inline table config.
	Table *config.TableConfig `yaml:"table,omitempty"`

	// Data holds the rows inline. At most one of Data and Source is set;
	// with neither the table starts empty.
	Data []map[string]any `yaml:"data,omitempty"`

	// Source names a row source (see package source).
	Source string `yaml:"source,omitempty"`

	// SessionID fixes the session ID shown in traces. Default
	// testutil.DefaultSessionID.
	SessionID string `yaml:"session_id,omitempty"`

	// Steps drive the table in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and the final state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one interaction with the table.
type Step struct {
	Op string `yaml:"op"`

	Column    string           `yaml:"column,omitempty"`
	Values    []string         `yaml:"values,omitempty"`
	Page      int              `yaml:"page,omitempty"`
	PageSize  int              `yaml:"page_size,omitempty"`
	Index     int              `yaml:"index,omitempty"`
	Checked   *bool            `yaml:"checked,omitempty"`
	Shift     bool             `yaml:"shift,omitempty"`
	Bulk      table.BulkOp     `yaml:"bulk,omitempty"`
	Selection string           `yaml:"selection,omitempty"`
	Data      []map[string]any `yaml:"data,omitempty"`

	// Expect checks the state right after the step. Nil checks only that
	// the step did not fail.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Step ops.
const (
	OpSort       = "sort"
	OpFilter     = "filter"
	OpPage       = "page"
	OpPageSize   = "page_size"
	OpSelect     = "select"
	OpBulk       = "bulk"
	OpCustom     = "custom"
	OpSetData    = "set_data"
	OpResetDirty = "reset_dirty"
)

// Expect lists what must hold after a step. Unset fields are not checked.
type Expect struct {
	// Error is the expected table error code. Empty means the step must
	// succeed.
	Error string `yaml:"error,omitempty"`

	// Event is the name of the single event the step must emit, or
	// "none".
	Event     string `yaml:"event,omitempty"`
	Committed *bool  `yaml:"committed,omitempty"`

	PageKeys     *[]string        `yaml:"page_keys,omitempty"`
	SelectedKeys *[]string        `yaml:"selected_keys,omitempty"`
	Sort         *table.SortState `yaml:"sort,omitempty"`
	Current      int              `yaml:"current,omitempty"`
	PageSize     int              `yaml:"page_size,omitempty"`
	Total        *int             `yaml:"total,omitempty"`
	Dirty        *bool            `yaml:"dirty,omitempty"`
}

// Assertion validates the whole run.
type Assertion struct {
	Type string `yaml:"type"`

	// Keys is used by page_keys and selected_keys.
	Keys []string `yaml:"keys,omitempty"`

	// Event optionally restricts event_count to one event name.
	Event string `yaml:"event,omitempty"`

	// Count is the expected number for event_count.
	Count int `yaml:"count,omitempty"`

	// Events is the expected order for event_order.
	Events []string `yaml:"events,omitempty"`

	// Codes are the expected warning codes, in order.
	Codes []table.WarningCode `yaml:"codes,omitempty"`
}

// Assertion type constants.
const (
	AssertPageKeys     = "page_keys"
	AssertSelectedKeys = "selected_keys"
	AssertEventCount   = "event_count"
	AssertEventOrder   = "event_order"
	AssertWarnings     = "warnings"
)

// LoadScenario reads and parses a scenario YAML file. Config and Source
// paths are resolved relative to the file. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML, resolving relative paths against
// baseDir.
func ParseScenario(data []byte, baseDir string) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) && baseDir != "" {
		scenario.Config = filepath.Join(baseDir, scenario.Config)
	}
	if isFileSource(scenario.Source) && !filepath.IsAbs(scenario.Source) && baseDir != "" {
		scenario.Source = filepath.Join(baseDir, scenario.Source)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// isFileSource reports whether src is a plain path rather than a URL.
func isFileSource(src string) bool {
	return src != "" && !strings.Contains(src, "://")
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Config == "" && s.Table == nil:
		return fmt.Errorf("one of config or table is required")
	case s.Config != "" && s.Table != nil:
		return fmt.Errorf("config and table are mutually exclusive")
	}
	if s.Config != "" {
		if _, err := os.Stat(s.Config); os.IsNotExist(err) {
			return &ScenarioFileError{Field: "config", Path: s.Config}
		}
	}
	if s.Data != nil && s.Source != "" {
		return fmt.Errorf("data and source are mutually exclusive")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i := range s.Steps {
		if err := validateStep(i, &s.Steps[i]); err != nil {
			return err
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(i int, st *Step) error {
	switch st.Op {
	case OpSort:
		if st.Column == "" {
			return fmt.Errorf("steps[%d]: column is required for sort", i)
		}
	case OpFilter:
		if st.Column == "" {
			return fmt.Errorf("steps[%d]: column is required for filter", i)
		}
	case OpPage:
		if st.Page < 1 {
			return fmt.Errorf("steps[%d]: page must be at least 1", i)
		}
	case OpPageSize:
		if st.PageSize == 0 {
			return fmt.Errorf("steps[%d]: page_size is required", i)
		}
	case OpSelect:
		if st.Index < 0 {
			return fmt.Errorf("steps[%d]: index must be non-negative", i)
		}
	case OpBulk:
		if !st.Bulk.Valid() {
			return fmt.Errorf("steps[%d]: unknown bulk op %q", i, st.Bulk)
		}
	case OpCustom:
		if st.Selection == "" {
			return fmt.Errorf("steps[%d]: selection is required for custom", i)
		}
	case OpSetData, OpResetDirty:
	case "":
		return fmt.Errorf("steps[%d]: op is required", i)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", i, st.Op)
	}
	return nil
}

func validateAssertion(i int, a *Assertion) error {
	switch a.Type {
	case AssertPageKeys, AssertSelectedKeys, AssertWarnings:
	case AssertEventCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", i)
		}
	case AssertEventOrder:
		if len(a.Events) == 0 {
			return fmt.Errorf("assertions[%d]: events list is required for event_order", i)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", i)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
	}
	return nil
}
