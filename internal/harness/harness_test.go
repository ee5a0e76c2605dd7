package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestScenarios(t *testing.T) {
	files, err := FindScenarios(filepath.Join("testdata", "scenarios"), "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	s := loadTestScenario(t, "sort_page_select")

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.Equal(t, "golden-session", result.SessionID)
}

func TestRun_Deterministic(t *testing.T) {
	s := loadTestScenario(t, "sort_page_select")

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	a, err := MarshalTrace(s.Name, first)
	require.NoError(t, err)
	b, err := MarshalTrace(s.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_ControlledFilterFromCSV(t *testing.T) {
	s := loadTestScenario(t, "controlled_filter_radio")

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 4)
	filter := result.Trace[1]
	assert.Equal(t, "change:filter", filter.Event)
	assert.False(t, filter.Committed)
	assert.Equal(t, []string{"blocked"}, filter.Filters["status"])
	assert.Nil(t, filter.Pagination)

	assert.Equal(t, EventError, result.Trace[3].Event)
	assert.Equal(t, "PAGINATION_DISABLED", result.Trace[3].Error)
}

const inlineTable = `
table:
  row_key: id
  columns:
    - key: n
      sorter: {type: number}
  pagination: {page_size: 3}
  selection:
    selections:
      - {key: odd, text: Odd rows, action: select, when: {field: id, in: [a, c]}}
data:
  - {id: a, n: 3}
  - {id: b, n: 1}
  - {id: c, n: 2}
  - {id: d, n: 5}
`

func parseInline(t *testing.T, body string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte("name: inline\ndescription: inline\n"+inlineTable+body), "")
	require.NoError(t, err)
	return s
}

func TestRun_BulkCustomAndSetData(t *testing.T) {
	s := parseInline(t, `
steps:
  - op: bulk
    bulk: all
    expect:
      event: selection:onSelectAll
      selected_keys: [a, b, c]
  - op: bulk
    bulk: invert
    expect:
      event: selection:onSelectInvert
      selected_keys: []
  - op: custom
    selection: odd
    expect:
      event: selection:custom
      selected_keys: [a, c]
      dirty: true
  - op: reset_dirty
    expect:
      event: none
      dirty: false
  - op: set_data
    data:
      - {id: x, n: 9}
    expect:
      event: none
      page_keys: [x]
      total: 1
  - op: page_size
    page: 1
    page_size: -1
    expect:
      error: INVALID_PAGE_SIZE
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"x"}, result.Final.PageKeys)
}

func TestRun_SeqRestartsEveryRun(t *testing.T) {
	s := parseInline(t, `
steps:
  - {op: sort, column: n}
  - {op: bulk, bulk: all}
`)
	var seqs [][]int64
	for range 2 {
		result, err := Run(s)
		require.NoError(t, err)
		var run []int64
		for _, ev := range result.Trace {
			run = append(run, ev.Seq)
		}
		seqs = append(seqs, run)
	}
	assert.Equal(t, []int64{1, 2}, seqs[0])
	assert.Equal(t, seqs[0], seqs[1])
}

func TestRun_ReportsFailedExpectations(t *testing.T) {
	s := parseInline(t, `
steps:
  - op: sort
    column: n
    expect:
      page_keys: [a, b, c]
      event: change:paginate
  - op: sort
    column: missing
  - op: page
    page: 2
    expect:
      error: UNKNOWN_COLUMN
assertions:
  - type: event_count
    count: 7
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "steps[0] sort: expected event change:paginate, got change:sort")
	assert.Contains(t, result.Errors[1], "page_keys: expected [a b c], got [b c a]")
	assert.Contains(t, result.Errors[2], "steps[1] sort: unexpected error")
	assert.Contains(t, result.Errors[3], "expected error UNKNOWN_COLUMN")
	assert.Contains(t, result.Errors[4], "Assertion failed: event_count")
}

func TestRun_MissingSourceFails(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: broken
description: source is missing
source: nope.csv
table:
  columns: [{key: a}]
steps:
  - op: reset_dirty
`), t.TempDir())
	require.NoError(t, err)

	_, err = Run(s)
	require.Error(t, err)
}
