package harness

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablestate/internal/table"
)

func TestLoadScenario_ResolvesPaths(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "controlled_filter_radio.yaml"))
	require.NoError(t, err)

	_, err = os.Stat(s.Config)
	assert.NoError(t, err)
	_, err = os.Stat(s.Source)
	assert.NoError(t, err)
}

func TestParseScenario_KeepsURLSources(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: db
description: rows from sqlite
source: sqlite://rows.db?table=people
table:
  columns: [{key: a}]
steps:
  - op: reset_dirty
`), "/base")
	require.NoError(t, err)
	assert.Equal(t, "sqlite://rows.db?table=people", s.Source)
}

func TestParseScenario_Steps(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: steps
description: every op
table:
  columns: [{key: a}]
steps:
  - {op: sort, column: a}
  - {op: filter, column: a, values: [x]}
  - {op: page, page: 2}
  - {op: page_size, page: 1, page_size: 5}
  - {op: select, index: 1, checked: false, shift: true}
  - {op: bulk, bulk: removeAll}
  - {op: custom, selection: odd}
  - op: set_data
    data: [{a: 1}]
  - op: reset_dirty
    expect:
      event: none
      committed: true
      total: 0
`), "")
	require.NoError(t, err)
	require.Len(t, s.Steps, 9)

	sel := s.Steps[4]
	require.NotNil(t, sel.Checked)
	assert.False(t, *sel.Checked)
	assert.True(t, sel.Shift)
	assert.Equal(t, table.BulkRemoveAll, s.Steps[5].Bulk)

	exp := s.Steps[8].Expect
	require.NotNil(t, exp)
	require.NotNil(t, exp.Total)
	assert.Equal(t, 0, *exp.Total)
	require.NotNil(t, exp.Committed)
	assert.True(t, *exp.Committed)
	assert.Nil(t, exp.PageKeys)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\ntable: {columns: [{key: a}]}\nsteps: [{op: reset_dirty}]",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\ntable: {columns: [{key: a}]}\nsteps: [{op: reset_dirty}]",
			want: "description is required",
		},
		{
			name: "no table",
			yaml: "name: n\ndescription: d\nsteps: [{op: reset_dirty}]",
			want: "one of config or table is required",
		},
		{
			name: "data and source",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\ndata: [{a: 1}]\nsource: x.csv\nsteps: [{op: reset_dirty}]",
			want: "data and source are mutually exclusive",
		},
		{
			name: "no steps",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}",
			want: "steps list is required",
		},
		{
			name: "sort without column",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\nsteps: [{op: sort}]",
			want: "steps[0]: column is required for sort",
		},
		{
			name: "page below one",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\nsteps: [{op: page, page: 0}]",
			want: "steps[0]: page must be at least 1",
		},
		{
			name: "unknown bulk",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\nsteps: [{op: bulk, bulk: some}]",
			want: `steps[0]: unknown bulk op "some"`,
		},
		{
			name: "unknown op",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\nsteps: [{op: teleport}]",
			want: `steps[0]: unknown op "teleport"`,
		},
		{
			name: "event_order without events",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\nsteps: [{op: reset_dirty}]\nassertions: [{type: event_order}]",
			want: "assertions[0]: events list is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\nsteps: [{op: reset_dirty}]\nassertions: [{type: vibes}]",
			want: `assertions[0]: unknown assertion type "vibes"`,
		},
		{
			name: "unknown field",
			yaml: "name: n\ndescription: d\ntable: {columns: [{key: a}]}\nsteps: [{op: reset_dirty, colour: red}]",
			want: "field colour not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScenario_MissingConfigFile(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: n
description: d
config: nowhere.yaml
steps: [{op: reset_dirty}]
`), t.TempDir())
	require.Error(t, err)

	var fileErr *ScenarioFileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "config", fileErr.Field)
	assert.Equal(t, "nowhere.yaml", filepath.Base(fileErr.Path))
}
