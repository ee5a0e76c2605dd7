package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeValidate(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommand_Valid(t *testing.T) {
	for _, path := range []string{"testdata/people.yaml", "testdata/people.cue"} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			out, err := executeValidate(t, "text", path)
			require.NoError(t, err)
			assert.Contains(t, out, "✓ Config valid (3 column(s))")
		})
	}
}

func TestValidateCommand_ValidJSON(t *testing.T) {
	out, err := executeValidate(t, "json", "testdata/people.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 3, resp.Data.Columns)
}

func TestValidateCommand_ReportsEveryIssue(t *testing.T) {
	out, err := executeValidate(t, "json", "testdata/broken.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed with 4 error(s)")

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  CLIError         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)

	codes := make([]string, len(resp.Data.Errors))
	for i, issue := range resp.Data.Errors {
		codes[i] = issue.Code
	}
	assert.Equal(t, []string{"E202", "E203", "E208", "E206"}, codes)
	assert.Equal(t, "E202", resp.Error.Code)
	assert.Equal(t, "columns[0].sorter", resp.Data.Errors[1].Field)
}

func TestValidateCommand_TextIssues(t *testing.T) {
	out, err := executeValidate(t, "text", "testdata/broken.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, `E203: columns[0].sorter: unknown sorter type "date"`)
	assert.Contains(t, out, `E206: selection.type: invalid selection type "grid"`)
}

func TestValidateCommand_ParseErrorIsValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  - key: a\n    colour: red\n"), 0644))

	out, err := executeValidate(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E004")
}

func TestValidateCommand_CommandErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", "testdata/nope.yaml", "E005"},
		{"unsupported extension", "testdata/people.csv", "E008"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeValidate(t, "text", tt.path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestValidateCommand_MissingArgs(t *testing.T) {
	_, err := executeValidate(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
