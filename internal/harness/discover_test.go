package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))
	}
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"b_sort.yaml",
		"a_filter.yml",
		"notes.txt",
		"nested/c_select.yaml",
		"golden/b_sort.yaml",
	)

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a_filter.yml"),
		filepath.Join(dir, "b_sort.yaml"),
		filepath.Join(dir, "nested", "c_select.yaml"),
	}, files)
}

func TestFindScenarios_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "sort_basic.yaml", "sort_multi.yaml", "filter_basic.yaml")

	files, err := FindScenarios(dir, "sort_*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = FindScenarios(dir, "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}

func TestFindScenarios_MissingDir(t *testing.T) {
	_, err := FindScenarios(filepath.Join(t.TempDir(), "absent"), "")
	assert.Error(t, err)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "sort_page_select.golden"),
		GoldenPath(filepath.Join("scenarios", "sort_page_select.yaml")))
}
