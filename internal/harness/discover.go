package harness

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ScenarioFileError is returned when a scenario references a file that
// does not exist.
type ScenarioFileError struct {
	Field string
	Path  string
}

// Error implements the error interface.
func (e *ScenarioFileError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Field, e.Path)
}

// FindScenarios returns every .yaml or .yml file under dir, in lexical
// order. A non-empty filter is a filepath.Match pattern applied to the
// file name without extension. Files under a "golden" directory are
// skipped.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(d.Name(), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// GoldenPath returns the golden file for a scenario file:
// <dir>/golden/<name>.golden.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}
