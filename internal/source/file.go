package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tablestate/internal/record"
)

func loadJSON(path string) ([]record.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return record.DecodeRows(data)
}

func loadYAML(path string) ([]record.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		return []record.Object{}, nil
	}

	v, err := record.FromGo(raw)
	if err != nil {
		return nil, err
	}
	return record.RowsFromValue(v)
}

// loadCSV maps each data line onto the header row. Short lines leave the
// trailing fields absent; long lines are an error.
func loadCSV(path string) ([]record.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []record.Object{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	rows := []record.Object{}
	for line := 2; ; line++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(fields) > len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(fields), len(header))
		}

		obj := make(record.Object, len(fields))
		for i, cell := range fields {
			obj[header[i]] = record.String(cell)
		}
		rows = append(rows, obj)
	}
	return rows, nil
}
