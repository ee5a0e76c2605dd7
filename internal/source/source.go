package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/roach88/tablestate/internal/record"
)

// Kind identifies the format of a source.
type Kind string

const (
	KindJSON     Kind = "json"
	KindYAML     Kind = "yaml"
	KindCSV      Kind = "csv"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Spec describes where rows come from.
type Spec struct {
	Kind Kind

	// Path is the file path for file and SQLite sources.
	Path string

	// DSN is the Postgres connection string with table and order removed.
	DSN string

	// Table and OrderBy apply to database sources.
	Table   string
	OrderBy string
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Parse turns a source string into a Spec.
func Parse(raw string) (Spec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Spec{}, fmt.Errorf("empty source")
	}

	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		return parseDatabase(raw, KindSQLite)
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return parseDatabase(raw, KindPostgres)
	}

	switch strings.ToLower(filepath.Ext(raw)) {
	case ".json":
		return Spec{Kind: KindJSON, Path: raw}, nil
	case ".yaml", ".yml":
		return Spec{Kind: KindYAML, Path: raw}, nil
	case ".csv":
		return Spec{Kind: KindCSV, Path: raw}, nil
	default:
		return Spec{}, fmt.Errorf("unsupported source %q: expected .json, .yaml, .yml, .csv, sqlite:// or postgres://", raw)
	}
}

func parseDatabase(raw string, kind Kind) (Spec, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid source URL: %w", err)
	}

	q := u.Query()
	spec := Spec{
		Kind:    kind,
		Table:   q.Get("table"),
		OrderBy: q.Get("order"),
	}
	if spec.Table == "" {
		return Spec{}, fmt.Errorf("%s source requires a table parameter", kind)
	}
	if err := checkIdent(spec.Table); err != nil {
		return Spec{}, err
	}
	if spec.OrderBy != "" {
		if err := checkIdent(spec.OrderBy); err != nil {
			return Spec{}, err
		}
	}

	q.Del("table")
	q.Del("order")
	u.RawQuery = q.Encode()

	if kind == KindSQLite {
		// sqlite://rows.db keeps the file in Host; sqlite:///abs/rows.db in Path.
		spec.Path = u.Host + u.Path
		if spec.Path == "" {
			return Spec{}, fmt.Errorf("sqlite source requires a database path")
		}
		return spec, nil
	}

	spec.DSN = u.String()
	return spec, nil
}

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// quoteIdentifier quotes each dot-separated part of a checked identifier.
func quoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}

// selectQuery builds the read query for a database source.
func selectQuery(spec Spec) string {
	q := "SELECT * FROM " + quoteIdentifier(spec.Table)
	if spec.OrderBy != "" {
		q += " ORDER BY " + quoteIdentifier(spec.OrderBy)
	}
	return q
}

// String renders the source for logs and events. Postgres passwords are
// redacted.
func (s Spec) String() string {
	switch s.Kind {
	case KindSQLite:
		return "sqlite://" + s.Path + "?table=" + s.Table
	case KindPostgres:
		dsn := s.DSN
		if u, err := url.Parse(s.DSN); err == nil {
			dsn = u.Redacted()
		}
		return dsn + " table=" + s.Table
	default:
		return s.Path
	}
}

// Load reads every row the source holds.
func Load(ctx context.Context, spec Spec) ([]record.Object, error) {
	var (
		rows []record.Object
		err  error
	)
	switch spec.Kind {
	case KindJSON:
		rows, err = loadJSON(spec.Path)
	case KindYAML:
		rows, err = loadYAML(spec.Path)
	case KindCSV:
		rows, err = loadCSV(spec.Path)
	case KindSQLite:
		rows, err = loadSQLite(ctx, spec)
	case KindPostgres:
		rows, err = loadPostgres(ctx, spec)
	default:
		return nil, fmt.Errorf("unknown source kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", spec, err)
	}
	return rows, nil
}

// LoadString parses raw and loads it.
func LoadString(ctx context.Context, raw string) ([]record.Object, error) {
	spec, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Load(ctx, spec)
}
