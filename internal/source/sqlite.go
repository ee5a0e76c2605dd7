package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/tablestate/internal/record"
)

func loadSQLite(ctx context.Context, spec Spec) ([]record.Object, error) {
	db, err := sql.Open("sqlite3", "file:"+spec.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, selectQuery(spec))
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	return scanSQLRows(rows)
}

// scanSQLRows reads a database/sql result set into records.
func scanSQLRows(rows *sql.Rows) ([]record.Object, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := []record.Object{}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(out), err)
		}
		obj := make(record.Object, len(cols))
		for i, col := range cols {
			v, err := record.FromGo(values[i])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", len(out), col, err)
			}
			obj[col] = v
		}
		out = append(out, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
