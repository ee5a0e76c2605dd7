package source

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roach88/tablestate/internal/record"
)

func loadPostgres(ctx context.Context, spec Spec) ([]record.Object, error) {
	poolConfig, err := pgxpool.ParseConfig(spec.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	rows, err := pool.Query(ctx, selectQuery(spec))
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	return collectPgRows(rows)
}

func collectPgRows(rows pgx.Rows) ([]record.Object, error) {
	fields := rows.FieldDescriptions()
	out := []record.Object{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(out), err)
		}
		obj := make(record.Object, len(fields))
		for i, fd := range fields {
			v, err := pgValue(values[i])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", len(out), fd.Name, err)
			}
			obj[fd.Name] = v
		}
		out = append(out, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// pgValue converts the pgx types record.FromGo does not know about.
func pgValue(v any) (record.Value, error) {
	switch val := v.(type) {
	case [16]byte:
		return record.String(uuid.UUID(val).String()), nil
	case pgtype.Numeric:
		if !val.Valid {
			return record.Null{}, nil
		}
		f, err := val.Float64Value()
		if err != nil {
			return nil, err
		}
		return record.FromGo(f.Float64)
	default:
		return record.FromGo(v)
	}
}
