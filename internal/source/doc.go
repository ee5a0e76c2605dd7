// Package source reads table rows from files and databases.
//
// A source is named by a single string, parsed by Parse:
//
//	rows.json                          JSON array of objects
//	rows.yaml, rows.yml                YAML sequence of mappings
//	rows.csv                           header row, then one row per line
//	sqlite://path/to.db?table=people   SQLite table or view
//	postgres://user@host/db?table=t    Postgres table or view
//
// Database sources accept an optional order parameter naming the column
// rows are read in. Table and column names must be plain identifiers
// (optionally schema-qualified); they are quoted, never interpolated raw.
//
// Every source yields []record.Object in source order. CSV cells are
// always strings; database values go through record.FromGo.
package source
