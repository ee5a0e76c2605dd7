// Package config loads declarative table configurations and binds them to
// table.Props.
//
// A configuration names columns, their sorters and filters, pagination and
// row selection. Sorters and filters are picked from a small built-in
// vocabulary and bound to Go funcs by Build:
//
//	sorter.type: "string" | "number" | "collate"
//	filter.type: "equals" | "contains" | "prefix"
//
// Two surface formats are accepted. CUE files declare a top-level `table`
// struct that is unified with the embedded #Table schema, so type errors
// carry file positions. YAML (and JSON, which YAML parses) is decoded
// strictly: unknown fields are rejected.
//
// Errors are *LoadError values carrying an E-code; see errors.go.
package config
