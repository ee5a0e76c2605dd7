// Package record provides the value types that table rows are built from.
//
// This package contains value definitions only. All other internal packages
// import record; record imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Rows are Objects; nested rows live under a configurable children field
//   - Null is an explicit value, never a Go nil inside a container
//   - Canonical JSON is the only serialization used for fingerprints and
//     golden traces
package record
