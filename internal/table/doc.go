// Package table implements the tabular data state engine.
//
// The engine turns a raw record array plus column, sort, filter,
// pagination and selection configuration into the exact rows to display
// and the exact selection state to expose.
//
// ARCHITECTURE:
//
// Data flows one direction:
//
//	raw records -> column keys -> sort -> filter -> page slice
//
// Selection operates beside that pipeline over flattened rows, so "select
// all" and shift-range selection do not depend on how rows are nested.
//
// Controlled vs uncontrolled:
// Every facet (filters, sort, pagination, selection) is either owned by the
// caller (controlled) or by the Table. SetProps is the single
// reconciliation pass: external values always win. A user operation on a
// controlled facet still computes the would-be next state and emits it as
// an event, but never commits it.
//
// Reconciliation order (must not change):
//  1. columns changed -> reconcile filters and sort against the new columns
//  2. recompute local data
//  3. clamp pagination
//  4. filters changed -> reset the selection dirty flag
//
// Filters must be reconciled before sorting or slicing, otherwise stale
// filter keys silently apply to renamed columns.
//
// CONCURRENCY:
// A Table is not safe for concurrent use. Every operation is a synchronous
// state transition that completes before the next one starts. Use
// session.Session to serialize access from multiple goroutines.
package table
