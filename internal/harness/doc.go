// Package harness runs table scenarios as executable contract tests.
//
// A scenario builds one table from a config and a data set, drives it
// through a list of steps (sort, filter, paginate, select) and checks the
// resulting state and events. Every step runs through a session.Session,
// so the harness exercises the same path as the HTTP surface.
//
// # Scenario Format
//
//	name: sort_then_page
//	description: "Sorting keeps the page, paging moves the window"
//	config: ../configs/people.yaml      # or an inline `table:` block
//	data:                                # or `source: rows.csv`
//	  - {id: 1, name: Ada, age: 36}
//	steps:
//	  - op: sort
//	    column: age
//	    expect:
//	      event: change:sort
//	      page_keys: ["1", "3"]
//	  - op: select
//	    index: 0
//	    expect:
//	      selected_keys: ["1"]
//	assertions:
//	  - type: event_order
//	    events: [change:sort, selection:onSelect]
//
// Paths in config and source are relative to the scenario file.
//
// # Step Ops
//
//   - sort: column
//   - filter: column, values
//   - page: page
//   - page_size: page, page_size
//   - select: index, checked (default true), shift
//   - bulk: bulk (all | removeAll | invert)
//   - custom: selection
//   - set_data: data
//   - reset_dirty
//
// # Assertion Types
//
//   - page_keys: final page keys equal keys
//   - selected_keys: final selected keys equal keys (order-insensitive)
//   - event_count: count events, optionally only those named event
//   - event_order: the named events appear in order (gaps allowed)
//   - warnings: the table raised exactly the warning codes listed
//
// # Deterministic Traces
//
// Each run starts the table on a fresh table.Clock and the session on a
// testutil.ConstantIDGenerator, so the same scenario always yields the
// same trace. Traces are serialized as canonical JSON for golden
// comparison (see RunWithGolden).
package harness
