// Package httpapi exposes one table session over HTTP.
//
// Routes:
//
//	GET  /table                 current snapshot
//	POST /table/sort            {"column": "age"}
//	POST /table/filter          {"column": "tag", "values": ["a"]}
//	POST /table/page            {"current": 2, "page_size": 20}
//	POST /table/select          {"index": 3, "checked": true, "shift": false}
//	POST /table/select/bulk     {"op": "invert"}
//	POST /table/select/custom   {"key": "odd"}
//
// Every mutation answers {"event": ..., "snapshot": ...}. The event is
// null when the operation changed nothing. Operation errors map to 4xx
// with the table error code; a request missing a required field answers
// 400 INVALID_REQUEST; a closed session answers 503.
//
// All table access goes through session.Session.Exec, so handlers on
// concurrent requests never race on the table.
package httpapi
