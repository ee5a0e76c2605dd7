// Package store journals table sessions in SQLite.
//
// A journal holds one row per session (the config path, the redacted data
// source and the fingerprint of the loaded rows) and one row per command
// the session executed. Commands are stored as canonical JSON together
// with the table error code they produced and the digest of the event they
// emitted, so a later replay can prove it reached the same events.
//
// # Critical Patterns
//
// Logical time:
//   - commands are ordered by seq, NEVER by timestamps
//   - PRIMARY KEY (session_id, seq) makes writes idempotent
//
// Deterministic reads:
//   - every query carries an explicit ORDER BY
//   - session IDs are UUIDv7, so ordering by id is creation order
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: commands must reference a written session
package store
