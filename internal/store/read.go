package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tablestate/internal/session"
)

// ErrNotFound is returned when a session is not in the journal.
var ErrNotFound = errors.New("session not found")

// ReadSession returns one session.
func (s *Store) ReadSession(ctx context.Context, id string) (SessionRecord, error) {
	var rec SessionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, config, source, data_hash FROM sessions WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Config, &rec.Source, &rec.DataHash)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return rec, fmt.Errorf("read session: %w", err)
	}
	return rec, nil
}

// ListSessions returns every session, oldest first.
//
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ListSessions(ctx context.Context) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, config, source, data_hash FROM sessions
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []SessionRecord{}
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.ID, &rec.Config, &rec.Source, &rec.DataHash); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// LatestSession returns the most recently created session.
func (s *Store) LatestSession(ctx context.Context) (SessionRecord, error) {
	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return SessionRecord{}, err
	}
	if len(sessions) == 0 {
		return SessionRecord{}, fmt.Errorf("%w: journal is empty", ErrNotFound)
	}
	return sessions[len(sessions)-1], nil
}

// ReadCommands returns the commands of one session ordered by seq.
//
// Returns an empty slice (not nil) if the session has none.
func (s *Store) ReadCommands(ctx context.Context, sessionID string) ([]session.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, params, error_code, event_digest
		FROM commands
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	entries := []session.Entry{}
	for rows.Next() {
		e := session.Entry{SessionID: sessionID}
		var params string
		if err := rows.Scan(&e.Seq, &params, &e.ErrorCode, &e.EventDigest); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		if e.Command, err = unmarshalCommand(params); err != nil {
			return nil, fmt.Errorf("command seq %d: %w", e.Seq, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commands: %w", err)
	}
	return entries, nil
}

// LastSeq returns the highest command seq of a session, or 0.
func (s *Store) LastSeq(ctx context.Context, sessionID string) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM commands WHERE session_id = ?`, sessionID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}

// CountByOp returns how many commands of each op a session executed.
func (s *Store) CountByOp(ctx context.Context, sessionID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT op, COUNT(*) FROM commands
		WHERE session_id = ?
		GROUP BY op
		ORDER BY op COLLATE BINARY ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count commands: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			op string
			n  int
		)
		if err := rows.Scan(&op, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[op] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}
