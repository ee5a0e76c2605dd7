package store

import (
	"context"
	"fmt"

	"github.com/roach88/tablestate/internal/session"
)

// SessionRecord describes a journaled session.
type SessionRecord struct {
	ID string
	// Config is the path of the table configuration.
	Config string
	// Source is the data source with credentials redacted.
	Source string
	// DataHash is the record.Fingerprint of the rows the session started
	// with.
	DataHash string
}

// WriteSession inserts a session. Uses ON CONFLICT(id) DO NOTHING, so
// writing the same session twice is a no-op.
func (s *Store) WriteSession(ctx context.Context, rec SessionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, config, source, data_hash)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rec.ID, rec.Config, rec.Source, rec.DataHash)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Record appends one executed command. The session must already be
// written. A second write for the same (session, seq) is ignored.
func (s *Store) Record(ctx context.Context, e session.Entry) error {
	params, err := marshalCommand(e.Command)
	if err != nil {
		return fmt.Errorf("record command: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO commands (session_id, seq, op, params, error_code, event_digest)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`, e.SessionID, e.Seq, e.Command.Op, params, e.ErrorCode, e.EventDigest)
	if err != nil {
		return fmt.Errorf("record command: %w", err)
	}
	return nil
}

var _ session.Recorder = (*Store)(nil)
