package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/session"
	"github.com/roach88/tablestate/internal/table"
)

// ErrDataChanged is returned when the rows handed to a replay are not the
// rows the session was recorded against.
var ErrDataChanged = errors.New("data source changed since recording")

// Divergence is one point where a replay did not reproduce the journal.
type Divergence struct {
	Seq   int64  `json:"seq"`
	Op    string `json:"op"`
	Field string `json:"field"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	SessionID   string         `json:"session_id"`
	Applied     int            `json:"applied"`
	Divergences []Divergence   `json:"divergences"`
	Snapshot    table.Snapshot `json:"snapshot"`
}

// OK reports whether the replay matched the journal exactly.
func (r ReplayResult) OK() bool {
	return len(r.Divergences) == 0
}

// Replay applies entries to tbl in order and compares each outcome with
// what was recorded: the table error code and the event digest. tbl must
// be freshly built from the recorded config and data, with a clock that
// starts where the recorded table's clock started.
//
// Entries must be numbered 1..n without gaps; a gap is reported as a
// divergence on "seq" and replay continues.
func Replay(entries []session.Entry, tbl *table.Table) (ReplayResult, error) {
	res := ReplayResult{Divergences: []Divergence{}}
	if len(entries) > 0 {
		res.SessionID = entries[0].SessionID
	}

	for i, e := range entries {
		if want := int64(i + 1); e.Seq != want {
			res.Divergences = append(res.Divergences, Divergence{
				Seq: e.Seq, Op: e.Command.Op, Field: "seq",
				Want: fmt.Sprint(want), Got: fmt.Sprint(e.Seq),
			})
		}

		ev, opErr := e.Command.Apply(tbl)
		res.Applied++

		if got := string(table.ErrorCode(opErr)); got != e.ErrorCode {
			res.Divergences = append(res.Divergences, Divergence{
				Seq: e.Seq, Op: e.Command.Op, Field: "error_code", Want: e.ErrorCode, Got: got,
			})
		}

		var digest string
		if ev != nil {
			d, err := record.Digest(record.DomainEvent, ev)
			if err != nil {
				return res, fmt.Errorf("replay seq %d: %w", e.Seq, err)
			}
			digest = d
		}
		if digest != e.EventDigest {
			res.Divergences = append(res.Divergences, Divergence{
				Seq: e.Seq, Op: e.Command.Op, Field: "event_digest", Want: e.EventDigest, Got: digest,
			})
		}
	}

	res.Snapshot = tbl.Snapshot()
	return res, nil
}

// ReplaySession replays a journaled session onto tbl. dataHash is the
// fingerprint of the rows tbl was built from; it must equal the recorded
// one, otherwise ErrDataChanged is returned before anything is applied.
func (s *Store) ReplaySession(ctx context.Context, sessionID, dataHash string, tbl *table.Table) (ReplayResult, error) {
	rec, err := s.ReadSession(ctx, sessionID)
	if err != nil {
		return ReplayResult{}, err
	}
	if rec.DataHash != dataHash {
		return ReplayResult{}, fmt.Errorf("%w: recorded %s, got %s", ErrDataChanged, rec.DataHash, dataHash)
	}

	entries, err := s.ReadCommands(ctx, sessionID)
	if err != nil {
		return ReplayResult{}, err
	}
	res, err := Replay(entries, tbl)
	res.SessionID = sessionID
	return res, err
}
