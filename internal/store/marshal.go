package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/session"
)

// marshalCommand stores a command as canonical JSON, so equal commands
// always produce equal params text.
func marshalCommand(cmd session.Command) (string, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return "", fmt.Errorf("marshal command: %w", err)
	}
	v, err := record.Decode(data)
	if err != nil {
		return "", fmt.Errorf("marshal command: %w", err)
	}
	canonical, err := record.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("marshal command: %w", err)
	}
	return string(canonical), nil
}

func unmarshalCommand(params string) (session.Command, error) {
	var cmd session.Command
	if err := json.Unmarshal([]byte(params), &cmd); err != nil {
		return cmd, fmt.Errorf("unmarshal command: %w", err)
	}
	return cmd, nil
}
