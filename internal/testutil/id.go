// Package testutil holds deterministic helpers shared by the harness and
// package tests: a constant session ID source and a recorder for table
// events.
package testutil

// DefaultSessionID is used when NewConstantIDGenerator gets an empty ID.
const DefaultSessionID = "test-session-default"

// ConstantIDGenerator returns the same session ID on every call. Unlike
// session.FixedGenerator it never runs out, so a harness can build any
// number of sessions that all render identically in golden traces.
type ConstantIDGenerator struct {
	id string
}

// NewConstantIDGenerator returns a generator for id.
func NewConstantIDGenerator(id string) *ConstantIDGenerator {
	if id == "" {
		id = DefaultSessionID
	}
	return &ConstantIDGenerator{id: id}
}

// Generate returns the constant ID.
func (g *ConstantIDGenerator) Generate() string {
	return g.id
}
