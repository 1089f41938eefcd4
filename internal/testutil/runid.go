package testutil

// ConstantRunID returns the same run ID every time.
//
// Unlike batch.FixedGenerator, which hands out IDs in sequence and panics
// when they run out, ConstantRunID never runs out. Use it when a test runs
// several commands that should all land in one run.
//
// Stateless and safe for concurrent use.
type ConstantRunID struct {
	id string
}

// NewConstantRunID creates a generator for id.
//
// If id is empty, Generate() returns "test-run-default".
func NewConstantRunID(id string) *ConstantRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &ConstantRunID{id: id}
}

// Generate returns the constant run ID.
//
// Implements batch.RunIDGenerator.
func (g *ConstantRunID) Generate() string {
	return g.id
}
