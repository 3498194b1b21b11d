// Package state persists named session checkpoints in SQLite so saved
// states survive across processes. The in-memory history layer in
// pkg/history never touches this package; only the CLI wires it in.
package state

import (
	"time"

	"github.com/leapstack-labs/leapcalc/pkg/expr"
)

// Checkpoint is a persisted named state: variable bindings frozen under
// a label.
type Checkpoint struct {
	ID        string
	Name      string
	Bindings  map[string]expr.Value
	CreatedAt time.Time
}

// Store is the persistence interface for named checkpoints.
type Store interface {
	// Open opens the store at the given path. Use ":memory:" for an
	// in-memory database.
	Open(path string) error

	// Close closes the store.
	Close() error

	// InitSchema creates tables if they do not exist.
	InitSchema() error

	// SaveCheckpoint persists bindings under a name, overwriting any
	// existing checkpoint with that name.
	SaveCheckpoint(name string, bindings map[string]expr.Value) error

	// LoadCheckpoint returns the named checkpoint. The second return is
	// false when no checkpoint exists under that name.
	LoadCheckpoint(name string) (*Checkpoint, bool, error)

	// ListCheckpoints returns all checkpoints, most recent first.
	ListCheckpoints() ([]*Checkpoint, error)

	// DeleteCheckpoint removes the named checkpoint. Returns true if it
	// existed.
	DeleteCheckpoint(name string) (bool, error)
}
