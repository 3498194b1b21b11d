// Package history provides snapshot-based state management: deep-copied
// point-in-time captures of a mutable subject, an ordered caretaker
// sequence, a cursor-based undo/redo timeline, named checkpoints, and a
// bounded auto-save ring.
//
// All containers are synchronous and in-memory. Each instance is owned
// by exactly one logical caller; there is no internal locking.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable deep copy of a state value captured at a
// point in time. The timestamp orders snapshots for display; positional
// indices remain the source of truth for history ordering.
type Snapshot[T any] struct {
	id      string
	value   T
	takenAt time.Time
	clone   CloneFunc[T]
}

// Capture deep-copies a state value into a new snapshot. The snapshot
// owns its copy exclusively; later mutation of the input never affects it.
func Capture[T any](v T, clone CloneFunc[T]) (Snapshot[T], error) {
	clone = cloneOrDefault(clone)

	copied, err := clone(v)
	if err != nil {
		return Snapshot[T]{}, err
	}
	return Snapshot[T]{
		id:      uuid.New().String(),
		value:   copied,
		takenAt: time.Now(),
		clone:   clone,
	}, nil
}

// ID returns the snapshot's generated identifier.
func (s Snapshot[T]) ID() string { return s.id }

// TakenAt returns the capture timestamp.
func (s Snapshot[T]) TakenAt() time.Time { return s.takenAt }

// Value returns a fresh deep copy of the captured state. Mutating the
// returned value never affects the snapshot.
func (s Snapshot[T]) Value() (T, error) {
	return cloneOrDefault(s.clone)(s.value)
}

// Originator is the subject whose mutable state gets snapshotted.
// Exactly one canonical live copy of the state exists at a time.
type Originator[T any] interface {
	// State returns the live state value.
	State() T

	// SetState replaces the live state value. Implementations receive a
	// value the history layer has already copied; they may store it
	// directly.
	SetState(v T)
}
