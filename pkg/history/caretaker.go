package history

// Caretaker manages an ordered sequence of snapshots on behalf of an
// originator. It owns the snapshots exclusively; the originator never
// retains references to them.
type Caretaker[T any] struct {
	originator Originator[T]
	clone      CloneFunc[T]
	snapshots  []Snapshot[T]
}

// NewCaretaker creates a caretaker for the given originator. A nil clone
// selects ReflectClone.
func NewCaretaker[T any](o Originator[T], clone CloneFunc[T]) *Caretaker[T] {
	return &Caretaker[T]{
		originator: o,
		clone:      cloneOrDefault(clone),
	}
}

// Backup captures the originator's current state and appends it to the
// sequence.
func (c *Caretaker[T]) Backup() error {
	snap, err := Capture(c.originator.State(), c.clone)
	if err != nil {
		return err
	}
	c.snapshots = append(c.snapshots, snap)
	return nil
}

// Undo moves toward older entries. With exactly one snapshot recorded it
// restores that floor state and keeps it; with more it discards the most
// recent entry and restores the one before it. A failed restoration
// leaves the sequence unchanged.
func (c *Caretaker[T]) Undo() error {
	switch len(c.snapshots) {
	case 0:
		return ErrNoSnapshots
	case 1:
		return c.restore(c.snapshots[0])
	default:
		popped := c.snapshots[len(c.snapshots)-1]
		c.snapshots = c.snapshots[:len(c.snapshots)-1]

		if err := c.restore(c.snapshots[len(c.snapshots)-1]); err != nil {
			// Put the popped entry back so the sequence stays consistent.
			c.snapshots = append(c.snapshots, popped)
			return err
		}
		return nil
	}
}

// RestoreToIndex restores the snapshot at position i without changing
// the sequence.
func (c *Caretaker[T]) RestoreToIndex(i int) error {
	if i < 0 || i >= len(c.snapshots) {
		return &InvalidIndexError{Index: i, Length: len(c.snapshots)}
	}
	return c.restore(c.snapshots[i])
}

// Snapshots returns a shallow copy of the snapshot sequence. Reordering
// the returned slice does not affect the caretaker.
func (c *Caretaker[T]) Snapshots() []Snapshot[T] {
	out := make([]Snapshot[T], len(c.snapshots))
	copy(out, c.snapshots)
	return out
}

// Len returns the number of recorded snapshots.
func (c *Caretaker[T]) Len() int {
	return len(c.snapshots)
}

// restore deep-copies a snapshot's value back into the originator.
func (c *Caretaker[T]) restore(s Snapshot[T]) error {
	v, err := s.Value()
	if err != nil {
		return err
	}
	c.originator.SetState(v)
	return nil
}
