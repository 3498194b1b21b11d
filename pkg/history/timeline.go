package history

// Timeline is a cursor-based linear undo/redo history. Saving while the
// cursor sits before the last entry truncates all forward entries; the
// history is strictly linear, never a tree.
type Timeline[T any] struct {
	originator Originator[T]
	clone      CloneFunc[T]
	snapshots  []Snapshot[T]
	cursor     int // index of the current snapshot, -1 when empty
	limit      int // maximum entries, 0 = unbounded
}

// NewTimeline creates an unbounded timeline for the given originator.
// A nil clone selects ReflectClone.
func NewTimeline[T any](o Originator[T], clone CloneFunc[T]) *Timeline[T] {
	return NewTimelineWithLimit(o, clone, 0)
}

// NewTimelineWithLimit creates a timeline that evicts its oldest entry
// once it holds more than limit snapshots. A limit of 0 means unbounded.
func NewTimelineWithLimit[T any](o Originator[T], clone CloneFunc[T], limit int) *Timeline[T] {
	return &Timeline[T]{
		originator: o,
		clone:      cloneOrDefault(clone),
		cursor:     -1,
		limit:      limit,
	}
}

// SaveState records the originator's current state as the new head of
// history: forward (redo) entries are discarded, the snapshot is
// appended, and the cursor advances to it. When the limit is exceeded
// the oldest entry is evicted and the cursor shifts down with it.
func (t *Timeline[T]) SaveState() error {
	snap, err := Capture(t.originator.State(), t.clone)
	if err != nil {
		return err
	}

	t.snapshots = t.snapshots[:t.cursor+1]
	t.snapshots = append(t.snapshots, snap)
	t.cursor = len(t.snapshots) - 1

	if t.limit > 0 && len(t.snapshots) > t.limit {
		t.snapshots = t.snapshots[1:]
		t.cursor--
	}
	return nil
}

// Undo moves the cursor one entry back and restores that snapshot.
// It reports whether the move happened; the cursor never leaves history
// bounds, and a failed restoration leaves it where it was.
func (t *Timeline[T]) Undo() (bool, error) {
	if !t.CanUndo() {
		return false, nil
	}

	v, err := t.snapshots[t.cursor-1].Value()
	if err != nil {
		return false, err
	}
	t.cursor--
	t.originator.SetState(v)
	return true, nil
}

// Redo moves the cursor one entry forward and restores that snapshot.
func (t *Timeline[T]) Redo() (bool, error) {
	if !t.CanRedo() {
		return false, nil
	}

	v, err := t.snapshots[t.cursor+1].Value()
	if err != nil {
		return false, err
	}
	t.cursor++
	t.originator.SetState(v)
	return true, nil
}

// CanUndo reports whether an older entry exists behind the cursor.
func (t *Timeline[T]) CanUndo() bool {
	return t.cursor > 0
}

// CanRedo reports whether a forward entry exists past the cursor.
func (t *Timeline[T]) CanRedo() bool {
	return t.cursor >= 0 && t.cursor < len(t.snapshots)-1
}

// Cursor returns the current cursor position, -1 when empty.
func (t *Timeline[T]) Cursor() int {
	return t.cursor
}

// Len returns the number of recorded snapshots.
func (t *Timeline[T]) Len() int {
	return len(t.snapshots)
}

// Snapshots returns a shallow copy of the snapshot sequence.
func (t *Timeline[T]) Snapshots() []Snapshot[T] {
	out := make([]Snapshot[T], len(t.snapshots))
	copy(out, t.snapshots)
	return out
}
