package history

// DefaultAutoSaveCapacity bounds the auto-save ring when no explicit
// capacity is configured.
const DefaultAutoSaveCapacity = 5

// AutoSaveRing keeps a bounded sequence of automatic snapshots: saving
// past capacity evicts the oldest entry.
type AutoSaveRing[T any] struct {
	originator Originator[T]
	clone      CloneFunc[T]
	capacity   int
	snapshots  []Snapshot[T]
}

// NewAutoSaveRing creates an auto-save ring with the given capacity.
// Capacities below one fall back to DefaultAutoSaveCapacity; a nil clone
// selects ReflectClone.
func NewAutoSaveRing[T any](o Originator[T], clone CloneFunc[T], capacity int) *AutoSaveRing[T] {
	if capacity < 1 {
		capacity = DefaultAutoSaveCapacity
	}
	return &AutoSaveRing[T]{
		originator: o,
		clone:      cloneOrDefault(clone),
		capacity:   capacity,
	}
}

// AutoSave appends a snapshot of the current state, evicting the oldest
// entry once capacity is exceeded.
func (r *AutoSaveRing[T]) AutoSave() error {
	snap, err := Capture(r.originator.State(), r.clone)
	if err != nil {
		return err
	}

	r.snapshots = append(r.snapshots, snap)
	if len(r.snapshots) > r.capacity {
		r.snapshots = r.snapshots[len(r.snapshots)-r.capacity:]
	}
	return nil
}

// LoadLast restores the most recent auto-save. Returns false when the
// ring is empty.
func (r *AutoSaveRing[T]) LoadLast() (bool, error) {
	if len(r.snapshots) == 0 {
		return false, nil
	}

	v, err := r.snapshots[len(r.snapshots)-1].Value()
	if err != nil {
		return false, err
	}
	r.originator.SetState(v)
	return true, nil
}

// Capacity returns the configured capacity.
func (r *AutoSaveRing[T]) Capacity() int {
	return r.capacity
}

// Len returns the number of stored auto-saves.
func (r *AutoSaveRing[T]) Len() int {
	return len(r.snapshots)
}

// Snapshots returns a shallow copy of the stored auto-saves, oldest first.
func (r *AutoSaveRing[T]) Snapshots() []Snapshot[T] {
	out := make([]Snapshot[T], len(r.snapshots))
	copy(out, r.snapshots)
	return out
}
