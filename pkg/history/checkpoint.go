package history

import "sort"

// Checkpoints manages named snapshots, independent of any linear
// undo/redo sequence. "Not found" is an expected outcome, so lookups
// return a bool rather than an error.
type Checkpoints[T any] struct {
	originator Originator[T]
	clone      CloneFunc[T]
	byName     map[string]Snapshot[T]
}

// NewCheckpoints creates a checkpoint map for the given originator.
// A nil clone selects ReflectClone.
func NewCheckpoints[T any](o Originator[T], clone CloneFunc[T]) *Checkpoints[T] {
	return &Checkpoints[T]{
		originator: o,
		clone:      cloneOrDefault(clone),
		byName:     make(map[string]Snapshot[T]),
	}
}

// Create captures the current state under the given name, overwriting
// any existing checkpoint with that name.
func (c *Checkpoints[T]) Create(name string) error {
	snap, err := Capture(c.originator.State(), c.clone)
	if err != nil {
		return err
	}
	c.byName[name] = snap
	return nil
}

// Restore restores the named checkpoint into the originator. It returns
// false when no checkpoint exists under that name, leaving the live
// state unchanged.
func (c *Checkpoints[T]) Restore(name string) (bool, error) {
	snap, ok := c.byName[name]
	if !ok {
		return false, nil
	}

	v, err := snap.Value()
	if err != nil {
		return false, err
	}
	c.originator.SetState(v)
	return true, nil
}

// Get returns the named snapshot without restoring it.
func (c *Checkpoints[T]) Get(name string) (Snapshot[T], bool) {
	snap, ok := c.byName[name]
	return snap, ok
}

// Delete removes the named checkpoint. Returns true if it existed.
func (c *Checkpoints[T]) Delete(name string) bool {
	if _, ok := c.byName[name]; !ok {
		return false
	}
	delete(c.byName, name)
	return true
}

// Clear removes all checkpoints.
func (c *Checkpoints[T]) Clear() {
	c.byName = make(map[string]Snapshot[T])
}

// Names returns all checkpoint names in sorted order.
func (c *Checkpoints[T]) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of checkpoints.
func (c *Checkpoints[T]) Len() int {
	return len(c.byName)
}
