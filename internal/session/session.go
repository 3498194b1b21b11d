// Package session wires the expression evaluator to the history layer:
// a Session owns mutable variable bindings, snapshots them on every
// write, and exposes undo/redo, named checkpoints, and auto-saves.
package session

import (
	"github.com/leapstack-labs/leapcalc/pkg/expr"
	"github.com/leapstack-labs/leapcalc/pkg/history"
)

// Bindings is the snapshotted state type: variable name to value.
type Bindings = map[string]expr.Value

// cloneBindings is the per-type clone for session state. Values are
// plain value structs, so a map copy is a deep copy.
func cloneBindings(m Bindings) (Bindings, error) {
	out := make(Bindings, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

// Options configures a session's history containers.
type Options struct {
	// HistoryLimit bounds the undo/redo timeline. 0 means unbounded.
	HistoryLimit int

	// AutoSaveCap bounds the auto-save ring. Values below one fall back
	// to history.DefaultAutoSaveCapacity.
	AutoSaveCap int
}

// Session is the originator for expression-evaluation state. All
// operations are synchronous; a session belongs to one caller.
type Session struct {
	ctx         *expr.Context
	timeline    *history.Timeline[Bindings]
	checkpoints *history.Checkpoints[Bindings]
	autosave    *history.AutoSaveRing[Bindings]
}

// New creates a session with an empty binding context. The initial empty
// state is recorded so the first write can be undone.
func New(opts Options) (*Session, error) {
	s := &Session{ctx: expr.NewContext()}
	s.timeline = history.NewTimelineWithLimit[Bindings](s, cloneBindings, opts.HistoryLimit)
	s.checkpoints = history.NewCheckpoints[Bindings](s, cloneBindings)
	s.autosave = history.NewAutoSaveRing[Bindings](s, cloneBindings, opts.AutoSaveCap)

	if err := s.timeline.SaveState(); err != nil {
		return nil, err
	}
	return s, nil
}

// State implements history.Originator.
func (s *Session) State() Bindings {
	return s.ctx.Bindings()
}

// SetState implements history.Originator.
func (s *Session) SetState(v Bindings) {
	s.ctx.SetBindings(v)
}

// Eval parses and evaluates an expression against the current bindings
// without mutating them.
func (s *Session) Eval(text string) (expr.Value, error) {
	return expr.EvalString(text, s.ctx)
}

// Let evaluates an expression, binds the result under name, and records
// the new state in the timeline. A failed evaluation leaves bindings and
// history untouched.
func (s *Session) Let(name, text string) (expr.Value, error) {
	v, err := expr.EvalString(text, s.ctx)
	if err != nil {
		return expr.Value{}, err
	}

	s.ctx.Bind(name, v)
	if err := s.timeline.SaveState(); err != nil {
		return expr.Value{}, err
	}
	return v, nil
}

// Unset removes a binding and records the new state. Returns false
// without touching history when the name was not bound.
func (s *Session) Unset(name string) (bool, error) {
	if !s.ctx.Unbind(name) {
		return false, nil
	}
	if err := s.timeline.SaveState(); err != nil {
		return false, err
	}
	return true, nil
}

// Undo steps the timeline back one entry. Returns whether a step happened.
func (s *Session) Undo() (bool, error) { return s.timeline.Undo() }

// Redo steps the timeline forward one entry.
func (s *Session) Redo() (bool, error) { return s.timeline.Redo() }

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.timeline.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.timeline.CanRedo() }

// HistorySnapshots returns the timeline's snapshots, oldest first.
func (s *Session) HistorySnapshots() []history.Snapshot[Bindings] {
	return s.timeline.Snapshots()
}

// HistoryCursor returns the timeline cursor position.
func (s *Session) HistoryCursor() int { return s.timeline.Cursor() }

// Checkpoint captures the current bindings under a name, overwriting any
// existing checkpoint with that name.
func (s *Session) Checkpoint(name string) error {
	return s.checkpoints.Create(name)
}

// RestoreCheckpoint restores a named checkpoint. Returns false when the
// name is unknown; the live bindings are left unchanged.
func (s *Session) RestoreCheckpoint(name string) (bool, error) {
	return s.checkpoints.Restore(name)
}

// DeleteCheckpoint removes a named checkpoint.
func (s *Session) DeleteCheckpoint(name string) bool {
	return s.checkpoints.Delete(name)
}

// ClearCheckpoints removes all named checkpoints.
func (s *Session) ClearCheckpoints() {
	s.checkpoints.Clear()
}

// CheckpointNames returns all checkpoint names in sorted order.
func (s *Session) CheckpointNames() []string {
	return s.checkpoints.Names()
}

// AutoSave records the current bindings in the bounded auto-save ring.
func (s *Session) AutoSave() error {
	return s.autosave.AutoSave()
}

// LoadLastAutoSave restores the most recent auto-save. Returns false
// when none exist.
func (s *Session) LoadLastAutoSave() (bool, error) {
	return s.autosave.LoadLast()
}

// Bindings returns a copy of the current bindings.
func (s *Session) Bindings() Bindings {
	return s.ctx.Bindings()
}

// Names returns the bound variable names in sorted order.
func (s *Session) Names() []string {
	return s.ctx.Names()
}

// Resolve looks up a single binding.
func (s *Session) Resolve(name string) (expr.Value, error) {
	return s.ctx.Resolve(name)
}
