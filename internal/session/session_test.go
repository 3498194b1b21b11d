package session_test

import (
	"testing"

	"github.com/leapstack-labs/leapcalc/internal/session"
	"github.com/leapstack-labs/leapcalc/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(session.Options{})
	require.NoError(t, err)
	return s
}

func TestSessionLetAndEval(t *testing.T) {
	s := newSession(t)

	v, err := s.Let("a", "10")
	require.NoError(t, err)
	assert.Equal(t, expr.Number(10), v)

	_, err = s.Let("b", "5")
	require.NoError(t, err)
	_, err = s.Let("c", "7")
	require.NoError(t, err)

	got, err := s.Eval("(a+b)/(c-2)")
	require.NoError(t, err)
	assert.Equal(t, expr.Number(3), got)

	// Eval never mutates bindings.
	assert.Equal(t, []string{"a", "b", "c"}, s.Names())
}

func TestSessionLetFailureLeavesStateUntouched(t *testing.T) {
	s := newSession(t)

	_, err := s.Let("a", "10")
	require.NoError(t, err)
	before := len(s.HistorySnapshots())

	_, err = s.Let("b", "a / 0")
	require.Error(t, err)

	_, resolveErr := s.Resolve("b")
	assert.Error(t, resolveErr, "failed let must not bind")
	assert.Len(t, s.HistorySnapshots(), before, "failed let must not snapshot")
}

func TestSessionUndoRedo(t *testing.T) {
	s := newSession(t)

	_, err := s.Let("a", "1")
	require.NoError(t, err)
	_, err = s.Let("a", "2")
	require.NoError(t, err)

	ok, err := s.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	v, err := s.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, expr.Number(1), v)

	ok, err = s.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	v, err = s.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, expr.Number(2), v)

	// Undo all the way back reaches the initial empty state.
	for s.CanUndo() {
		_, err = s.Undo()
		require.NoError(t, err)
	}
	assert.Empty(t, s.Names())
}

func TestSessionWriteAfterUndoDiscardsRedo(t *testing.T) {
	s := newSession(t)

	_, err := s.Let("a", "1")
	require.NoError(t, err)
	_, err = s.Let("b", "2")
	require.NoError(t, err)

	ok, err := s.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, s.CanRedo())

	_, err = s.Let("c", "3")
	require.NoError(t, err)
	assert.False(t, s.CanRedo())
	assert.Equal(t, []string{"a", "c"}, s.Names())
}

func TestSessionUnset(t *testing.T) {
	s := newSession(t)

	_, err := s.Let("a", "1")
	require.NoError(t, err)

	ok, err := s.Unset("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, s.Names())

	ok, err = s.Unset("a")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unset is undoable like any other write.
	ok, err = s.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, s.Names())
}

func TestSessionCheckpoints(t *testing.T) {
	s := newSession(t)

	_, err := s.Let("hp", "100")
	require.NoError(t, err)
	require.NoError(t, s.Checkpoint("full-health"))

	_, err = s.Let("hp", "hp - 80")
	require.NoError(t, err)

	ok, err := s.RestoreCheckpoint("full-health")
	require.NoError(t, err)
	require.True(t, ok)
	v, err := s.Resolve("hp")
	require.NoError(t, err)
	assert.Equal(t, expr.Number(100), v)

	ok, err = s.RestoreCheckpoint("no-such")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"full-health"}, s.CheckpointNames())
	assert.True(t, s.DeleteCheckpoint("full-health"))
	s.ClearCheckpoints()
	assert.Empty(t, s.CheckpointNames())
}

func TestSessionAutoSave(t *testing.T) {
	s, err := session.New(session.Options{AutoSaveCap: 2})
	require.NoError(t, err)

	ok, err := s.LoadLastAutoSave()
	require.NoError(t, err)
	assert.False(t, ok)

	for _, v := range []string{"1", "2", "3"} {
		_, err = s.Let("a", v)
		require.NoError(t, err)
		require.NoError(t, s.AutoSave())
	}

	_, err = s.Let("a", "99")
	require.NoError(t, err)

	ok, err = s.LoadLastAutoSave()
	require.NoError(t, err)
	require.True(t, ok)
	got, err := s.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, expr.Number(3), got)
}

func TestSessionHistoryLimit(t *testing.T) {
	s, err := session.New(session.Options{HistoryLimit: 3})
	require.NoError(t, err)

	for _, v := range []string{"1", "2", "3", "4"} {
		_, err = s.Let("a", v)
		require.NoError(t, err)
	}

	assert.Len(t, s.HistorySnapshots(), 3)
	assert.Equal(t, 2, s.HistoryCursor())
}
