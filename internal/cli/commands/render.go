package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapcalc/internal/session"
	"github.com/leapstack-labs/leapcalc/internal/state"
	"github.com/leapstack-labs/leapcalc/pkg/history"
)

func renderBindings(w io.Writer, bindings session.Bindings) {
	if len(bindings) == 0 {
		_, _ = fmt.Fprintln(w, "(no bindings)")
		return
	}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Variable", "Value"})
	for _, name := range names {
		t.AppendRow(table.Row{name, bindings[name].String()})
	}
	t.Render()
}

func renderHistory(w io.Writer, snapshots []history.Snapshot[session.Bindings], cursor int) {
	if len(snapshots) == 0 {
		_, _ = fmt.Fprintln(w, "(no snapshots)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "#", "Taken At", "Bindings"})
	for i, snap := range snapshots {
		marker := ""
		if i == cursor {
			marker = "*"
		}
		t.AppendRow(table.Row{
			marker,
			i,
			snap.TakenAt().Format(time.RFC3339),
			bindingsSummary(snap),
		})
	}
	t.Render()
}

// bindingsSummary describes a snapshot without mutating shared state.
// Snapshot values clone on read, so peeking here is safe.
func bindingsSummary(snap history.Snapshot[session.Bindings]) string {
	b, err := snap.Value()
	if err != nil {
		return "(unreadable)"
	}
	return fmt.Sprintf("%d variable(s)", len(b))
}

func renderCheckpoints(w io.Writer, sess *session.Session, store state.Store) error {
	names := sess.CheckpointNames()

	var persisted []*state.Checkpoint
	if store != nil {
		var err error
		persisted, err = store.ListCheckpoints()
		if err != nil {
			return err
		}
	}

	if len(names) == 0 && len(persisted) == 0 {
		_, _ = fmt.Fprintln(w, "(no checkpoints)")
		return nil
	}

	// Session checkpoints and persisted ones can overlap by name; show
	// a single row per name with both origins marked.
	type row struct {
		session   bool
		persisted bool
		createdAt string
	}
	byName := make(map[string]*row)
	for _, name := range names {
		byName[name] = &row{session: true}
	}
	for _, cp := range persisted {
		r, ok := byName[cp.Name]
		if !ok {
			r = &row{}
			byName[cp.Name] = r
		}
		r.persisted = true
		r.createdAt = cp.CreatedAt.Format(time.RFC3339)
	}

	all := make([]string, 0, len(byName))
	for name := range byName {
		all = append(all, name)
	}
	sort.Strings(all)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Session", "Persisted", "Created At"})
	for _, name := range all {
		r := byName[name]
		t.AppendRow(table.Row{name, yesNo(r.session), yesNo(r.persisted), r.createdAt})
	}
	t.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
