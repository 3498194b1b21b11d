package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/session"
	"github.com/leapstack-labs/leapcalc/internal/state"
)

// NewREPLCommand creates the interactive repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Expression lines evaluate against the
current bindings; "let name = expr" binds a variable and snapshots the
session. Type .help inside the session for the full command list.`,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg := configFrom(cmd)

	sess, err := session.New(session.Options{
		HistoryLimit: cfg.HistoryLimit,
		AutoSaveCap:  cfg.AutoSaveCap,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	store := openCheckpointStore(cfg)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "leapcalc> ",
		HistoryFile:     replHistoryFile(cfg.StatePath),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "LeapCalc session")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, sess, store, line); quit {
				break
			}
			continue
		}

		if err := handleStatement(cmd, sess, line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

// replHistoryFile returns the readline history path next to the
// checkpoint database, creating the directory when needed. Returns ""
// when no state path is configured or the directory cannot be created,
// which disables persistent line history.
func replHistoryFile(statePath string) string {
	if statePath == "" {
		return ""
	}

	dir := filepath.Dir(statePath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Warn("readline history disabled", "dir", dir, "error", err)
			return ""
		}
	}
	return filepath.Join(dir, "repl_history")
}

// openCheckpointStore opens the persistent checkpoint store, or returns
// nil when persistence is disabled or unavailable. The REPL works
// in-memory either way.
func openCheckpointStore(cfg *config.Config) state.Store {
	if cfg.StatePath == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.StatePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Warn("checkpoint persistence disabled", "path", cfg.StatePath, "error", err)
			return nil
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		slog.Warn("checkpoint persistence disabled", "path", cfg.StatePath, "error", err)
		return nil
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		slog.Warn("checkpoint persistence disabled", "path", cfg.StatePath, "error", err)
		return nil
	}

	slog.Debug("checkpoint store opened", "path", cfg.StatePath)
	return store
}

// handleStatement processes a non-dot line: a let binding, an unset, or
// a plain expression.
func handleStatement(cmd *cobra.Command, sess *session.Session, line string) error {
	switch {
	case strings.HasPrefix(line, "let "):
		rest := strings.TrimPrefix(line, "let ")
		name, text, ok := strings.Cut(rest, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.TrimSpace(text) == "" {
			return fmt.Errorf("usage: let <name> = <expression>")
		}

		v, err := sess.Let(name, text)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, v)
		return nil

	case strings.HasPrefix(line, "unset "):
		name := strings.TrimSpace(strings.TrimPrefix(line, "unset "))
		ok, err := sess.Unset(name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("variable %q is not bound", name)
		}
		return nil

	default:
		v, err := sess.Eval(line)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	}
}

// handleDotCommand executes a .command line. Returns true to quit.
func handleDotCommand(cmd *cobra.Command, sess *session.Session, store state.Store, line string) bool {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	parts := strings.Fields(line)
	name := strings.ToLower(parts[0])
	args := parts[1:]

	switch name {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".vars":
		renderBindings(out, sess.Bindings())

	case ".history":
		renderHistory(out, sess.HistorySnapshots(), sess.HistoryCursor())

	case ".undo":
		ok, err := sess.Undo()
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		case !ok:
			_, _ = fmt.Fprintln(out, "Nothing to undo")
		default:
			renderBindings(out, sess.Bindings())
		}

	case ".redo":
		ok, err := sess.Redo()
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		case !ok:
			_, _ = fmt.Fprintln(out, "Nothing to redo")
		default:
			renderBindings(out, sess.Bindings())
		}

	case ".save":
		if len(args) != 1 {
			_, _ = fmt.Fprintln(errOut, "Usage: .save <name>")
			break
		}
		if err := saveCheckpoint(sess, store, args[0]); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			break
		}
		_, _ = fmt.Fprintf(out, "Saved checkpoint %q\n", args[0])

	case ".load":
		if len(args) != 1 {
			_, _ = fmt.Fprintln(errOut, "Usage: .load <name>")
			break
		}
		ok, err := loadCheckpoint(sess, store, args[0])
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		case !ok:
			_, _ = fmt.Fprintf(out, "No checkpoint named %q\n", args[0])
		default:
			renderBindings(out, sess.Bindings())
		}

	case ".delete":
		if len(args) != 1 {
			_, _ = fmt.Fprintln(errOut, "Usage: .delete <name>")
			break
		}
		if err := deleteCheckpoint(sess, store, args[0], out); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	case ".checkpoints":
		if err := renderCheckpoints(out, sess, store); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	case ".autosave":
		if err := sess.AutoSave(); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			break
		}
		_, _ = fmt.Fprintln(out, "Auto-saved")

	case ".loadauto":
		ok, err := sess.LoadLastAutoSave()
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		case !ok:
			_, _ = fmt.Fprintln(out, "No auto-saves yet")
		default:
			renderBindings(out, sess.Bindings())
		}

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command %s (try .help)\n", name)
	}

	return false
}

// saveCheckpoint writes an in-memory checkpoint and, when persistence
// is on, a durable one under the same name.
func saveCheckpoint(sess *session.Session, store state.Store, name string) error {
	if err := sess.Checkpoint(name); err != nil {
		return err
	}
	if store != nil {
		return store.SaveCheckpoint(name, sess.Bindings())
	}
	return nil
}

// loadCheckpoint restores a named checkpoint, preferring the in-memory
// one and falling back to the persistent store.
func loadCheckpoint(sess *session.Session, store state.Store, name string) (bool, error) {
	ok, err := sess.RestoreCheckpoint(name)
	if err != nil || ok {
		return ok, err
	}
	if store == nil {
		return false, nil
	}

	cp, found, err := store.LoadCheckpoint(name)
	if err != nil || !found {
		return false, err
	}
	sess.SetState(cp.Bindings)
	return true, nil
}

func deleteCheckpoint(sess *session.Session, store state.Store, name string, out io.Writer) error {
	existed := sess.DeleteCheckpoint(name)
	if store != nil {
		persisted, err := store.DeleteCheckpoint(name)
		if err != nil {
			return err
		}
		existed = existed || persisted
	}
	if !existed {
		_, _ = fmt.Fprintf(out, "No checkpoint named %q\n", name)
		return nil
	}
	_, _ = fmt.Fprintf(out, "Deleted checkpoint %q\n", name)
	return nil
}

func printREPLHelp(w io.Writer) {
	help := `Statements:
  <expression>        Evaluate an expression, e.g. (a+b)/(c-2)
  let <name> = <expr> Bind a variable and snapshot the session
  unset <name>        Remove a binding and snapshot the session

Commands:
  .vars               Show current bindings
  .history            Show the undo/redo timeline
  .undo               Step one snapshot back
  .redo               Step one snapshot forward
  .save <name>        Save a named checkpoint
  .load <name>        Restore a named checkpoint
  .delete <name>      Delete a named checkpoint
  .checkpoints        List checkpoints
  .autosave           Record a bounded auto-save
  .loadauto           Restore the most recent auto-save
  .help               Show this help
  .quit               Exit`
	_, _ = fmt.Fprintln(w, help)
}
