package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/state"
)

// NewCheckpointCommand creates the checkpoint command group for working
// with persisted checkpoints outside a session.
func NewCheckpointCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage persisted checkpoints",
		Long: `Inspect and manage checkpoints saved to the state database.
Checkpoints are created from inside a session with the .save command.`,
	}

	cmd.AddCommand(
		newCheckpointListCommand(),
		newCheckpointShowCommand(),
		newCheckpointDeleteCommand(),
	)

	return cmd
}

func newCheckpointListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted checkpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			checkpoints, err := store.ListCheckpoints()
			if err != nil {
				return err
			}
			if len(checkpoints) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(no checkpoints)")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Variables", "Created At"})
			for _, cp := range checkpoints {
				t.AppendRow(table.Row{
					cp.Name,
					len(cp.Bindings),
					cp.CreatedAt.Format(time.RFC3339),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newCheckpointShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a checkpoint's bindings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cp, found, err := store.LoadCheckpoint(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no checkpoint named %q", args[0])
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Checkpoint %q (created %s)\n",
				cp.Name, cp.CreatedAt.Format(time.RFC3339))

			if len(cp.Bindings) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(no bindings)")
				return nil
			}

			names := make([]string, 0, len(cp.Bindings))
			for name := range cp.Bindings {
				names = append(names, name)
			}
			sort.Strings(names)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Variable", "Value"})
			for _, name := range names {
				t.AppendRow(table.Row{name, cp.Bindings[name].String()})
			}
			t.Render()
			return nil
		},
	}
}

func newCheckpointDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a persisted checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			deleted, err := store.DeleteCheckpoint(args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("no checkpoint named %q", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted checkpoint %q\n", args[0])
			return nil
		},
	}
}

// openStore opens the configured state database for the checkpoint
// subcommands. Unlike the REPL these commands require persistence.
func openStore(cmd *cobra.Command) (state.Store, error) {
	cfg := configFrom(cmd)
	if cfg.StatePath == "" {
		return nil, fmt.Errorf("no state path configured (set state_path or --state-path)")
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
