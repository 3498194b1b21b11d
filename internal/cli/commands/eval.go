package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/pkg/expr"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate expressions against variable bindings",
		Example: `  leapcalc eval "a + b * c" --var a=10 --var b=5 --var c=7
  leapcalc eval "(x AND y) OR (NOT z)" --var x=true --var y=false --var z=true`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := contextFromVars(vars)
			if err != nil {
				return err
			}

			for _, text := range args {
				v, err := expr.EvalString(text, ctx)
				if err != nil {
					return fmt.Errorf("evaluate %q: %w", text, err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable binding as name=value (repeatable)")
	return cmd
}

// contextFromVars builds an evaluation context from name=value flags.
func contextFromVars(vars []string) (*expr.Context, error) {
	ctx := expr.NewContext()
	for _, kv := range vars {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", kv)
		}

		v, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --var %q: %w", kv, err)
		}
		ctx.Bind(name, v)
	}
	return ctx, nil
}

// parseValue reads a number or boolean literal.
func parseValue(raw string) (expr.Value, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE":
		return expr.Boolean(true), nil
	case "FALSE":
		return expr.Boolean(false), nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return expr.Value{}, fmt.Errorf("value %q is neither a number nor a boolean", raw)
	}
	return expr.Number(n), nil
}
