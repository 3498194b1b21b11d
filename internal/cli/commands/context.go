package commands

import (
	"context"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/spf13/cobra"
)

// configKey is used to store config in the command context.
type configKey struct{}

// WithConfig returns a context carrying the loaded configuration.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom retrieves the loaded configuration from the command
// context, falling back to defaults when the root pre-run did not run
// (direct command construction in tests).
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		StatePath:    config.DefaultStateFile,
		HistoryLimit: config.DefaultHistoryLimit,
		AutoSaveCap:  config.DefaultAutoSaveCap,
	}
}
