// Package config provides configuration management for the LeapCalc CLI.
package config

import "fmt"

// Default configuration values.
const (
	DefaultHistoryLimit = 100
	DefaultAutoSaveCap  = 5
	DefaultStateFile    = ".leapcalc/state.db"
)

// Config holds all CLI configuration options.
type Config struct {
	// StatePath is the SQLite database used for persistent checkpoints.
	// Empty disables persistence; the REPL then keeps checkpoints
	// in-memory only.
	StatePath string `koanf:"state_path"`

	// HistoryLimit bounds the undo/redo timeline. 0 means unbounded.
	HistoryLimit int `koanf:"history_limit"`

	// AutoSaveCap bounds the auto-save ring.
	AutoSaveCap int `koanf:"autosave_cap"`

	Verbose bool `koanf:"verbose"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be >= 0, got %d", c.HistoryLimit)
	}
	if c.AutoSaveCap < 0 {
		return fmt.Errorf("autosave_cap must be >= 0, got %d", c.AutoSaveCap)
	}
	return nil
}
