// Package config provides configuration types, defaults, and persistence
// for rollcall.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LogConfig holds debug logging options.
type LogConfig struct {
	// Path of the debug log file.
	Path string `mapstructure:"path" yaml:"path"`
	// Level is the minimum severity written: debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// Config holds all configuration options for rollcall.
type Config struct {
	// SnapshotPath is the roster snapshot file read on start and written
	// after every mutation.
	SnapshotPath string `mapstructure:"snapshot_path" yaml:"snapshot_path"`
	// AutoReload reloads the roster when the snapshot file changes on disk.
	AutoReload bool `mapstructure:"auto_reload" yaml:"auto_reload"`
	// AutoReloadDebounceMS batches rapid snapshot writes into one reload.
	AutoReloadDebounceMS int `mapstructure:"auto_reload_debounce_ms" yaml:"auto_reload_debounce_ms"`
	// PayrollCacheTTLSeconds bounds how long computed payroll reports are
	// served from cache.
	PayrollCacheTTLSeconds int       `mapstructure:"payroll_cache_ttl_seconds" yaml:"payroll_cache_ttl_seconds"`
	Log                    LogConfig `mapstructure:"log" yaml:"log"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		SnapshotPath:           filepath.Join(home, ".rollcall", "roster.yaml"),
		AutoReload:             true,
		AutoReloadDebounceMS:   1000,
		PayrollCacheTTLSeconds: 300,
		Log: LogConfig{
			Path:  filepath.Join(home, ".rollcall", "debug.log"),
			Level: "info",
		},
	}
}

// WriteDefaultConfig writes the default configuration to path, creating
// parent directories as needed. Existing files are not overwritten.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks cfg for values the rest of the program cannot work with.
func Validate(cfg Config) error {
	if cfg.SnapshotPath == "" {
		return fmt.Errorf("snapshot_path must not be empty")
	}
	if cfg.AutoReloadDebounceMS < 0 {
		return fmt.Errorf("auto_reload_debounce_ms must not be negative")
	}
	if cfg.PayrollCacheTTLSeconds < 0 {
		return fmt.Errorf("payroll_cache_ttl_seconds must not be negative")
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	return nil
}
