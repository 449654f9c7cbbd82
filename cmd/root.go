package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rollcall/internal/application"
	"rollcall/internal/config"
	"rollcall/internal/infrastructure/snapshot"
	"rollcall/internal/log"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config

	svc     *application.Service
	cleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "Attendance and payroll tracking for recurring sessions",
	Long: `Rollcall keeps a registry of persons, tags, and sessions, tracks
attendance per session, and computes duration-weighted payroll from the
pay rates captured at enrollment time.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupService,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/rollcall/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging")
	rootCmd.PersistentFlags().String("snapshot", "",
		"path to the roster snapshot file")

	_ = viper.BindPFlag("snapshot_path", rootCmd.PersistentFlags().Lookup("snapshot"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("snapshot_path", defaults.SnapshotPath)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("auto_reload_debounce_ms", defaults.AutoReloadDebounceMS)
	viper.SetDefault("payroll_cache_ttl_seconds", defaults.PayrollCacheTTLSeconds)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("log.level", defaults.Log.Level)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .rollcall/config.yaml (current directory)
		// 2. ~/.config/rollcall/config.yaml (user config)
		if _, err := os.Stat(".rollcall/config.yaml"); err == nil {
			viper.SetConfigFile(".rollcall/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "rollcall"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .rollcall/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".rollcall/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setupService validates the config, wires logging, and loads the roster
// snapshot into a fresh application service.
func setupService(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug || os.Getenv("ROLLCALL_DEBUG") != "" {
		closeLog, err := log.Init(cfg.Log.Path)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		cleanup = closeLog
		log.SetEnabled(true)
		log.SetMinLevel(parseLevel(cfg.Log.Level))
		log.Info(log.CatConfig, "config loaded", "file", viper.ConfigFileUsed(), "snapshot", cfg.SnapshotPath)
	}

	store := snapshot.NewStore(cfg.SnapshotPath)
	ttl := time.Duration(cfg.PayrollCacheTTLSeconds) * time.Second
	svc = application.NewService(store, ttl)
	if err := svc.Load(); err != nil {
		return fmt.Errorf("loading snapshot %s: %w", cfg.SnapshotPath, err)
	}
	return nil
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
