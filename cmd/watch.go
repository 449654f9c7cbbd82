package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rollcall/internal/log"
	"rollcall/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the roster when the snapshot changes on disk",
	Long: `Watch the snapshot file and reload the roster on every external
change, printing the registry summary after each reload. Runs until
interrupted.

Honors the auto_reload_debounce_ms setting, so editors that write in
bursts trigger a single reload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.AutoReload {
			return fmt.Errorf("auto_reload is disabled in the configuration")
		}

		w, err := watcher.New(watcher.Config{
			SnapshotPath: cfg.SnapshotPath,
			DebounceDur:  time.Duration(cfg.AutoReloadDebounceMS) * time.Millisecond,
		})
		if err != nil {
			return err
		}
		changes, err := w.Start()
		if err != nil {
			return err
		}
		defer func() {
			if stopErr := w.Stop(); stopErr != nil {
				log.ErrorErr(log.CatWatcher, "stopping watcher", stopErr)
			}
		}()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", cfg.SnapshotPath)
		for {
			select {
			case <-changes:
				svc.Reload()
				fmt.Fprintf(cmd.OutOrStdout(), "reloaded: %s\n", svc.Roster().String())
			case <-interrupt:
				return nil
			}
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every person, tag, and session",
	Long: `Clear the whole registry and persist the empty snapshot.

This cannot be undone; pass --yes to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("refusing to clear the registry without --yes")
		}
		return svc.Reset()
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm clearing the registry")
	rootCmd.AddCommand(watchCmd, resetCmd)
}
