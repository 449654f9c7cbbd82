// Package watcher provides file system watching with debouncing for the
// roster snapshot file.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the snapshot file for changes and sends notifications.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	snapshotPath string
	debounce     time.Duration
	onChange     chan struct{}
	done         chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	SnapshotPath string
	DebounceDur  time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(snapshotPath string) Config {
	return Config{
		SnapshotPath: snapshotPath,
		DebounceDur:  1 * time.Second,
	}
}

// New creates a new snapshot watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher:    fsw,
		snapshotPath: cfg.SnapshotPath,
		debounce:     cfg.DebounceDur,
		onChange:     make(chan struct{}, 1),
		done:         make(chan struct{}),
	}, nil
}

// Start begins watching the snapshot directory.
// Returns a channel that receives a signal when the snapshot changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	// Watch the directory: the store replaces the file by rename, which
	// drops any watch placed on the file itself.
	dir := filepath.Dir(w.snapshotPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				// Non-blocking send - drop if channel full
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Keep watching; callers wanting error visibility can wrap
			// the watcher.

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a reload.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	// The store writes a temp file and renames it over the snapshot, so
	// create and rename both count alongside plain writes.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.snapshotPath)
}
