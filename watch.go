package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer batches changed paths and emits one batch after a quiet period.
// Multiple events for the same path within the window collapse into one.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	output   chan []string
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		pending:  make(map[string]struct{}),
		output:   make(chan []string, 16),
	}
}

// out returns the channel that receives batched paths.
func (d *debouncer) out() <-chan []string {
	return d.output
}

// add records a changed path and restarts the quiet-period timer.
func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// flush sends the accumulated batch and resets the buffer.
func (d *debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}
	batch := make([]string, 0, len(d.pending))
	for path := range d.pending {
		batch = append(batch, path)
	}
	d.pending = make(map[string]struct{})
	d.output <- batch
}

// watchAndRebuild runs a full rebuild whenever the source tree goes quiet
// after a burst of changes. Rebuilds are always full: the output root is
// deleted and recreated, never patched incrementally. Returns when the
// context is cancelled.
func (app *App) watchAndRebuild(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := app.addWatchDirs(watcher); err != nil {
		return err
	}

	deb := newDebouncer(app.WatchDebounce)
	logInfo("Watching %s for changes (debounce %v)", app.SourceDir, app.WatchDebounce)

	for {
		select {
		case <-ctx.Done():
			logInfo("Watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !app.Ignore.shouldIgnoreDir(event.Name) {
						if err := watcher.Add(event.Name); err != nil {
							logWarn("Failed to watch new directory %s: %v", event.Name, err)
						}
					}
					continue
				}
			}
			if app.Ignore.shouldIgnore(event.Name) {
				continue
			}
			deb.add(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logWarn("Watcher error: %v", err)
		case batch := <-deb.out():
			logInfo("%d change%s detected, rebuilding", len(batch), plural(len(batch)))
			if _, err := app.runBuild(); err != nil {
				logWarn("Rebuild failed: %v", err)
			}
		}
	}
}

// addWatchDirs registers the source root and every non-ignored subdirectory.
func (app *App) addWatchDirs(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(app.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != app.SourceDir && app.Ignore.shouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if watchErr := watcher.Add(path); watchErr != nil {
			logWarn("Failed to watch directory %s: %v", path, watchErr)
		}
		return nil
	})
}
