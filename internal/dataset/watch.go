package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/metaminer/metaminer/internal/model"
)

// DefaultReloadDelay groups bursts of write events into one reload
const DefaultReloadDelay = 500 * time.Millisecond

// Watcher reloads the dataset whenever the file changes on disk
type Watcher struct {
	path   string
	delay  time.Duration
	logger logr.Logger
	onLoad func(*model.Table)
}

// NewWatcher creates a watcher that calls onLoad with every successfully
// reloaded table. Failed reloads are logged and the previous table stays in use.
func NewWatcher(path string, logger logr.Logger, onLoad func(*model.Table)) *Watcher {
	return &Watcher{
		path:   path,
		delay:  DefaultReloadDelay,
		logger: logger.WithName("watcher"),
		onLoad: onLoad,
	}
}

// SetDelay overrides the debounce delay
func (w *Watcher) SetDelay(d time.Duration) {
	if d > 0 {
		w.delay = d
	}
}

// Run watches until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func(watcher *fsnotify.Watcher) {
		if err := watcher.Close(); err != nil {
			w.logger.Error(err, "could not close watcher")
		}
	}(watcher)

	w.logger.Info("adding watch for file", "path", w.path)
	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.logger.V(1).Info("detected event on dataset file", "event", event.String())
			if event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename {
				// Pipelines replace the file atomically; the old watch dies with it.
				if err := watcher.Add(w.path); err != nil {
					w.logger.Error(err, "could not re-add watch", "path", w.path)
					continue
				}
			} else if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(w.delay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(err, "error watching for file system events")
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	table, err := Load(w.path)
	if err != nil {
		w.logger.Error(err, "reload failed, keeping previous dataset", "path", w.path)
		return
	}
	w.logger.Info("dataset reloaded", "path", w.path, "records", table.Len())
	if w.onLoad != nil {
		w.onLoad(table)
	}
}
