package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reparses a Registry when its project file changes on disk.
type Watcher struct {
	registry *Registry
	path     string
	onReload func(error)
	log      logrus.FieldLogger
}

// NewWatcher watches path for the registry. onReload, if set, runs after
// every reparse with its result.
func NewWatcher(r *Registry, path string, onReload func(error), log logrus.FieldLogger) *Watcher {
	return &Watcher{
		registry: r,
		path:     filepath.Clean(path),
		onReload: onReload,
		log:      log.WithField("component", "actions-watch"),
	}
}

// Run blocks until ctx is done. The parent directory is watched so that
// editors replacing the file are noticed too.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.log.WithField("path", w.path).Info("watching project actions")

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			err := w.registry.Reparse()
			if err == nil {
				w.log.Info("project actions reloaded")
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}
