// Package watch calls a function whenever a file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher reports writes to one file, collapsing bursts of events into a
// single call once the file has been quiet for the debounce period.
type Watcher struct {
	notify   *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *logrus.Logger
	onChange func(path string)
}

// New watches path. The containing directory is monitored so that editors
// replacing the file by rename are noticed as well.
func New(logger *logrus.Logger, path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	if err := notify.Add(filepath.Dir(abs)); err != nil {
		notify.Close()
		return nil, errors.Wrapf(err, "watching %s", filepath.Dir(abs))
	}
	logger.Debugf("monitoring path '%v'", abs)
	return &Watcher{
		notify:   notify,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}, nil
}

// Run delivers changes until ctx is done. It closes the watcher before
// returning.
func (w *Watcher) Run(ctx context.Context) {
	defer w.notify.Close()

	// fire is nil while no change is pending.
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("terminating watcher")
			return
		case event, ok := <-w.notify.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugf("watcher got event: %v", event)
			fire = time.After(w.debounce)
		case <-fire:
			fire = nil
			w.onChange(w.path)
		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("watcher got error: %v", err)
		}
	}
}

func (w *Watcher) relevant(e fsnotify.Event) bool {
	if filepath.Clean(e.Name) != w.path {
		return false
	}
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Rename)
}
