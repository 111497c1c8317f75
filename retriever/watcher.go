package retriever

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"dapoerjuna/logging"
)

// debounceDelay coalesces the write bursts editors and csv exporters produce.
const debounceDelay = 500 * time.Millisecond

// Watcher monitors the recipe table file and triggers a rebuild callback
// when it changes, so a running assistant picks up an updated data set
// without a restart.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	rebuild func(ctx context.Context) error
	logger  logging.Logger
}

// NewWatcher creates a watcher for the file at path. rebuild is invoked
// after each settled change.
func NewWatcher(path string, rebuild func(ctx context.Context) error, logger logging.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	// Watch the directory: editors replace files by rename, which drops a
	// watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{watcher: w, path: path, rebuild: rebuild, logger: logger}, nil
}

// Run blocks until ctx is cancelled, rebuilding on settled changes to the
// watched file. Intended to run on its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.logger.Info("retriever.watch.rebuild", "path", w.path)
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("retriever.watch.rebuild_failed", "path", w.path, "error", err.Error())
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("retriever.watch.error", "error", err.Error())
		}
	}
}
