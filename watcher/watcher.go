package watcher

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the project's build-description files (the compilation
// database and the marker file) and emits a debounced trigger when any of
// them is created, rewritten, or removed. Build systems typically rewrite
// the database with a temp-file-and-rename dance, so events are matched by
// final path, and bursts collapse into a single trigger.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	files     map[string]struct{}
	logger    *slog.Logger
}

// NewWatcher watches the parent directories of the given files. The files
// themselves may not exist yet; creating one later still triggers.
func NewWatcher(files []string, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(defaultQuietInterval),
		files:     make(map[string]struct{}, len(files)),
		logger:    logger,
	}

	dirs := make(map[string]struct{})
	for _, file := range files {
		file = filepath.Clean(file)
		w.files[file] = struct{}{}
		dirs[filepath.Dir(file)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			w.logger.Warn("failed to watch directory", "path", dir, "error", err)
		}
	}

	return w, nil
}

// Triggers returns the channel that receives debounced change batches.
// Each batch lists the build-description files that changed.
func (w *Watcher) Triggers() <-chan []string {
	return w.debouncer.Output()
}

// Start begins listening for file system events. Call this in a
// goroutine; it runs until the watcher is closed.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// handleEvent forwards events on the watched files to the debouncer,
// dropping everything else in the watched directories.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if _, ok := w.files[path]; !ok {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("build description changed", "path", path, "op", event.Op.String())
	w.debouncer.Add(path)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
