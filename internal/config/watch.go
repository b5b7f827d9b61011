package config

import (
	"path/filepath"
	"sync"
	"time"

	"aura/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler receives the freshly loaded config after the file changes.
type ReloadHandler func(cfg *Config)

// Watcher reloads the config file when it changes on disk.
// Only hot tunables should be read from the reloaded config; backends
// built at startup keep their original settings.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onReload  ReloadHandler
	pending   time.Time
	mu        sync.Mutex
	done      chan struct{}
	stopOnce  sync.Once
}

const reloadDebounce = 500 * time.Millisecond

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(path string, onReload ReloadHandler) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		path:      path,
		onReload:  onReload,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the config file's directory.
// Watching the directory rather than the file survives editors that
// replace the file on save.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsWatcher.Close()
	})
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(reloadDebounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.Warn("config watcher error", "error", err)

		case <-ticker.C:
			w.mu.Lock()
			stale := !w.pending.IsZero() && time.Since(w.pending) >= reloadDebounce
			if stale {
				w.pending = time.Time{}
			}
			w.mu.Unlock()
			if stale {
				w.reload()
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		logging.Warn("config reload failed", "path", w.path, "error", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		logging.Warn("reloaded config invalid, keeping current", "error", err)
		return
	}
	logging.Info("config reloaded", "path", w.path,
		"confidence_threshold", cfg.Brain.ConfidenceThreshold)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
