package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls reload when any of watched files changes.
// Events are debounced: reload is called once the files stay unchanged for the debounce delay.
type Watcher struct {
	mu      sync.Mutex
	files   map[string]bool
	dirs    []string
	delay   time.Duration
	reload  func() error
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for files. logger may be nil.
func NewWatcher(files []string, delay time.Duration, logger *slog.Logger, reload func() error) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Watcher{
		files:  make(map[string]bool),
		delay:  delay,
		reload: reload,
		logger: logger.With("component", "watcher"),
	}

	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

// Start starts watching. Directories are watched rather than files,
// so that files replaced by editors keep being watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch directory: %w", err)
		}
	}

	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	w.logger.Info("started watching tables", "files", len(w.files))

	go w.watchLoop(ctx)
	return nil
}

// Stop stops watching and waits for the watch loop to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	done := w.doneCh
	w.mu.Unlock()
	<-done
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer func() {
		w.watcher.Close()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	timer := time.NewTimer(w.delay)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watcher (context cancelled)")
			return

		case <-w.stopCh:
			w.logger.Info("stopping watcher (stop signal)")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.files[filepath.Clean(event.Name)] || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("tables changed", "file", event.Name, "op", event.Op.String())
			pending = true
			timer.Reset(w.delay)

		case <-timer.C:
			if !pending {
				continue
			}

			pending = false
			if err := w.reload(); err != nil {
				w.logger.Error("failed to reload tables", "error", err)
			} else {
				w.logger.Info("tables reloaded")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}
