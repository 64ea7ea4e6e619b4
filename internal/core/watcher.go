package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	DefaultWatchDebounce = 300 * time.Millisecond
	watchTick            = 50 * time.Millisecond
)

// Watcher reports directories whose listing changed. It watches one root
// and its immediate subdirectories, and calls notify once per directory
// after events for it have been quiet for the debounce period.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	root     string
	watched  map[string]struct{}
	pending  map[string]time.Time
	debounce time.Duration
	notify   func(dir string)
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func NewWatcher(logger *zap.Logger, debounce time.Duration, notify func(dir string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &Watcher{
		watcher:  watcher,
		watched:  make(map[string]struct{}),
		pending:  make(map[string]time.Time),
		debounce: debounce,
		notify:   notify,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs the event loop in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop ends the event loop and releases the OS watches.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("failed to close watcher", zap.Error(err))
	}
}

// Watch replaces the watched set with root and its visible subdirectories.
func (w *Watcher) Watch(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.watched {
		_ = w.watcher.Remove(dir)
	}
	w.watched = make(map[string]struct{})
	w.pending = make(map[string]time.Time)
	w.root = root

	if err := w.add(root); err != nil {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if err := w.add(dir); err != nil {
			w.logger.Debug("skipping directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	return nil
}

// add must be called with mu held.
func (w *Watcher) add(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = struct{}{}
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	dir := filepath.Dir(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.watched[dir]; !ok {
		return
	}
	w.pending[dir] = time.Now()

	if dir != w.root {
		return
	}
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.add(event.Name); err != nil {
				w.logger.Debug("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if _, ok := w.watched[event.Name]; ok {
			_ = w.watcher.Remove(event.Name)
			delete(w.watched, event.Name)
		}
	}
}

func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	var ready []string
	for dir, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, dir)
			delete(w.pending, dir)
		}
	}
	w.mu.Unlock()

	for _, dir := range ready {
		w.logger.Debug("directory changed", zap.String("dir", dir))
		w.notify(dir)
	}
}
