package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a SnakeConfig in sync with a file on disk.
// Readers call Current at any time; edits are picked up after a short
// debounce. A file that fails to load leaves the previous config in place.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  atomic.Pointer[SnakeConfig]
	onReload func(SnakeConfig, error)
	debounce time.Duration
	stop     chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher for path starting from initial.
// onReload, if not nil, is called after every reload attempt.
func NewWatcher(path string, initial SnakeConfig, onReload func(SnakeConfig, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onReload: onReload,
		debounce: 100 * time.Millisecond,
		stop:     make(chan struct{}),
	}
	w.current.Store(&initial)
	return w, nil
}

// Start begins watching. The parent directory is watched rather than the
// file itself so that editors replacing the file are noticed.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("config: cannot watch %s: %w", w.path, err)
	}
	go w.eventLoop()
	return nil
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() SnakeConfig {
	return *w.current.Load()
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stop)
	w.mu.Unlock()

	return w.watcher.Close()
}

// reload reads the file and swaps it in when valid.
func (w *Watcher) reload() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	data, err := os.ReadFile(w.path)
	var cfg SnakeConfig
	if err == nil {
		cfg, err = Parse(data, w.path)
	} else {
		err = fmt.Errorf("config: failed to read %s: %w", w.path, err)
	}
	if err == nil {
		w.current.Store(&cfg)
	}

	if w.onReload != nil {
		w.onReload(w.Current(), err)
	}
}

// eventLoop handles fsnotify events with debouncing
func (w *Watcher) eventLoop() {
	var timer *time.Timer
	var timerMu sync.Mutex

	resetTimer := func() {
		timerMu.Lock()
		defer timerMu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, w.reload)
	}

	for {
		select {
		case <-w.stop:
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timerMu.Unlock()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				resetTimer()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onReload != nil {
				w.onReload(w.Current(), fmt.Errorf("config: watcher: %w", err))
			}
		}
	}
}
