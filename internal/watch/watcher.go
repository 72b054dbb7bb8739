// Package watch reloads a track manifest when the file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/saltyorg/autocaption/internal/config"
)

// Watcher watches a single file and calls onChange after writes settle
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
	watcher  *fsnotify.Watcher
	mu       sync.Mutex

	// Debounce tracking
	timer *time.Timer

	// Running state
	running bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher for path. The parent directory is watched so that
// editors replacing the file by rename are still noticed.
func New(path string, cfg *config.WatchConfig, onChange func()) (*Watcher, error) {
	if cfg == nil {
		cfg = config.DefaultWatchConfig()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     absPath,
		debounce: cfg.Debounce,
		onChange: onChange,
		watcher:  fsWatcher,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start begins watching
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	w.running = true
	w.wg.Add(1)
	go w.eventLoop()

	log.Info().Str("path", w.path).Msg("Watching track manifest")
	return nil
}

// Stop stops the watcher and cancels any pending reload
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	if w.timer != nil {
		// A stopped timer never calls fire, so release its slot here
		if w.timer.Stop() {
			w.wg.Done()
		}
		w.timer = nil
	}
	w.mu.Unlock()

	// Waits for the event loop and any reload already in progress
	w.cancel()
	w.watcher.Close()
	w.wg.Wait()

	log.Debug().Str("path", w.path).Msg("Manifest watcher stopped")
}

// eventLoop processes filesystem events
func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
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
			log.Error().Err(err).Msg("Manifest watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	w.schedule()
}

// schedule starts or resets the debounce timer
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if w.timer != nil {
		// Reset on an expired timer schedules fire once more
		if !w.timer.Reset(w.debounce) {
			w.wg.Add(1)
		}
		return
	}

	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, w.fire)
	log.Trace().Str("path", w.path).Str("debounce", w.debounce.String()).Msg("Scheduled manifest reload")
}

func (w *Watcher) fire() {
	defer w.wg.Done()

	w.mu.Lock()
	w.timer = nil
	running := w.running
	w.mu.Unlock()

	if running && w.onChange != nil {
		w.onChange()
	}
}
