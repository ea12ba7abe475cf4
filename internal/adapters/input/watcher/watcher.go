package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"rgb-controller/internal/ports"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ColoursWatcher pushes the saved colour palette to the view whenever the
// colours file changes on disk.
type ColoursWatcher struct {
	path   string
	prefs  ports.PreferencesRepository
	view   ports.ViewPort
	logger *slog.Logger

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	stopOnce  sync.Once

	mu    sync.Mutex
	timer *time.Timer
}

// New watches the directory containing path; editors often replace the file
// rather than write it in place.
func New(path string, prefs ports.PreferencesRepository, view ports.ViewPort, logger *slog.Logger) (*ColoursWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &ColoursWatcher{
		path:      filepath.Clean(path),
		prefs:     prefs,
		view:      view,
		logger:    logger,
		fsWatcher: fsw,
		done:      make(chan struct{}),
	}, nil
}

func (w *ColoursWatcher) Start() {
	go w.loop()
}

func (w *ColoursWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsWatcher.Close()
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
}

func (w *ColoursWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("colours watcher error", "error", err)
		}
	}
}

// schedule coalesces bursts of events into one reload.
func (w *ColoursWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounce, w.reload)
}

func (w *ColoursWatcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}
	colours, err := w.prefs.Colours(context.Background())
	if err != nil {
		w.logger.Warn("could not reload colours", "error", err)
		return
	}
	w.logger.Debug("colours changed on disk")
	w.view.SetVariable("COLOURS", colours)
}
