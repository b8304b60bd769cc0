package merge

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs the merge whenever one of the extractor output files
// changes on disk. Rapid successive writes are debounced into a single
// merge run. The servers never consume a Watcher; they load the dataset
// once at startup, so this is a development-loop tool.
type Watcher struct {
	watcher *fsnotify.Watcher
	inputs  Inputs
	outPath string
	logger  *slog.Logger

	debounce time.Duration

	timerMu sync.Mutex
	timer   *time.Timer

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the given merge inputs. debounce <= 0
// falls back to 500ms.
func NewWatcher(in Inputs, outPath string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher:  fsw,
		inputs:   in,
		outPath:  outPath,
		logger:   logger,
		debounce: debounce,
		stopChan: make(chan struct{}),
	}, nil
}

// Start runs an initial merge, then watches the input files' directories
// and re-merges after each debounced change. It returns after the watches
// are registered; the event loop runs in a background goroutine.
func (w *Watcher) Start() error {
	if err := Run(w.inputs, w.outPath, w.logger); err != nil {
		return fmt.Errorf("initial merge failed: %w", err)
	}

	// Watch the parent directories: extractors replace output files
	// wholesale, and watching the files directly would lose the watch
	// on rename-based writes.
	watched := make(map[string]bool)
	for _, path := range w.inputPaths() {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		if watched[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	w.logger.Info("watching extractor outputs", "dirs", len(watched), "out", w.outPath)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()
		err = w.watcher.Close()
		w.logger.Info("merge watcher stopped")
	})
	return err
}

func (w *Watcher) inputPaths() []string {
	return []string{w.inputs.APIPath, w.inputs.DocsPath, w.inputs.LogicPath, w.inputs.TokensPath}
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
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
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if !w.isInput(event.Name) {
		return
	}

	w.logger.Debug("input changed", "op", event.Op.String(), "file", event.Name)
	w.scheduleMerge()
}

func (w *Watcher) isInput(path string) bool {
	clean := filepath.Clean(path)
	for _, in := range w.inputPaths() {
		if in != "" && filepath.Clean(in) == clean {
			return true
		}
	}
	return false
}

// scheduleMerge resets the shared debounce timer. All inputs funnel into
// one timer because a pipeline run touches several of them back to back.
func (w *Watcher) scheduleMerge() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopChan:
			return
		default:
		}
		if err := Run(w.inputs, w.outPath, w.logger); err != nil {
			w.logger.Error("merge failed", "error", err)
		}
	})
}
