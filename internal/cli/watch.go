package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/tsport/internal/utils"
)

// DefaultDebounce coalesces bursts of writes from editors
const DefaultDebounce = 300 * time.Millisecond

// ChangeCallback receives the files that changed since the last call.
// Calls never overlap: they run one at a time on the goroutine of Run.
type ChangeCallback func(changed []string)

// DocumentWatcher watches declaration documents and reports changes after a
// quiet period
type DocumentWatcher struct {
	watcher     *fsnotify.Watcher
	files       map[string]bool
	patterns    []string
	debounce    time.Duration
	diagnostics *utils.DiagnosticSystem

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
	ready   chan struct{} // signalled by the debounce timer
}

// NewDocumentWatcher watches the directories holding paths. Events for
// other files are ignored unless they match one of patterns, so new files
// matching an input glob are picked up too.
func NewDocumentWatcher(paths, patterns []string, diagnostics *utils.DiagnosticSystem) (*DocumentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dw := &DocumentWatcher{
		watcher:     watcher,
		files:       make(map[string]bool, len(paths)),
		patterns:    patterns,
		debounce:    DefaultDebounce,
		diagnostics: diagnostics,
		pending:     make(map[string]bool),
		ready:       make(chan struct{}, 1),
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		dw.files[abs] = true
		dirs[utils.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return dw, nil
}

// SetDebounce overrides the quiet period
func (dw *DocumentWatcher) SetDebounce(d time.Duration) {
	dw.debounce = d
}

// Run delivers change batches to callback until ctx is done or the watcher
// fails. Changes arriving while callback runs are batched for the next call.
func (dw *DocumentWatcher) Run(ctx context.Context, callback ChangeCallback) error {
	defer dw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			dw.stopTimer()
			return nil

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !dw.relevant(event.Name) {
				continue
			}
			dw.diagnostics.Debug("Detected %s on %s", event.Op.String(), event.Name)
			dw.schedule(event.Name)

		case <-dw.ready:
			if changed := dw.drain(); len(changed) > 0 {
				callback(changed)
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return nil
			}
			dw.diagnostics.Warn("Watcher error: %v", err)
		}
	}
}

func (dw *DocumentWatcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = name
	}
	return dw.files[abs] || utils.MatchesAny(dw.patterns, abs)
}

func (dw *DocumentWatcher) schedule(name string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	dw.pending[name] = true
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.timer = time.AfterFunc(dw.debounce, func() {
		select {
		case dw.ready <- struct{}{}:
		default:
		}
	})
}

func (dw *DocumentWatcher) drain() []string {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	changed := make([]string, 0, len(dw.pending))
	for path := range dw.pending {
		changed = append(changed, path)
	}
	dw.pending = make(map[string]bool)
	return changed
}

func (dw *DocumentWatcher) stopTimer() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.timer != nil {
		dw.timer.Stop()
	}
}
