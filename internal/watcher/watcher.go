// Package watcher drives an fsnotify.Watcher directly: it consumes
// filesystem events, collects added paths into a pending set (a change to
// a pending path restarts the wait, a removal drops it), waits for a
// stabilization window of quiet, then runs the surviving
// snapshot through an ordered filter chain and emits schedule(file) for
// everything that passes.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
)

// DefaultStabilizationWindow is the idle period a candidate file must
// survive before it's considered ready to process.
const DefaultStabilizationWindow = 60 * time.Second

// Filter is one stage of the watcher's filter chain. Pass is
// false for a rejected file; Reason is the debug-log explanation.
type Filter interface {
	Check(file string) (pass bool, reason string, err error)
}

// Watcher debounces raw filesystem events for one input root into
// schedule/cancel calls.
type Watcher struct {
	fs                  *fsnotify.Watcher
	root                string
	stabilizationWindow time.Duration
	filters             []Filter
	onSchedule          func(file string)
	onCancel            func(file string)
	logger              applog.Logger

	mu      sync.Mutex
	pending []string
	timer   *time.Timer
}

// New builds a Watcher rooted at root, recursively watching every
// subdirectory that exists at construction time.
func New(root string, filters []Filter, onSchedule, onCancel func(file string), logger applog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:                  fs,
		root:                root,
		stabilizationWindow: DefaultStabilizationWindow,
		filters:             filters,
		onSchedule:          onSchedule,
		onCancel:            onCancel,
		logger:              logger,
	}
	if err := w.addRecursive(root); err != nil {
		fs.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
}

// Run drives the fsnotify event loop until ctx is cancelled, translating
// Create/Write/Remove/Rename events into add/change/remove handling.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warnf("watcher: fsnotify error: %v", err)
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	switch {
	case ev.Op&fsnotify.Create != 0:
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(ev.Name)
			return
		}
		w.onAdd(ev.Name)
	case ev.Op&fsnotify.Write != 0:
		w.onChange(ev.Name)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.onRemove(ev.Name)
	}
}

func (w *Watcher) onAdd(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !containsString(w.pending, file) {
		w.pending = append(w.pending, file)
	}
	w.resetTimerLocked()
}

func (w *Watcher) onChange(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if containsString(w.pending, file) {
		w.resetTimerLocked()
	}
}

// onRemove drops file from pending (restarting the timer if it was
// present) and emits cancel(file) to observers unconditionally — cancel
// is a no-op downstream when the file was never scheduled, per the
// watcher re-scheduling design note.
func (w *Watcher) onRemove(file string) {
	w.mu.Lock()
	if idx := indexOfString(w.pending, file); idx >= 0 {
		w.pending = append(w.pending[:idx], w.pending[idx+1:]...)
		w.resetTimerLocked()
	}
	w.mu.Unlock()

	if w.onCancel != nil {
		w.onCancel(file)
	}
}

// resetTimerLocked must be called with w.mu held.
func (w *Watcher) resetTimerLocked() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.stabilizationWindow, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	snapshot := append([]string{}, w.pending...)
	w.pending = nil
	w.timer = nil
	w.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}
	sort.Strings(snapshot)

	for _, file := range snapshot {
		pass, reason, err := w.runFilters(file)
		if err != nil {
			if w.logger != nil {
				w.logger.Warnf("watcher: filter error for %q: %v", file, err)
			}
			continue
		}
		if !pass {
			if w.logger != nil {
				w.logger.Debugf("IGNORE: '%s': %s", file, reason)
			}
			continue
		}
		if w.onSchedule != nil {
			w.onSchedule(file)
		}
	}
}

// runFilters evaluates the filter chain in order, short-circuiting on the
// first rejection.
func (w *Watcher) runFilters(file string) (pass bool, reason string, err error) {
	return RunFilters(w.filters, file)
}

// RunFilters evaluates an ordered filter chain against file,
// short-circuiting on the first rejection. Exported so an initial
// directory scan (which predates any live fsnotify event) can apply the
// identical chain before scheduling an already-present file.
func RunFilters(filters []Filter, file string) (pass bool, reason string, err error) {
	for _, f := range filters {
		ok, why, err := f.Check(file)
		if err != nil {
			return false, "", err
		}
		if !ok {
			return false, why, nil
		}
	}
	return true, "", nil
}

func containsString(ss []string, s string) bool {
	return indexOfString(ss, s) >= 0
}

func indexOfString(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
