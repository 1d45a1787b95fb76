package fs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/stock/pkg/core"
)

// debounceWindow coalesces the burst of events produced by one atomic save.
const debounceWindow = 50 * time.Millisecond

type watchWorker struct {
	repo     *Repository
	pattern  string
	watcher  *fsnotify.Watcher
	events   chan<- core.Event
	debounce time.Duration
}

// Watch emits an event whenever a file next to the inventory whose base name
// matches pattern is created, rewritten or removed. An empty pattern watches
// the inventory file itself. The channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = filepath.Base(r.Path)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.dir()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.dir(), err)
	}

	events := make(chan core.Event, r.config.EventBuffer)
	w := &watchWorker{
		repo:     r,
		pattern:  pattern,
		watcher:  watcher,
		events:   events,
		debounce: debounceWindow,
	}
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.handleWatchError(fmt.Errorf("watcher panic: %w", err))
	}))
	return events, nil
}

// run is the main event loop. Events are held per file until the debounce
// timer fires, then flushed in arrival order.
func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	pending := make(map[string]core.EventType)
	var order []string
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			eType, ok := w.classify(event)
			if !ok {
				continue
			}
			prev, seen := pending[event.Name]
			if !seen {
				order = append(order, event.Name)
			}
			pending[event.Name] = coalesce(prev, eType)
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.repo.handleWatchError(err)

		case <-timer.C:
			for _, name := range order {
				w.emit(ctx, core.Event{
					Type:      pending[name],
					Path:      name,
					Timestamp: time.Now().Unix(),
				})
			}
			clear(pending)
			order = order[:0]
		}
	}
}

// classify maps an fsnotify event to a core event type.
// Temp files, non-matching names and pure chmod events are dropped.
func (w *watchWorker) classify(event fsnotify.Event) (core.EventType, bool) {
	if isTempFile(event.Name) {
		return "", false
	}
	if ok, err := doublestar.Match(w.pattern, filepath.Base(event.Name)); err != nil || !ok {
		return "", false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete, true
	case event.Has(fsnotify.Create):
		return core.EventCreate, true
	case event.Has(fsnotify.Write):
		return core.EventModify, true
	default:
		return "", false
	}
}

func coalesce(prev, next core.EventType) core.EventType {
	switch {
	case prev == core.EventCreate && next == core.EventModify:
		return core.EventCreate
	case prev == core.EventDelete && next == core.EventCreate:
		// Replaced in place, e.g. by an atomic rename.
		return core.EventModify
	default:
		return next
	}
}

func (w *watchWorker) emit(ctx context.Context, e core.Event) {
	w.repo.debug("inventory changed", "type", e.Type, "path", e.Path)
	select {
	case w.events <- e:
	case <-ctx.Done():
	}
}

func (r *Repository) handleWatchError(err error) {
	if r.config.Logger != nil {
		r.config.Logger.Error("fsnotify error", "error", err)
	}
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
