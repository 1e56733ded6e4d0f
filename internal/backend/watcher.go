// Package backend watches the document on disk and reloads it after changes.
package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultDebounce coalesces the burst of events an editor save produces.
	DefaultDebounce = 150 * time.Millisecond
	minReloadGap    = 500 * time.Millisecond
)

// Loader reads and parses the document at path.
type Loader func(path string) (*document.Document, error)

// Event carries a reloaded document or the error that prevented it.
type Event struct {
	Path string
	Doc  *document.Document
	Err  error
}

// Watcher reloads a single file whenever it changes and publishes events.
type Watcher struct {
	path     string
	load     Loader
	debounce time.Duration
	throttle *throttle
	fs       *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors which replace the file on save are still observed.
func NewWatcher(path string, load Loader, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		load:     load,
		debounce: debounce,
		throttle: newThrottle(minReloadGap),
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	events.Backend.Watch(abs)
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		fsw.Close()
		close(w.events)
		events.Backend.Stopped()
	}()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of reload events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(evt) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		case <-timer.C:
			if !w.throttle.allow() {
				events.Backend.Throttled(w.path)
				if err := w.throttle.wait(w.ctx); err != nil {
					return
				}
			}
			doc, err := w.load(w.path)
			if err != nil {
				events.Backend.ReloadError(w.path, err)
			} else {
				events.Backend.Reload(w.path, doc.Len())
			}
			if !w.emit(Event{Path: w.path, Doc: doc, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != w.path {
		return false
	}
	return evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Rename)
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
