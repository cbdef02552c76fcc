// Package modewatch reports whether the presenter is in presentation mode.
//
// Presentation mode is signalled by the existence of a flag file: a remote
// clicker script, a slide tool hook or a plain `touch` can create it and
// removing it ends the mode. Changes are picked up from fsnotify events on
// the flag's directory, with a periodic stat as a fallback for filesystems
// that do not deliver events.
package modewatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultPoll is the fallback stat interval.
const DefaultPoll = time.Second

// Subscription is returned by OnChange.
type Subscription interface {
	Disconnect()
}

type subscription struct {
	once sync.Once
	stop func()
}

func (s *subscription) Disconnect() { s.once.Do(s.stop) }

// FileWatcher watches a presentation flag file.
type FileWatcher struct {
	path   string
	poll   time.Duration
	logger zerolog.Logger

	mu     sync.Mutex
	inMode bool
	subs   map[int]func(bool)
	nextID int
}

// NewFileWatcher returns a watcher for the flag file at path. The initial
// state is read immediately.
func NewFileWatcher(path string, poll time.Duration, logger zerolog.Logger) *FileWatcher {
	if poll <= 0 {
		poll = DefaultPoll
	}
	w := &FileWatcher{
		path:   path,
		poll:   poll,
		logger: logger,
		subs:   make(map[int]func(bool)),
	}
	w.inMode = w.flagExists()
	return w
}

// InMode reports the last observed state.
func (w *FileWatcher) InMode() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inMode
}

// OnChange registers cb to run on every transition. cb is never called for
// a non-change and runs on the watcher's goroutine.
func (w *FileWatcher) OnChange(cb func(inMode bool)) Subscription {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = cb
	w.mu.Unlock()

	return &subscription{stop: func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}}
}

// Run watches until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	var events <-chan fsnotify.Event
	var errs <-chan error

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		w.logger.Warn().Err(err).Str("dir", dir).Msg("cannot watch mode directory, polling only")
	} else {
		events, errs = fw.Events, fw.Errors
	}

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	w.Check()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) == filepath.Clean(w.path) {
				w.Check()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check re-reads the flag file and notifies subscribers on a transition.
func (w *FileWatcher) Check() {
	now := w.flagExists()

	w.mu.Lock()
	if now == w.inMode {
		w.mu.Unlock()
		return
	}
	w.inMode = now
	cbs := make([]func(bool), 0, len(w.subs))
	for _, cb := range w.subs {
		cbs = append(cbs, cb)
	}
	w.mu.Unlock()

	w.logger.Debug().Bool("in_mode", now).Str("flag", w.path).Msg("presentation mode changed")
	for _, cb := range cbs {
		cb(now)
	}
}

func (w *FileWatcher) flagExists() bool {
	_, err := os.Stat(w.path)
	return err == nil
}

// Always is a watcher that is permanently in presentation mode.
type Always struct{}

func (Always) InMode() bool { return true }

func (Always) OnChange(func(bool)) Subscription { return &subscription{stop: func() {}} }

func (Always) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
