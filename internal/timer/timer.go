// Package timer keeps countdown and countup timers for one presentation
// session. A timer is identified by the literal token text, so identical
// tokens anywhere in a document share one anchor.
package timer

import (
	"sort"
	"sync"
	"time"
)

// Direction is the counting direction of a timer token.
type Direction byte

const (
	Down Direction = '-'
	Up   Direction = '+'
)

// Preset is the initial value and direction written in a timer token.
type Preset struct {
	Hours     int
	Minutes   int
	Seconds   int
	Direction Direction
}

// TotalSeconds returns the initial value in seconds.
func (p Preset) TotalSeconds() int64 {
	return int64(p.Hours)*3600 + int64(p.Minutes)*60 + int64(p.Seconds)
}

// Store maps a timer key to the instant it was first evaluated.
type Store struct {
	anchors map[string]time.Time
}

func newStore() *Store {
	return &Store{anchors: make(map[string]time.Time)}
}

// Engine evaluates timers against the current session's store. Session
// start and stop swap in a fresh store under the lock, so no evaluation
// ever sees a partially cleared one.
type Engine struct {
	mu        sync.Mutex
	store     *Store
	startedAt time.Time
	active    bool
}

// New returns an idle Engine.
func New() *Engine {
	return &Engine{store: newStore()}
}

// StartSession discards every timer and starts a new session at now.
// Calling it during an active session restarts all timers.
func (e *Engine) StartSession(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = newStore()
	e.startedAt = now
	e.active = true
}

// StopSession discards every timer and returns to idle.
func (e *Engine) StopSession() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = newStore()
	e.startedAt = time.Time{}
	e.active = false
}

// Active reports whether a session is running and when it started.
func (e *Engine) Active() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startedAt, e.active
}

// Evaluate returns the current value in seconds of the timer identified by
// key. The first call for a key anchors it at now. Countdowns stop at zero;
// countups grow without bound.
//
// An idle engine still anchors the key; the anchor is dropped by the next
// StartSession.
func (e *Engine) Evaluate(key string, p Preset, now time.Time) int64 {
	e.mu.Lock()
	anchor, ok := e.store.anchors[key]
	if !ok {
		anchor = now
		e.store.anchors[key] = now
	}
	e.mu.Unlock()

	elapsed := int64(now.Sub(anchor) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	initial := p.TotalSeconds()
	if p.Direction == Down {
		if remaining := initial - elapsed; remaining > 0 {
			return remaining
		}
		return 0
	}
	return initial + elapsed
}

// ActiveTimers returns the keys anchored in the current session, sorted.
func (e *Engine) ActiveTimers() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]string, 0, len(e.store.anchors))
	for k := range e.store.anchors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset forgets one timer; it re-anchors on its next evaluation.
func (e *Engine) Reset(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.store.anchors, key)
}

// ResetAll forgets every timer without ending the session.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = newStore()
}
