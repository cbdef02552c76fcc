// Package session computes the status of a scheduled talk from its start
// and end boundaries.
package session

import (
	"time"

	"github.com/valpere/slidetimer/internal/locale"
)

// Status is the phase of a session relative to now. Values double as
// translation keys.
type Status string

const (
	NotStarted Status = locale.KeyNotStarted
	InProgress Status = locale.KeyInProgress
	Finished   Status = locale.KeyFinished
)

// Window is a scheduled session. A zero boundary means it is not set.
type Window struct {
	Start time.Time
	End   time.Time
}

// Complete reports whether both boundaries are set.
func (w Window) Complete() bool {
	return !w.Start.IsZero() && !w.End.IsZero()
}

// Length returns End-Start, or 0 for an incomplete window.
func (w Window) Length() time.Duration {
	if !w.Complete() {
		return 0
	}
	return w.End.Sub(w.Start)
}

// Info bundles everything derived from (now, window).
type Info struct {
	Status    Status
	Elapsed   time.Duration
	Remaining time.Duration
	Duration  time.Duration
}

// StatusAt returns the status of w at now. Both boundaries are inclusive
// for InProgress. ok is false when the window is incomplete.
func StatusAt(now time.Time, w Window) (status Status, ok bool) {
	if !w.Complete() {
		return "", false
	}
	switch {
	case now.Before(w.Start):
		return NotStarted, true
	case now.After(w.End):
		return Finished, true
	default:
		return InProgress, true
	}
}

// Elapsed returns the time spent in the session: 0 before start, capped at
// the window length after the end.
func Elapsed(now time.Time, w Window) (time.Duration, bool) {
	status, ok := StatusAt(now, w)
	if !ok {
		return 0, false
	}
	switch status {
	case NotStarted:
		return 0, true
	case InProgress:
		return now.Sub(w.Start), true
	default:
		return w.Length(), true
	}
}

// Remaining returns the time left: the full length before start, 0 after
// the end.
func Remaining(now time.Time, w Window) (time.Duration, bool) {
	status, ok := StatusAt(now, w)
	if !ok {
		return 0, false
	}
	switch status {
	case NotStarted:
		return w.Length(), true
	case InProgress:
		return w.End.Sub(now), true
	default:
		return 0, true
	}
}

// Duration returns the window length.
func Duration(w Window) (time.Duration, bool) {
	if !w.Complete() {
		return 0, false
	}
	return w.Length(), true
}

// Compute returns the full Info for now, or ok=false when the window is
// incomplete.
func Compute(now time.Time, w Window) (Info, bool) {
	status, ok := StatusAt(now, w)
	if !ok {
		return Info{}, false
	}
	elapsed, _ := Elapsed(now, w)
	remaining, _ := Remaining(now, w)
	return Info{
		Status:    status,
		Elapsed:   elapsed,
		Remaining: remaining,
		Duration:  w.Length(),
	}, true
}

// Translator is the subset of locale.Translator needed by Label.
type Translator interface {
	T(key string) string
}

// Label renders status in the translator's locale. The empty status renders
// as an empty string.
func Label(tr Translator, status Status) string {
	if status == "" {
		return ""
	}
	return tr.T(string(status))
}
