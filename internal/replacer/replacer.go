// Package replacer renders live values into slide text.
package replacer

import (
	"time"

	"github.com/valpere/slidetimer/internal/locale"
	"github.com/valpere/slidetimer/internal/placeholder"
	"github.com/valpere/slidetimer/internal/session"
	"github.com/valpere/slidetimer/internal/timefmt"
	"github.com/valpere/slidetimer/internal/timer"
)

// Replacer substitutes every recognized token in a text. Tokens whose data
// is unavailable are left exactly as written.
type Replacer struct {
	tr     *locale.Translator
	format *timefmt.Formatter
	timers *timer.Engine
}

// New returns a Replacer that localizes through tr and evaluates timer
// tokens against timers.
func New(tr *locale.Translator, timers *timer.Engine) *Replacer {
	return &Replacer{
		tr:     tr,
		format: timefmt.New(tr),
		timers: timers,
	}
}

// Substitute returns text with its tokens rendered for now. Session tokens
// are rendered only when w has both boundaries. Times are formatted in the
// location of now and of the window boundaries as given.
func (r *Replacer) Substitute(text string, now time.Time, w session.Window) string {
	info, haveInfo := session.Compute(now, w)

	return placeholder.Expand(text, func(p placeholder.Placeholder) (string, bool) {
		if p.Type.NeedsWindow() && !haveInfo {
			return "", false
		}
		switch p.Type {
		case placeholder.Time:
			return timefmt.ClockTime(now, p.Modifiers), true
		case placeholder.Date:
			return timefmt.Date(now), true
		case placeholder.ShortDate:
			return timefmt.ShortDate(now), true
		case placeholder.LongDate:
			return r.format.LongDate(now), true
		case placeholder.Timer:
			return timefmt.TimerSeconds(r.timers.Evaluate(p.Match, p.Timer, now)), true

		case placeholder.Start:
			return timefmt.DateAndTime(w.Start, p.Modifiers), true
		case placeholder.End:
			return timefmt.DateAndTime(w.End, p.Modifiers), true
		case placeholder.StartTime:
			return timefmt.ClockTime(w.Start, p.Modifiers), true
		case placeholder.EndTime:
			return timefmt.ClockTime(w.End, p.Modifiers), true
		case placeholder.StartDate:
			return timefmt.Date(w.Start), true
		case placeholder.EndDate:
			return timefmt.Date(w.End), true
		case placeholder.StartShortDate:
			return timefmt.ShortDate(w.Start), true
		case placeholder.EndShortDate:
			return timefmt.ShortDate(w.End), true
		case placeholder.StartLongDate:
			return r.format.LongDate(w.Start), true
		case placeholder.EndLongDate:
			return r.format.LongDate(w.End), true

		case placeholder.Duration:
			return timefmt.Duration(info.Duration), true
		case placeholder.Status:
			return session.Label(r.tr, info.Status), true
		case placeholder.Elapsed:
			return timefmt.Duration(info.Elapsed), true
		case placeholder.Remaining:
			return timefmt.Duration(info.Remaining), true
		}
		return "", false
	})
}
