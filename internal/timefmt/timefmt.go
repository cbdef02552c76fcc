// Package timefmt renders clock times, calendar dates and durations for
// placeholder substitution. All functions use the location carried by the
// time value; callers convert to the display zone beforehand.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/valpere/slidetimer/internal/locale"
)

// Modifier characters accepted after clock-time tokens.
const (
	ModNoSeconds = '^'
	Mod24Hour    = '&'
)

// ErrInvalidTimestamp is returned by ParseTimestamp for unrecognised input.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Translator is the subset of locale.Translator used for month names.
type Translator interface {
	T(key string) string
}

// Formatter renders the locale-dependent formats.
type Formatter struct {
	tr Translator
}

// New returns a Formatter resolving month names through tr.
func New(tr Translator) *Formatter {
	return &Formatter{tr: tr}
}

// ClockTime formats the time of day of t. Modifiers may contain '^' (drop
// seconds) and '&' (24-hour clock); any other characters are ignored.
func ClockTime(t time.Time, modifiers string) string {
	noSeconds := strings.ContainsRune(modifiers, ModNoSeconds)
	use24Hour := strings.ContainsRune(modifiers, Mod24Hour)

	hours, minutes, seconds := t.Clock()

	if use24Hour {
		if noSeconds {
			return fmt.Sprintf("%02d:%02d", hours, minutes)
		}
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}

	ampm := "AM"
	if hours >= 12 {
		ampm = "PM"
	}
	hours %= 12
	if hours == 0 {
		hours = 12
	}

	if noSeconds {
		return fmt.Sprintf("%d:%02d %s", hours, minutes, ampm)
	}
	return fmt.Sprintf("%d:%02d:%02d %s", hours, minutes, seconds, ampm)
}

// Date formats t as MM/DD/YYYY.
func Date(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", int(t.Month()), t.Day(), t.Year())
}

// ShortDate formats t as MM/DD/YY. The year is the last two characters of
// the decimal year, with no century handling.
func ShortDate(t time.Time) string {
	year := strconv.Itoa(t.Year())
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return fmt.Sprintf("%02d/%02d/%s", int(t.Month()), t.Day(), year)
}

// DateAndTime formats t as "YYYY-MM-DD <clock time>". Modifiers only affect
// the clock part. The zero time renders as an empty string.
func DateAndTime(t time.Time, modifiers string) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d-%02d-%02d %s", t.Year(), int(t.Month()), t.Day(), ClockTime(t, modifiers))
}

// Duration formats the magnitude of d as H:MM:SS, or M:SS below one hour.
// Sub-second remainders are truncated.
func Duration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	return TimerSeconds(int64(d / time.Second))
}

// TimerSeconds formats a non-negative number of seconds like Duration.
func TimerSeconds(total int64) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// LongDate formats t as "<Month> D, YYYY" with a localized month name.
func (f *Formatter) LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", f.LongMonthName(t.Month()), t.Day(), t.Year())
}

// MonthName returns the localized abbreviated month name.
func (f *Formatter) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return f.tr.T(locale.MonthKeys[m-1])
}

// LongMonthName returns the localized full month name.
func (f *Formatter) LongMonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return f.tr.T(locale.LongMonthKeys[m-1])
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a stored session boundary. Accepted forms are
// RFC 3339, local ISO 8601 date-times ("2026-02-18T14:00:00", minutes
// precision or a space separator also allowed) interpreted in loc, and
// the legacy "HH:MM[:SS]" form meaning that time on the day of now.
// Compatibility forms such as full-width digits are folded first.
func ParseTimestamp(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(norm.NFKC.String(s))
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if loc == nil {
		loc = time.Local
	}

	if strings.ContainsAny(s, "T-") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.In(loc), nil
		}
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	var hms [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
		}
		hms[i] = n
	}
	if hms[0] > 23 || hms[1] > 59 || hms[2] > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	day := now.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), hms[0], hms[1], hms[2], 0, loc), nil
}
