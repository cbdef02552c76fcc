// Package placeholder recognizes live-value tokens embedded in slide text:
// clock tokens such as <<time^&>>, session tokens such as <<status>>, date
// tokens, and timer tokens such as <<5:00->> or <<1:30:00+>>.
//
// Text is parsed once into a list of Placeholders; Expand then rewrites
// every occurrence in a single left-to-right pass.
package placeholder

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/valpere/slidetimer/internal/timer"
)

// Type tags the token family of a Placeholder.
type Type string

const (
	Time           Type = "time"
	Start          Type = "start"
	End            Type = "end"
	StartTime      Type = "startTime"
	EndTime        Type = "endTime"
	StartDate      Type = "startDate"
	EndDate        Type = "endDate"
	StartShortDate Type = "startShortDate"
	EndShortDate   Type = "endShortDate"
	StartLongDate  Type = "startLongDate"
	EndLongDate    Type = "endLongDate"
	Status         Type = "status"
	Elapsed        Type = "elapsed"
	Remaining      Type = "remaining"
	Duration       Type = "duration"
	Date           Type = "date"
	ShortDate      Type = "shortDate"
	LongDate       Type = "longDate"
	Timer          Type = "timer"
)

// Placeholder is one token occurrence.
type Placeholder struct {
	Type Type
	// Match is the token exactly as written, brackets included.
	Match string
	// Modifiers holds the ^ and & suffix characters of clock tokens.
	Modifiers string
	// Timer is set for Type == Timer only.
	Timer timer.Preset
	// Pos and End are byte offsets of Match in the scanned text.
	Pos int
	End int
}

type family struct {
	typ Type
	re  *regexp.Regexp
	// parse fills type-specific fields from the submatches.
	parse func(p *Placeholder, sub []string) bool
}

func withModifiers(p *Placeholder, sub []string) bool {
	p.Modifiers = sub[1]
	return true
}

func noFields(*Placeholder, []string) bool { return true }

func longTimer(p *Placeholder, sub []string) bool {
	return fillTimer(p, sub[1], sub[2], sub[3], sub[4])
}

func shortTimer(p *Placeholder, sub []string) bool {
	return fillTimer(p, "0", sub[1], sub[2], sub[3])
}

func fillTimer(p *Placeholder, h, m, s, dir string) bool {
	var vals [3]int
	for i, raw := range []string{h, m, s} {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return false
		}
		vals[i] = int(n)
	}
	p.Timer = timer.Preset{
		Hours:     vals[0],
		Minutes:   vals[1],
		Seconds:   vals[2],
		Direction: timer.Direction(dir[0]),
	}
	return true
}

func clock(typ Type, name string) family {
	return family{typ, regexp.MustCompile(`(?i)<<` + name + `([&^]*)>>`), withModifiers}
}

func simple(typ Type, name string) family {
	return family{typ, regexp.MustCompile(`(?i)<<` + name + `>>`), noFields}
}

var (
	reAny = regexp.MustCompile(`<<[^>]+>>`)

	// families in discovery order used by Extract.
	families = []family{
		clock(Time, "time"),
		clock(Start, "start"),
		clock(End, "end"),
		clock(StartTime, "startTime"),
		clock(EndTime, "endTime"),
		{Timer, regexp.MustCompile(`<<(\d+):(\d+):(\d+)([-+])>>`), longTimer},
		{Timer, regexp.MustCompile(`<<(\d+):(\d+)([-+])>>`), shortTimer},
		simple(Status, "status"),
		simple(Elapsed, "elapsed"),
		simple(Remaining, "remaining"),
		simple(Duration, "duration"),
		simple(Date, "date"),
		simple(ShortDate, "shortDate"),
		simple(LongDate, "longDate"),
		simple(StartDate, "startDate"),
		simple(EndDate, "endDate"),
		simple(StartShortDate, "startShortDate"),
		simple(EndShortDate, "endShortDate"),
		simple(StartLongDate, "startLongDate"),
		simple(EndLongDate, "endLongDate"),
	}
)

// Has reports whether text contains anything shaped like <<...>>, whether or
// not it is a recognized token.
func Has(text string) bool {
	return reAny.MatchString(text)
}

// Extract returns every recognized token in text, grouped by family in a
// fixed order and left to right within each family. Use Scan when document
// order matters.
func Extract(text string) []Placeholder {
	if !strings.Contains(text, "<<") {
		return nil
	}
	var out []Placeholder
	for _, f := range families {
		for _, idx := range f.re.FindAllStringSubmatchIndex(text, -1) {
			sub := make([]string, len(idx)/2)
			for i := range sub {
				if idx[2*i] >= 0 {
					sub[i] = text[idx[2*i]:idx[2*i+1]]
				}
			}
			p := Placeholder{Type: f.typ, Match: sub[0], Pos: idx[0], End: idx[1]}
			if !f.parse(&p, sub) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// Scan returns the same tokens as Extract ordered by position in text.
// Token bodies never contain '<' or '>', so two matches cannot overlap.
func Scan(text string) []Placeholder {
	out := Extract(text)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

// Expand rewrites text, replacing each recognized token with fn's result.
// When fn returns false the token is kept verbatim.
func Expand(text string, fn func(Placeholder) (string, bool)) string {
	tokens := Scan(text)
	if len(tokens) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, p := range tokens {
		b.WriteString(text[last:p.Pos])
		if v, ok := fn(p); ok {
			b.WriteString(v)
		} else {
			b.WriteString(p.Match)
		}
		last = p.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// Categories counts tokens per display group.
type Categories struct {
	Time      int
	TimeRange int
	Timer     int
	Date      int
}

// Analysis summarizes the tokens in a text.
type Analysis struct {
	Total        int
	Categories   Categories
	Placeholders []Placeholder
}

// Analyze extracts tokens and counts them per group.
func Analyze(text string) Analysis {
	ps := Extract(text)
	a := Analysis{Total: len(ps), Placeholders: ps}
	for _, p := range ps {
		switch p.Type {
		case Time:
			a.Categories.Time++
		case Start, End, StartTime, EndTime, Status, Elapsed, Remaining, Duration:
			a.Categories.TimeRange++
		case Timer:
			a.Categories.Timer++
		case Date, ShortDate, LongDate, StartDate, EndDate,
			StartShortDate, EndShortDate, StartLongDate, EndLongDate:
			a.Categories.Date++
		}
	}
	return a
}

// NeedsWindow reports whether t can only be rendered with a complete
// session window.
func (t Type) NeedsWindow() bool {
	switch t {
	case Start, End, StartTime, EndTime, StartDate, EndDate,
		StartShortDate, EndShortDate, StartLongDate, EndLongDate,
		Status, Elapsed, Remaining, Duration:
		return true
	}
	return false
}
