// Package presenter drives live substitution while a talk is being
// presented: it starts a session when presentation mode begins, re-renders
// every tracked fragment on each tick and stops when the mode ends.
package presenter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/valpere/slidetimer/internal/config"
	"github.com/valpere/slidetimer/internal/document"
	"github.com/valpere/slidetimer/internal/locale"
	"github.com/valpere/slidetimer/internal/modewatch"
	"github.com/valpere/slidetimer/internal/replacer"
	"github.com/valpere/slidetimer/internal/session"
	"github.com/valpere/slidetimer/internal/timefmt"
	"github.com/valpere/slidetimer/internal/timer"
)

// ModeWatcher reports presentation mode and its transitions.
type ModeWatcher interface {
	InMode() bool
	OnChange(cb func(inMode bool)) modewatch.Subscription
}

// FragmentStore holds the text fragments being rendered.
type FragmentStore interface {
	FindCandidates() ([]document.Fragment, error)
	Track(f document.Fragment)
	OriginalText(f document.Fragment) (string, bool)
	Write(f document.Fragment, text string)
	DropStale() int
	Clear()
	Commit() error
	Tracked() int
}

// ConfigStore provides the stored session window and language preference.
type ConfigStore interface {
	Times(ctx context.Context) (start, end string, err error)
	Language(ctx context.Context) (string, error)
}

// LanguageResolver picks a locale when the preference is auto or unset.
type LanguageResolver interface {
	Resolve(text string) locale.Locale
}

type Options struct {
	// Interval between ticks. Defaults to one second.
	Interval time.Duration
	// Location used to interpret stored times and to render clocks.
	// Defaults to time.Local.
	Location *time.Location
	// Language pins the display language, bypassing the stored
	// preference. Empty means use the store.
	Language string
	// Resolver is used for the auto preference. Nil resolves to
	// locale.Default.
	Resolver LanguageResolver
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Status is a snapshot of the presenter.
type Status struct {
	Running      bool
	InMode       bool
	RunID        string
	Tracked      int
	ActiveTimers int
	Ticks        int
	Failures     int
	LastTick     time.Time
}

type Presenter struct {
	mode   ModeWatcher
	frags  FragmentStore
	config ConfigStore
	tr     *locale.Translator
	timers *timer.Engine
	repl   *replacer.Replacer
	opts   Options
	logger zerolog.Logger

	// lastPref is only touched from the loop goroutine.
	lastPref string

	mu       sync.Mutex
	running  bool
	runID    string
	ticks    int
	failures int
	lastTick time.Time
}

func New(mode ModeWatcher, frags FragmentStore, cfg ConfigStore, tr *locale.Translator, opts Options, logger zerolog.Logger) *Presenter {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	timers := timer.New()
	return &Presenter{
		mode:   mode,
		frags:  frags,
		config: cfg,
		tr:     tr,
		timers: timers,
		repl:   replacer.New(tr, timers),
		opts:   opts,
		logger: logger,
	}
}

// Run follows presentation mode until ctx is done. Mode transitions and
// ticks are handled on the calling goroutine, one at a time.
func (p *Presenter) Run(ctx context.Context) error {
	changes := make(chan bool, 8)
	sub := p.mode.OnChange(func(inMode bool) {
		select {
		case changes <- inMode:
		case <-ctx.Done():
		}
	})
	defer sub.Disconnect()

	var ticker *time.Ticker
	var tick <-chan time.Time
	startTicking := func() {
		ticker = time.NewTicker(p.opts.Interval)
		tick = ticker.C
	}
	stopTicking := func() {
		if ticker != nil {
			ticker.Stop()
		}
		ticker, tick = nil, nil
	}
	defer stopTicking()

	if p.mode.InMode() {
		p.Start(ctx)
		startTicking()
	}

	for {
		select {
		case <-ctx.Done():
			if p.Running() {
				p.Stop()
			}
			return nil
		case inMode := <-changes:
			switch {
			case inMode && !p.Running():
				p.logger.Info().Msg("entering presentation mode")
				p.Start(ctx)
				startTicking()
			case !inMode && p.Running():
				p.logger.Info().Msg("leaving presentation mode")
				stopTicking()
				p.Stop()
			}
		case <-tick:
			p.Tick(ctx)
		}
	}
}

// Start begins a session: timers restart, tracking is reset and one tick
// runs immediately. Starting a running presenter is a no-op.
func (p *Presenter) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.runID = uuid.New().String()
	runID := p.runID
	p.mu.Unlock()

	p.timers.StartSession(p.now())
	p.frags.Clear()
	p.logger.Info().Str("run_id", runID).Msg("session started")

	p.Tick(ctx)
}

// Stop ends the session and forgets every timer and tracked fragment.
func (p *Presenter) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	runID := p.runID
	p.mu.Unlock()

	p.timers.StopSession()
	p.frags.Clear()
	p.logger.Info().Str("run_id", runID).Msg("session stopped")
}

// Running reports whether a session is active.
func (p *Presenter) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Tick renders every tracked fragment once. Failures are logged and
// counted; they never stop later ticks.
func (p *Presenter) Tick(ctx context.Context) {
	err := p.tick(ctx)

	p.mu.Lock()
	p.ticks++
	p.lastTick = p.now()
	if err != nil {
		p.failures++
	}
	runID := p.runID
	p.mu.Unlock()

	if err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("tick failed")
	}
}

func (p *Presenter) tick(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during tick: %v", r)
		}
	}()

	now := p.now()
	window := p.window(ctx, now)

	frags, err := p.frags.FindCandidates()
	if err != nil {
		return err
	}
	for _, f := range frags {
		p.frags.Track(f)
	}
	if n := p.frags.DropStale(); n > 0 {
		p.logger.Debug().Int("dropped", n).Msg("dropped stale fragments")
	}

	p.refreshLanguage(ctx, frags)

	for _, f := range frags {
		original, ok := p.frags.OriginalText(f)
		if !ok {
			continue
		}
		p.frags.Write(f, p.repl.Substitute(original, now, window))
	}
	return p.frags.Commit()
}

// window loads the stored session boundaries. A boundary that is missing,
// unreadable or unparseable is treated as absent.
func (p *Presenter) window(ctx context.Context, now time.Time) session.Window {
	startRaw, endRaw, err := p.config.Times(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to load session times")
		return session.Window{}
	}
	return session.Window{
		Start: p.parseBoundary("start", startRaw, now),
		End:   p.parseBoundary("end", endRaw, now),
	}
}

func (p *Presenter) parseBoundary(name, raw string, now time.Time) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := timefmt.ParseTimestamp(raw, now, p.opts.Location)
	if err != nil {
		p.logger.Warn().Err(err).Str("boundary", name).Str("value", raw).Msg("ignoring session boundary")
		return time.Time{}
	}
	return t.In(p.opts.Location)
}

func (p *Presenter) refreshLanguage(ctx context.Context, frags []document.Fragment) {
	pref := p.opts.Language
	if pref == "" {
		stored, err := p.config.Language(ctx)
		if err != nil {
			p.logger.Warn().Err(err).Msg("failed to load language preference")
			return
		}
		pref = stored
	}

	if pref != "" && pref != config.LanguageAuto {
		if pref != p.lastPref {
			p.tr.SetLocale(pref)
		}
		p.lastPref = pref
		return
	}
	p.lastPref = pref

	if p.opts.Resolver == nil {
		p.tr.Use(locale.Default)
		return
	}
	var b strings.Builder
	for _, f := range frags {
		if text, ok := p.frags.OriginalText(f); ok {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	p.tr.Use(p.opts.Resolver.Resolve(b.String()))
}

// Status returns a snapshot of the presenter state.
func (p *Presenter) Status() Status {
	p.mu.Lock()
	s := Status{
		Running:  p.running,
		RunID:    p.runID,
		Ticks:    p.ticks,
		Failures: p.failures,
		LastTick: p.lastTick,
	}
	p.mu.Unlock()

	s.InMode = p.mode.InMode()
	s.Tracked = p.frags.Tracked()
	s.ActiveTimers = len(p.timers.ActiveTimers())
	return s
}

func (p *Presenter) now() time.Time {
	return p.opts.Now().In(p.opts.Location)
}
