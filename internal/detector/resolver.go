package detector

import (
	"os"
	"sync"

	"github.com/valpere/slidetimer/internal/locale"
)

// envVars are consulted in POSIX precedence order.
var envVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Resolver picks a locale when the language preference is "auto" or
// unset: the first non-empty locale environment variable wins if it names
// a supported language, then the template prose is classified, then
// locale.Default is used.
type Resolver struct {
	getenv   func(string) string
	detector *Detector

	mu       sync.Mutex
	lastText string
	last     locale.Locale
	cached   bool
}

// NewResolver returns a Resolver reading the process environment. A nil
// detector skips template classification.
func NewResolver(d *Detector) *Resolver {
	return NewResolverWithEnv(d, os.Getenv)
}

// NewResolverWithEnv is NewResolver with a custom environment lookup.
func NewResolverWithEnv(d *Detector, getenv func(string) string) *Resolver {
	return &Resolver{getenv: getenv, detector: d}
}

// Resolve returns the locale for a template whose prose is text.
func (r *Resolver) Resolve(text string) locale.Locale {
	for _, name := range envVars {
		v := r.getenv(name)
		if v == "" {
			continue
		}
		if l, ok := locale.FromLanguageTag(v); ok {
			return l
		}
		break
	}

	if r.detector == nil {
		return locale.Default
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached && r.lastText == text {
		return r.last
	}
	l, _ := r.detector.DetectLocale(text)
	r.lastText, r.last, r.cached = text, l, true
	return l
}
