package locale

import (
	"sync"

	"github.com/rs/zerolog"
)

// Translator resolves keys against the active locale. The locale can be
// switched at runtime, so everything formatted through it follows the
// latest preference.
type Translator struct {
	mu     sync.RWMutex
	locale Locale
	table  *Table
	logger zerolog.Logger
}

// NewTranslator returns a Translator for code using the built-in dictionary.
// Unsupported codes are coerced to Default with a warning.
func NewTranslator(code string, logger zerolog.Logger) *Translator {
	return NewTranslatorWithTable(code, &builtin, logger)
}

// NewTranslatorWithTable is NewTranslator over a custom dictionary.
func NewTranslatorWithTable(code string, table *Table, logger zerolog.Logger) *Translator {
	t := &Translator{table: table, logger: logger}
	t.locale = t.coerce(code)
	return t
}

// Locale returns the active locale.
func (t *Translator) Locale() Locale {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// SetLocale switches to code, falling back to Default with a warning when
// the code is not supported.
func (t *Translator) SetLocale(code string) {
	l := t.coerce(code)
	t.mu.Lock()
	t.locale = l
	t.mu.Unlock()
}

// Use switches to an already validated locale.
func (t *Translator) Use(l Locale) {
	if !l.valid() {
		l = Default
	}
	t.mu.Lock()
	t.locale = l
	t.mu.Unlock()
}

// T translates key in the active locale.
func (t *Translator) T(key string) string {
	return t.table.Lookup(t.Locale(), key)
}

func (t *Translator) coerce(code string) Locale {
	l, ok := Parse(code)
	if !ok {
		t.logger.Warn().
			Str("locale", code).
			Str("fallback", Default.String()).
			Msg("unsupported locale")
	}
	return l
}
