// Package locale defines the closed set of display languages and the
// hardcoded dictionary used to localize rendered placeholder values.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported display languages.
type Locale int

const (
	EN Locale = iota
	ES

	numLocales
)

// Default is used whenever a requested language is not supported.
const Default = EN

var codes = [numLocales]string{
	EN: "en",
	ES: "es",
}

// String returns the ISO 639-1 code of l.
func (l Locale) String() string {
	if !l.valid() {
		return codes[Default]
	}
	return codes[l]
}

func (l Locale) valid() bool {
	return l >= 0 && l < numLocales
}

// Supported returns every locale in a stable order, EN first.
func Supported() []Locale {
	out := make([]Locale, 0, numLocales)
	for l := Locale(0); l < numLocales; l++ {
		out = append(out, l)
	}
	return out
}

// Parse maps an ISO 639-1 code ("en", "ES") to its Locale.
func Parse(code string) (Locale, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for l, c := range codes {
		if c == code {
			return Locale(l), true
		}
	}
	return Default, false
}

// Coerce is Parse without the ok flag: unsupported codes map to Default.
func Coerce(code string) Locale {
	l, _ := Parse(code)
	return l
}

// Has reports whether code names a supported locale.
func Has(code string) bool {
	_, ok := Parse(code)
	return ok
}

// FromLanguageTag extracts the base language of a BCP 47 tag ("es-MX") or a
// POSIX locale name ("es_ES.UTF-8") and maps it to a Locale.
func FromLanguageTag(tag string) (Locale, bool) {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ReplaceAll(tag, "_", "-")
	if tag == "" || strings.EqualFold(tag, "C") || strings.EqualFold(tag, "POSIX") {
		return Default, false
	}

	t, err := language.Parse(tag)
	if err != nil {
		return Default, false
	}
	base, conf := t.Base()
	if conf == language.No {
		return Default, false
	}
	return Parse(base.String())
}
