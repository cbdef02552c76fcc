// Package detector guesses the display language of a slide template from
// its prose.
package detector

import (
	"html"
	"strings"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/slidetimer/internal/locale"
	"github.com/valpere/slidetimer/internal/markdown"
	"github.com/valpere/slidetimer/internal/placeholder"
)

// languages maps each detectable language to the locale it selects.
var languages = map[lingua.Language]locale.Locale{
	lingua.English: locale.EN,
	lingua.Spanish: locale.ES,
}

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to the supported display languages.
func New() *Detector {
	langs := make([]lingua.Language, 0, len(languages))
	for l := range languages {
		langs = append(langs, l)
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectLocale reports the locale of a markdown template. Tokens and markup
// are removed first so only the prose is classified.
func (d *Detector) DetectLocale(template string) (locale.Locale, bool) {
	lang, ok := d.Detect(Prose(template))
	if !ok {
		return locale.Default, false
	}
	l, ok := languages[lang]
	if !ok {
		return locale.Default, false
	}
	return l, true
}

// Prose strips recognized tokens and markdown markup from template.
func Prose(template string) string {
	text := placeholder.Expand(template, func(placeholder.Placeholder) (string, bool) {
		return "", true
	})
	text = markdown.ToPlainText([]byte(text))
	return strings.TrimSpace(html.UnescapeString(text))
}
