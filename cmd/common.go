/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valpere/slidetimer/internal/config"
	"github.com/valpere/slidetimer/internal/detector"
	"github.com/valpere/slidetimer/internal/document"
	"github.com/valpere/slidetimer/internal/locale"
	"github.com/valpere/slidetimer/internal/session"
	"github.com/valpere/slidetimer/internal/store"
	"github.com/valpere/slidetimer/internal/timefmt"
)

// openStore opens the settings database, creating its directory if needed.
func openStore() (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DB), document.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// preference returns the effective language preference: the configured
// override, else the stored value.
func preference(ctx context.Context, db *store.Store) string {
	if pref := cfg.LanguageOverride(); pref != "" {
		return pref
	}
	stored, err := db.Language(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load language preference")
		return ""
	}
	return stored
}

// resolveLocale maps a preference to a locale. auto and empty preferences
// consult the environment and then the template text.
func resolveLocale(pref, template string) locale.Locale {
	if pref != "" && pref != config.LanguageAuto {
		if l, ok := locale.Parse(pref); ok {
			return l
		}
		log.Warn().Str("locale", pref).Str("fallback", locale.Default.String()).Msg("unsupported locale")
		return locale.Default
	}
	var det *detector.Detector
	if template != "" {
		det = detector.New()
	}
	return detector.NewResolver(det).Resolve(template)
}

// newTranslator returns a translator for the effective preference.
func newTranslator(ctx context.Context, db *store.Store, template string) *locale.Translator {
	tr := locale.NewTranslator(locale.Default.String(), log)
	tr.Use(resolveLocale(preference(ctx, db), template))
	return tr
}

func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		// Validated on load.
		return time.Local
	}
	return loc
}

// parseWindow parses raw session boundaries in the configured location.
// Empty values stay absent.
func parseWindow(startRaw, endRaw string, now time.Time) (session.Window, error) {
	start, err := parseBoundary(startRaw, now)
	if err != nil {
		return session.Window{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := parseBoundary(endRaw, now)
	if err != nil {
		return session.Window{}, fmt.Errorf("invalid end: %w", err)
	}
	return session.Window{Start: start, End: end}, nil
}

func parseBoundary(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	loc := location()
	t, err := timefmt.ParseTimestamp(raw, now, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// checkDistinct fails when output would overwrite the template at input,
// however the two paths are spelled.
func checkDistinct(input, output string) error {
	if output == "" {
		return nil
	}
	same, err := document.SameFile(input, output)
	if err != nil {
		return fmt.Errorf("failed to compare input and output files: %w", err)
	}
	if same {
		return fmt.Errorf("input file and output file cannot be the same")
	}
	return nil
}

// readTemplate reads the template at path.
func readTemplate(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
