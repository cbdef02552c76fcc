package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/valpere/slidetimer/internal/config"
	"github.com/valpere/slidetimer/internal/locale"
)

const (
	spanishTemplate = "Bienvenidos a la presentación. La sesión termina a las <<endTime^>> y quedan <<remaining>> minutos."
	englishTemplate = "Welcome to the presentation. The session ends at <<endTime^>> and there are <<remaining>> minutes left."
)

// setup points the package globals at a temporary database.
func setup(t *testing.T, language string) {
	t.Helper()
	cfg = &config.Config{
		DB:       filepath.Join(t.TempDir(), "slidetimer.db"),
		Language: language,
		Interval: time.Second,
		Timezone: "UTC",
		LogLevel: "error",
	}
	log = zerolog.Nop()
}

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		t.Setenv(name, "")
	}
}

func TestCheckDistinct(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.md")
	if err := os.WriteFile(src, []byte("<<time>>"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		output  string
		wantErr bool
	}{
		{"stdout", "", false},
		{"other file", filepath.Join(dir, "talk.out.md"), false},
		{"same path", src, true},
		{"dot segment", dir + "/./talk.md", true},
		{"trailing parent", filepath.Join(dir, "x", "..", "talk.md"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDistinct(src, tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkDistinct(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			}
		})
	}
}

func TestResolveLocale(t *testing.T) {
	setup(t, "")

	tests := []struct {
		name     string
		pref     string
		env      map[string]string
		template string
		want     locale.Locale
	}{
		{"explicit es beats env", "es", map[string]string{"LANG": "en_US.UTF-8"}, englishTemplate, locale.ES},
		{"explicit en beats env", "en", map[string]string{"LANG": "es_ES.UTF-8"}, spanishTemplate, locale.EN},
		{"unsupported coerced", "fr", map[string]string{"LANG": "es_ES.UTF-8"}, spanishTemplate, locale.EN},
		{"auto uses env", "auto", map[string]string{"LANG": "es_ES.UTF-8"}, englishTemplate, locale.ES},
		{"empty uses env", "", map[string]string{"LC_ALL": "es_MX", "LANG": "en_US"}, englishTemplate, locale.ES},
		{"env beats detection", "auto", map[string]string{"LANG": "en_GB.UTF-8"}, spanishTemplate, locale.EN},
		{"C locale falls to detection", "auto", map[string]string{"LANG": "C"}, spanishTemplate, locale.ES},
		{"no env detects english", "auto", nil, englishTemplate, locale.EN},
		{"nothing to go on", "auto", nil, "", locale.EN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLocaleEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := resolveLocale(tt.pref, tt.template); got != tt.want {
				t.Errorf("resolveLocale(%q) = %v, want %v", tt.pref, got, tt.want)
			}
		})
	}
}

func TestNewTranslator_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		override string
		stored   string
		env      string
		want     locale.Locale
	}{
		{"override beats stored", "en", "es", "", locale.EN},
		{"stored used without override", "", "es", "en_US", locale.ES},
		{"override auto defers to env", "auto", "es", "es_ES", locale.ES},
		{"stored auto defers to env", "", "auto", "es_ES", locale.ES},
		{"nothing set", "", "", "", locale.EN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.override)
			clearLocaleEnv(t)
			t.Setenv("LANG", tt.env)

			db, err := openStore()
			if err != nil {
				t.Fatalf("openStore failed: %v", err)
			}
			defer db.Close()
			ctx := context.Background()
			if err := db.SaveLanguage(ctx, tt.stored); err != nil {
				t.Fatalf("SaveLanguage failed: %v", err)
			}

			if got := newTranslator(ctx, db, "").Locale(); got != tt.want {
				t.Errorf("locale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	setup(t, "")
	now := time.Date(2026, time.February, 18, 9, 0, 0, 0, time.UTC)

	w, err := parseWindow("14:00", "2026-02-18T16:30", now)
	if err != nil {
		t.Fatalf("parseWindow failed: %v", err)
	}
	if !w.Start.Equal(time.Date(2026, 2, 18, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", w.Start)
	}
	if !w.End.Equal(time.Date(2026, 2, 18, 16, 30, 0, 0, time.UTC)) {
		t.Errorf("End = %v", w.End)
	}

	w, err = parseWindow("", "16:00", now)
	if err != nil {
		t.Fatalf("parseWindow failed: %v", err)
	}
	if !w.Start.IsZero() || w.Complete() {
		t.Errorf("empty start should stay absent, got %+v", w)
	}

	for _, tt := range []struct{ start, end, want string }{
		{"soon", "16:00", "invalid start"},
		{"14:00", "25:00", "invalid end"},
	} {
		if _, err := parseWindow(tt.start, tt.end, now); err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("parseWindow(%q, %q) error = %v, want %q", tt.start, tt.end, err, tt.want)
		}
	}
}
