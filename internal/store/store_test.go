package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_New_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := New(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.SaveLanguage(ctx, "es"); err != nil {
		t.Fatalf("SaveLanguage failed: %v", err)
	}
	s.Close()

	s, err = New(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()
	lang, err := s.Language(ctx)
	if err != nil || lang != "es" {
		t.Errorf("Language() = %q, %v after reopen", lang, err)
	}
}

func TestStore_GetSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "k", "  v1 "); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v2" {
		t.Errorf("Get = %q, want v2", got)
	}
}

func TestStore_SetNormalizes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		in, want string
	}{
		// "e" + combining acute accent composes to "é".
		{" cafe\u0301 ", "caf\u00e9"},
		// Full-width "14:00".
		{"\uff11\uff14\uff1a\uff10\uff10", "14:00"},
		{"2026-02-18\u00a014:00\u3000", "2026-02-18 14:00"},
	}
	for _, tt := range tests {
		if err := s.Set(ctx, "n", tt.in); err != nil {
			t.Fatalf("Set(%q) failed: %v", tt.in, err)
		}
		if got, _ := s.Get(ctx, "n"); got != tt.want {
			t.Errorf("Set(%q) stored %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStore_SaveTimesFoldsFullWidth(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveTimes(ctx, "\uff11\uff14\uff1a\uff10\uff10", "16:00"); err != nil {
		t.Fatalf("SaveTimes failed: %v", err)
	}
	start, end, err := s.Times(ctx)
	if err != nil {
		t.Fatalf("Times failed: %v", err)
	}
	if start != "14:00" || end != "16:00" {
		t.Errorf("Times = %q, %q", start, end)
	}
}

func TestStore_Times(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start, end, err := s.Times(ctx)
	if err != nil {
		t.Fatalf("Times failed: %v", err)
	}
	if start != "" || end != "" {
		t.Errorf("expected empty window, got %q, %q", start, end)
	}

	if err := s.SaveTimes(ctx, "2026-02-18T14:00", "2026-02-18T16:00"); err != nil {
		t.Fatalf("SaveTimes failed: %v", err)
	}
	start, end, err = s.Times(ctx)
	if err != nil {
		t.Fatalf("Times failed: %v", err)
	}
	if start != "2026-02-18T14:00" || end != "2026-02-18T16:00" {
		t.Errorf("Times = %q, %q", start, end)
	}

	if err := s.ClearTimes(ctx); err != nil {
		t.Fatalf("ClearTimes failed: %v", err)
	}
	start, end, _ = s.Times(ctx)
	if start != "" || end != "" {
		t.Errorf("expected cleared window, got %q, %q", start, end)
	}
}

func TestStore_PartialTimes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, KeyStartTime, "14:00"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	start, end, err := s.Times(ctx)
	if err != nil {
		t.Fatalf("Times failed: %v", err)
	}
	if start != "14:00" || end != "" {
		t.Errorf("Times = %q, %q", start, end)
	}
}

func TestStore_Language(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lang, err := s.Language(ctx)
	if err != nil || lang != "" {
		t.Errorf("Language() = %q, %v; want unset", lang, err)
	}

	if err := s.SaveLanguage(ctx, " ES "); err != nil {
		t.Fatalf("SaveLanguage failed: %v", err)
	}
	if lang, _ := s.Language(ctx); lang != "es" {
		t.Errorf("Language() = %q, want es", lang)
	}

	if err := s.SaveLanguage(ctx, ""); err != nil {
		t.Fatalf("SaveLanguage(\"\") failed: %v", err)
	}
	if lang, _ := s.Language(ctx); lang != "" {
		t.Errorf("Language() = %q, want cleared", lang)
	}
}

func TestStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveTimes(ctx, "09:00", "10:00"); err != nil {
		t.Fatalf("SaveTimes failed: %v", err)
	}
	if err := s.SaveLanguage(ctx, "en"); err != nil {
		t.Fatalf("SaveLanguage failed: %v", err)
	}

	settings, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(settings) != 3 {
		t.Fatalf("expected 3 settings, got %d", len(settings))
	}
	wantKeys := []string{KeyEndTime, KeyLanguage, KeyStartTime}
	for i, k := range wantKeys {
		if settings[i].Key != k {
			t.Errorf("settings[%d].Key = %q, want %q", i, settings[i].Key, k)
		}
		if settings[i].UpdatedAt.IsZero() {
			t.Errorf("settings[%d].UpdatedAt is zero", i)
		}
	}
}

func TestStore_RemoveMissingKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.Remove(context.Background(), "never-set"); err != nil {
		t.Errorf("Remove failed: %v", err)
	}
}
