package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func setup(t *testing.T, template string) (*Document, string, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.md")
	out := filepath.Join(dir, "out", "talk.md")
	writeFile(t, src, template)
	return New(src, out, 0), src, out
}

func TestFindCandidates(t *testing.T) {
	d, _, _ := setup(t, "# Title\nNow <<time>>\nplain\n<<5:00->> left")

	got, err := d.FindCandidates()
	if err != nil {
		t.Fatalf("FindCandidates failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].Line != 1 || got[0].Text != "Now <<time>>" {
		t.Errorf("unexpected first candidate %+v", got[0])
	}
	if got[1].Line != 3 {
		t.Errorf("unexpected second candidate %+v", got[1])
	}
}

func TestFindCandidates_MissingSource(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "missing.md"), "out.md", 0)
	if _, err := d.FindCandidates(); err == nil {
		t.Error("expected error for missing template")
	}
}

func TestTrackWriteCommit(t *testing.T) {
	d, _, out := setup(t, "Title\nNow <<time>>")

	frags, _ := d.FindCandidates()
	d.Track(frags[0])

	orig, ok := d.OriginalText(frags[0])
	if !ok || orig != "Now <<time>>" {
		t.Fatalf("OriginalText = %q, %v", orig, ok)
	}

	d.Write(frags[0], "Now 2:00 PM")
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got := readFile(t, out); got != "Title\nNow 2:00 PM" {
		t.Errorf("output = %q", got)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after commit")
	}

	// Original text is unaffected by writes.
	if orig, _ := d.OriginalText(frags[0]); orig != "Now <<time>>" {
		t.Errorf("OriginalText after write = %q", orig)
	}
}

func TestCommit_SkipsWhenUnchanged(t *testing.T) {
	d, _, out := setup(t, "Now <<time>>")

	frags, _ := d.FindCandidates()
	d.Track(frags[0])
	d.Write(frags[0], "Now 1")
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Remove the output; an unchanged write must not recreate it.
	if err := os.Remove(out); err != nil {
		t.Fatal(err)
	}
	if _, err := d.FindCandidates(); err != nil {
		t.Fatal(err)
	}
	d.Track(frags[0])
	d.Write(frags[0], "Now 1")
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("expected no write for unchanged content")
	}

	d.Write(frags[0], "Now 2")
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got := readFile(t, out); got != "Now 2" {
		t.Errorf("output = %q", got)
	}
}

func TestWrite_UntrackedIgnored(t *testing.T) {
	d, _, out := setup(t, "Now <<time>>")
	frags, _ := d.FindCandidates()

	d.Write(frags[0], "ignored")
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got := readFile(t, out); got != "Now <<time>>" {
		t.Errorf("output = %q", got)
	}
}

func TestDropStale(t *testing.T) {
	d, src, out := setup(t, "A <<time>>\nB <<date>>")

	frags, _ := d.FindCandidates()
	for _, f := range frags {
		d.Track(f)
		d.Write(f, "x")
	}
	if d.Tracked() != 2 {
		t.Fatalf("Tracked = %d", d.Tracked())
	}

	writeFile(t, src, "A <<time>>\nB is plain now")
	if _, err := d.FindCandidates(); err != nil {
		t.Fatal(err)
	}
	if n := d.DropStale(); n != 1 {
		t.Errorf("DropStale = %d, want 1", n)
	}
	if d.Tracked() != 1 {
		t.Errorf("Tracked = %d, want 1", d.Tracked())
	}
	if err := d.Commit(); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, out); got != "x\nB is plain now" {
		t.Errorf("output = %q", got)
	}
}

func TestTrack_TemplateEditReplacesOriginal(t *testing.T) {
	d, src, _ := setup(t, "Now <<time>>")
	frags, _ := d.FindCandidates()
	d.Track(frags[0])

	writeFile(t, src, "Clock <<time&>>")
	frags, _ = d.FindCandidates()
	d.Track(frags[0])
	if orig, _ := d.OriginalText(frags[0]); orig != "Clock <<time&>>" {
		t.Errorf("OriginalText = %q", orig)
	}
}

func TestClear(t *testing.T) {
	d, _, out := setup(t, "Now <<time>>")
	frags, _ := d.FindCandidates()
	d.Track(frags[0])
	d.Write(frags[0], "Now 3 PM")
	if err := d.Commit(); err != nil {
		t.Fatal(err)
	}

	d.Clear()
	if d.Tracked() != 0 {
		t.Errorf("Tracked = %d after Clear", d.Tracked())
	}
	if _, ok := d.OriginalText(frags[0]); ok {
		t.Error("expected fragment to be forgotten")
	}
	if err := d.Commit(); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, out); got != "Now <<time>>" {
		t.Errorf("output after Clear = %q", got)
	}
}

func TestCommit_HTML(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "keynote.md")
	out := filepath.Join(dir, "keynote.html")
	writeFile(t, src, "# Keynote\n\nNow <<time>>")

	d := New(src, out, time.Second)
	frags, _ := d.FindCandidates()
	d.Track(frags[0])
	d.Write(frags[0], "Now **2:00 PM**")
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got := readFile(t, out)
	for _, want := range []string{"<title>keynote</title>", `content="1"`, "<strong>2:00 PM</strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML output missing %q:\n%s", want, got)
		}
	}
}

func TestIsHTML(t *testing.T) {
	for path, want := range map[string]bool{
		"a.html": true,
		"A.HTM":  true,
		"a.md":   false,
		"a":      false,
	} {
		if got := IsHTML(path); got != want {
			t.Errorf("IsHTML(%q) = %v", path, got)
		}
	}
}

func TestSameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.md")
	other := filepath.Join(dir, "other.md")
	writeFile(t, src, "Now <<time>>")
	writeFile(t, other, "Now <<time>>")

	link := filepath.Join(dir, "link.md")
	hasLink := os.Symlink(src, link) == nil

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", src, src, true},
		{"dot segment", src, dir + "/./talk.md", true},
		{"parent segment", src, filepath.Join(dir, "sub", "..", "talk.md"), true},
		{"different file", src, other, false},
		{"missing output", src, filepath.Join(dir, "out.md"), false},
		{"symlink", src, link, hasLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SameFile(tt.a, tt.b)
			if err != nil {
				t.Fatalf("SameFile failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SameFile(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSameFile_Relative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "talk.md"), "x")
	t.Chdir(dir)

	got, err := SameFile("talk.md", filepath.Join(dir, "talk.md"))
	if err != nil {
		t.Fatalf("SameFile failed: %v", err)
	}
	if !got {
		t.Error("relative and absolute spellings should match")
	}
}

func TestCommit_RefusesTemplateAsOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.md")
	writeFile(t, src, "Now <<time&>>\n")

	d := New(src, dir+"/./talk.md", 0)
	frags, _ := d.FindCandidates()
	d.Track(frags[0])
	d.Write(frags[0], "Now 15:00:00")

	if err := d.Commit(); !errors.Is(err, ErrSameFile) {
		t.Fatalf("Commit error = %v, want ErrSameFile", err)
	}
	if got := readFile(t, src); got != "Now <<time&>>\n" {
		t.Errorf("template was modified: %q", got)
	}
	if d.Tracked() != 1 {
		t.Errorf("Tracked = %d, want 1", d.Tracked())
	}
}

func TestWriteOutput_RefusesSymlinkedTemplate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.md")
	link := filepath.Join(dir, "slides.md")
	writeFile(t, src, "<<status>>")
	if err := os.Symlink(src, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if err := WriteOutput(link, src, "In progress", 0); !errors.Is(err, ErrSameFile) {
		t.Fatalf("WriteOutput error = %v, want ErrSameFile", err)
	}
	if got := readFile(t, src); got != "<<status>>" {
		t.Errorf("template was modified: %q", got)
	}
}
