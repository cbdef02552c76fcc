// Package document tracks the lines of a slide template that carry tokens
// and writes the substituted template to an output file.
//
// A fragment is one line of the source template. The source file is re-read
// on every FindCandidates call, so edits made while presenting show up on
// the next tick.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/valpere/slidetimer/internal/markdown"
	"github.com/valpere/slidetimer/internal/placeholder"
)

const (
	DirPerm  = 0755
	FilePerm = 0644
)

// ErrSameFile is returned when an output path names the template itself.
var ErrSameFile = errors.New("output file is the template file")

// Fragment is the handle of one template line.
type Fragment struct {
	Line int
	Text string
}

type Document struct {
	mu       sync.Mutex
	src      string
	out      string
	refresh  time.Duration
	source   []string
	original map[int]string
	rendered map[int]string
	dirty    bool
}

// New returns a Document that reads the template at src and writes to out.
// refresh is the browser reload interval used when out is an HTML file.
func New(src, out string, refresh time.Duration) *Document {
	return &Document{
		src:      src,
		out:      out,
		refresh:  refresh,
		original: make(map[int]string),
		rendered: make(map[int]string),
		dirty:    true,
	}
}

// FindCandidates re-reads the template and returns every line that looks
// like it holds a token.
func (d *Document) FindCandidates() ([]Fragment, error) {
	data, err := os.ReadFile(d.src)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	d.mu.Lock()
	defer d.mu.Unlock()

	if !equalLines(d.source, lines) {
		d.source = lines
		d.dirty = true
	}

	var out []Fragment
	for i, line := range lines {
		if placeholder.Has(line) {
			out = append(out, Fragment{Line: i, Text: line})
		}
	}
	return out, nil
}

// Track starts following f. The text seen when a line is first tracked is
// kept as its original; a later edit of that line in the template replaces
// the original.
func (d *Document) Track(f Fragment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if orig, ok := d.original[f.Line]; ok && orig == f.Text {
		return
	}
	d.original[f.Line] = f.Text
	delete(d.rendered, f.Line)
	d.dirty = true
}

// OriginalText returns the pre-substitution text of a tracked fragment.
func (d *Document) OriginalText(f Fragment) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	text, ok := d.original[f.Line]
	return text, ok
}

// Write sets the displayed text of a tracked fragment. Writing the text
// already displayed is a no-op.
func (d *Document) Write(f Fragment, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.original[f.Line]; !ok {
		return
	}
	if cur, ok := d.rendered[f.Line]; ok && cur == text {
		return
	}
	d.rendered[f.Line] = text
	d.dirty = true
}

// DropStale forgets tracked lines that no longer exist or no longer hold a
// token in the current template.
func (d *Document) DropStale() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	dropped := 0
	for line := range d.original {
		if line < len(d.source) && placeholder.Has(d.source[line]) {
			continue
		}
		delete(d.original, line)
		delete(d.rendered, line)
		dropped++
	}
	if dropped > 0 {
		d.dirty = true
	}
	return dropped
}

// Clear forgets every tracked line; the next Commit writes the template
// unchanged.
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.original = make(map[int]string)
	d.rendered = make(map[int]string)
	d.dirty = true
}

// Tracked returns the number of tracked lines.
func (d *Document) Tracked() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.original)
}

// Commit writes the output file if anything changed since the last commit.
func (d *Document) Commit() error {
	d.mu.Lock()
	if !d.dirty || d.source == nil {
		d.mu.Unlock()
		return nil
	}
	lines := make([]string, len(d.source))
	for i, line := range d.source {
		if r, ok := d.rendered[i]; ok {
			line = r
		}
		lines[i] = line
	}
	d.dirty = false
	d.mu.Unlock()

	if err := WriteOutput(d.out, d.src, strings.Join(lines, "\n"), d.refresh); err != nil {
		d.mu.Lock()
		d.dirty = true
		d.mu.Unlock()
		return err
	}
	return nil
}

// WriteOutput writes text to path. HTML outputs get the markdown rendered
// into a page titled after src. Writing over src itself fails with
// ErrSameFile.
func WriteOutput(path, src, text string, refresh time.Duration) error {
	same, err := SameFile(src, path)
	if err != nil {
		return fmt.Errorf("failed to compare output with template: %w", err)
	}
	if same {
		return ErrSameFile
	}

	data := []byte(text)
	if IsHTML(path) {
		title := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		data = markdown.Page(title, data, refresh)
	}
	if err := AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// SameFile reports whether a and b name the same file, either by their
// cleaned absolute paths or, when both exist, by os.SameFile. The latter
// catches symlinks and hard links.
func SameFile(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}

	infoA, err := os.Stat(absA)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	infoB, err := os.Stat(absB)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return os.SameFile(infoA, infoB), nil
}

// IsHTML reports whether path names an HTML file.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// AtomicWrite writes data to path via a temporary file + rename so readers
// never see a partial file. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) || a == nil {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
