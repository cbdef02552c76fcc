package markdown

import (
	"strings"
	"testing"
	"time"
)

func TestToHTML(t *testing.T) {
	got := ToHTML([]byte("# Q3 Review\n\nStarted at **2:00 PM**"))
	for _, want := range []string{"<h1", "Q3 Review</h1>", "<strong>2:00 PM</strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToHTML output %q is missing %q", got, want)
		}
	}
}

func TestPage(t *testing.T) {
	got := string(Page("Talk <1>", []byte("Hello"), time.Second))
	if !strings.Contains(got, `<meta http-equiv="refresh" content="1">`) {
		t.Errorf("expected refresh meta tag in %q", got)
	}
	if !strings.Contains(got, "<title>Talk &lt;1&gt;</title>") {
		t.Errorf("expected escaped title in %q", got)
	}
	if !strings.Contains(got, "<p>Hello</p>") {
		t.Errorf("expected rendered body in %q", got)
	}

	static := string(Page("x", []byte("Hello"), 0))
	if strings.Contains(static, "refresh") {
		t.Errorf("zero refresh should not emit a meta refresh: %q", static)
	}
}

func TestToPlainText(t *testing.T) {
	got := ToPlainText([]byte("Some *emphasis* and `code`"))
	if strings.ContainsAny(got, "<>*`") {
		t.Errorf("expected markup removed, got %q", got)
	}
	if !strings.Contains(got, "Some emphasis and code") {
		t.Errorf("got %q", got)
	}
}
