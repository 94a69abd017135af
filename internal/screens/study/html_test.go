package study

import (
	"strings"
	"testing"
)

func TestRenderHTMLParagraphsAndLists(t *testing.T) {
	src := "<h2>Closures</h2><p>A closure captures variables.</p><ul><li>lexical scope</li><li>shared state</li></ul>"

	out := renderHTML(src)

	for _, want := range []string{"Closures", "A closure captures variables.", "• lexical scope", "• shared state"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderHTMLMalformedDegradesToText(t *testing.T) {
	out := renderHTML("<p>unclosed <b>bold and <weird>tag</p>")

	if !strings.Contains(out, "unclosed") || !strings.Contains(out, "tag") {
		t.Errorf("expected text content preserved, got:\n%s", out)
	}
}

func TestRenderHTMLPlainText(t *testing.T) {
	out := renderHTML("no markup at all")
	if !strings.Contains(out, "no markup at all") {
		t.Errorf("expected plain text passthrough, got %q", out)
	}
}

func TestRenderHTMLCollapsesWhitespace(t *testing.T) {
	out := renderHTML("<p>lots\n   of\n   space</p>")
	if strings.Contains(out, "  of") {
		t.Errorf("expected collapsed whitespace, got %q", out)
	}
}
