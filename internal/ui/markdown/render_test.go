package markdown

import (
	"strings"
	"testing"
)

func TestRenderKeepsText(t *testing.T) {
	out := Render("# Title\n\nsome **bold** words", 60)
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Fatalf("rendered output lost text: %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Errorf("trailing newline not trimmed: %q", out)
	}
}

func TestRenderBlank(t *testing.T) {
	if got := Render("  ", 40); got != "  " {
		t.Errorf("Render(blank) = %q", got)
	}
}

func TestPlain(t *testing.T) {
	if got := Plain("# a\n\n", 10); got != "# a" {
		t.Errorf("Plain = %q", got)
	}
}
