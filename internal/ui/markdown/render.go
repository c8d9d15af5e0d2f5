// Package markdown renders the portfolio's markdown documents for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderers are cached per wrap width; building one parses a full style sheet.
var (
	mu        sync.Mutex
	renderers = map[int]*glamour.TermRenderer{}
)

// Render converts markdown text to styled ANSI output wrapped at width.
// Falls back to the raw text if glamour fails.
func Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	if width <= 0 {
		width = 80
	}

	r := renderer(width)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour pads with blank lines; trim for inline display.
	return strings.Trim(out, "\n")
}

// Plain returns md unchanged. It has Render's signature so callers that must
// not emit ANSI (tests, dumb terminals) can swap it in.
func Plain(md string, _ int) string {
	return strings.TrimRight(md, "\n")
}

func renderer(width int) *glamour.TermRenderer {
	mu.Lock()
	defer mu.Unlock()

	if r, ok := renderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = r
	return r
}
