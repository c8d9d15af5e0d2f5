// Package output defines what a command hands back to the shell: something
// that can draw itself at a given terminal width.
package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderable is one unit of terminal output.
type Renderable interface {
	Render(width int) string
}

// Text is literal output.
type Text string

// Render implements Renderable.
func (t Text) Render(int) string { return string(t) }

// Styled is text drawn with a lipgloss style.
type Styled struct {
	Style lipgloss.Style
	Text  string
}

// Render implements Renderable.
func (s Styled) Render(int) string { return s.Style.Render(s.Text) }

// Func adapts a plain function.
type Func func(width int) string

// Render implements Renderable.
func (f Func) Render(width int) string { return f(width) }

// Stack draws its parts one under the other. Nil parts are skipped.
type Stack []Renderable

// Render implements Renderable.
func (s Stack) Render(width int) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		if r == nil {
			continue
		}
		parts = append(parts, r.Render(width))
	}
	return strings.Join(parts, "\n")
}
