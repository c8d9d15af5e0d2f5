package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Cell is one entry of a Grid.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// Grid lays cells out in as many equal columns as fit the width, filling
// row by row like the ls and help listings.
type Grid struct {
	Cells []Cell
	Gap   int // spaces between columns; defaults to 2
}

// Render implements Renderable.
func (g Grid) Render(width int) string {
	if len(g.Cells) == 0 {
		return ""
	}
	gap := g.Gap
	if gap <= 0 {
		gap = 2
	}

	colWidth := 0
	for _, c := range g.Cells {
		if w := runewidth.StringWidth(c.Text); w > colWidth {
			colWidth = w
		}
	}
	cols := 1
	if width > 0 {
		cols = (width + gap) / (colWidth + gap)
	}
	if cols < 1 {
		cols = 1
	}
	if cols > len(g.Cells) {
		cols = len(g.Cells)
	}

	var b strings.Builder
	for i, c := range g.Cells {
		last := i%cols == cols-1 || i == len(g.Cells)-1
		text := c.Text
		if !last {
			text = runewidth.FillRight(text, colWidth+gap)
		}
		// Style only the name so padding stays unstyled.
		name := strings.TrimRight(text, " ")
		b.WriteString(c.Style.Render(name))
		b.WriteString(text[len(name):])
		if last && i != len(g.Cells)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
