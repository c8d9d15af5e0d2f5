package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func cells(names ...string) []Cell {
	out := make([]Cell, len(names))
	for i, n := range names {
		out[i] = Cell{Text: n, Style: lipgloss.NewStyle()}
	}
	return out
}

func TestGridColumns(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"fits all", 80, "aa    bbbb  c"},
		{"two columns", 12, "aa    bbbb\nc"},
		{"narrow", 3, "aa\nbbbb\nc"},
	}

	for _, tt := range tests {
		got := Grid{Cells: cells("aa", "bbbb", "c")}.Render(tt.width)
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGridEmpty(t *testing.T) {
	require.Equal(t, "", Grid{}.Render(80))
}

func TestStackSkipsNil(t *testing.T) {
	s := Stack{Text("a"), nil, Func(func(w int) string { return strings.Repeat("-", w) })}
	require.Equal(t, "a\n---", s.Render(3))
}
