package sim

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// Rand is the randomness a simulation needs. *rand.Rand satisfies it, and
// tests pass a seeded one.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type tone int

const (
	tonePlain tone = iota
	toneInfo
	toneOK
	toneWarn
	toneError
	toneMuted
)

// style is resolved at render time so a theme switch recolors old output.
func (t tone) style() lipgloss.Style {
	switch t {
	case toneInfo:
		return theme.InfoStyle
	case toneOK:
		return theme.SuccessStyle
	case toneWarn:
		return theme.WarnStyle
	case toneError:
		return theme.ErrorStyle
	case toneMuted:
		return theme.MutedStyle
	default:
		return lipgloss.NewStyle()
	}
}

type entry struct {
	tone tone
	tag  string // optional prefix such as "[OK]", styled with tone
	text string
}

// transcript is the accumulated output of a simulation.
type transcript []entry

func (tr *transcript) add(t tone, text string) {
	*tr = append(*tr, entry{tone: t, text: text})
}

func (tr *transcript) addTagged(t tone, tag, text string) {
	*tr = append(*tr, entry{tone: t, tag: tag, text: text})
}

func (tr transcript) render() string {
	lines := make([]string, len(tr))
	for i, e := range tr {
		if e.tag != "" {
			lines[i] = e.tone.style().Render(e.tag) + " " + e.text
			continue
		}
		lines[i] = e.tone.style().Render(e.text)
	}
	return strings.Join(lines, "\n")
}

// bar draws a fixed-width progress bar for pct in [0,100].
func bar(pct float64, cells int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct/100*float64(cells) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}
