// Package theme provides the visual styling for voidshell.
//
// A Palette is a named set of colors; the exported styles are rebuilt from
// the active palette every time Use switches it. Five palettes ship with the
// shell, one per `switch` target:
//   - default:   green phosphor
//   - cyberpunk: neon yellow and cyan
//   - witcher:   steel and blood red
//   - hollow:    pale blue on ink
//   - reddead:   rust and sand
package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette is one color scheme.
type Palette struct {
	Name    string
	Primary lipgloss.Color // prompt, headings, accents
	Accent  lipgloss.Color // directories, secondary highlights
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Bar     lipgloss.Color // title bar and table header background
}

var palettes = map[string]Palette{
	"default": {
		Name:    "default",
		Primary: lipgloss.Color("#22c55e"),
		Accent:  lipgloss.Color("#60a5fa"),
		Success: lipgloss.Color("#4ade80"),
		Warning: lipgloss.Color("#eab308"),
		Error:   lipgloss.Color("#ef4444"),
		Muted:   lipgloss.Color("#6b7280"),
		Text:    lipgloss.Color("#e5e7eb"),
		Bar:     lipgloss.Color("#0891b2"),
	},
	"cyberpunk": {
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#fcee0a"),
		Accent:  lipgloss.Color("#00f0ff"),
		Success: lipgloss.Color("#39ff14"),
		Warning: lipgloss.Color("#ff9f1c"),
		Error:   lipgloss.Color("#ff003c"),
		Muted:   lipgloss.Color("#7a7a8c"),
		Text:    lipgloss.Color("#f0f0f0"),
		Bar:     lipgloss.Color("#ff003c"),
	},
	"witcher": {
		Name:    "witcher",
		Primary: lipgloss.Color("#c0392b"),
		Accent:  lipgloss.Color("#bdc3c7"),
		Success: lipgloss.Color("#27ae60"),
		Warning: lipgloss.Color("#d4ac0d"),
		Error:   lipgloss.Color("#e74c3c"),
		Muted:   lipgloss.Color("#7f8c8d"),
		Text:    lipgloss.Color("#ecf0f1"),
		Bar:     lipgloss.Color("#5d6d7e"),
	},
	"hollow": {
		Name:    "hollow",
		Primary: lipgloss.Color("#a5b4fc"),
		Accent:  lipgloss.Color("#e0e7ff"),
		Success: lipgloss.Color("#86efac"),
		Warning: lipgloss.Color("#fde68a"),
		Error:   lipgloss.Color("#f87171"),
		Muted:   lipgloss.Color("#64748b"),
		Text:    lipgloss.Color("#f8fafc"),
		Bar:     lipgloss.Color("#312e81"),
	},
	"reddead": {
		Name:    "reddead",
		Primary: lipgloss.Color("#b45309"),
		Accent:  lipgloss.Color("#d6b88a"),
		Success: lipgloss.Color("#65a30d"),
		Warning: lipgloss.Color("#ca8a04"),
		Error:   lipgloss.Color("#b91c1c"),
		Muted:   lipgloss.Color("#78716c"),
		Text:    lipgloss.Color("#f5f5f4"),
		Bar:     lipgloss.Color("#7c2d12"),
	},
}

// Styles - rebuilt by Use from the active palette
var (
	// TitleStyle is used for the window title bar
	TitleStyle lipgloss.Style

	// PromptStyle renders user@host and the prompt symbol
	PromptStyle lipgloss.Style

	// PathStyle renders the working directory in the prompt
	PathStyle lipgloss.Style

	// HeadingStyle is used for section titles (man, project, stats)
	HeadingStyle lipgloss.Style

	// SuccessStyle marks [OK] lines and open ports
	SuccessStyle lipgloss.Style

	// InfoStyle marks [INFO] lines
	InfoStyle lipgloss.Style

	// WarnStyle marks [WARN] lines
	WarnStyle lipgloss.Style

	// ErrorStyle is used for error messages
	ErrorStyle lipgloss.Style

	// MutedStyle is used for secondary text and the ghost completion
	MutedStyle lipgloss.Style

	// DirStyle colors directory names in listings
	DirStyle lipgloss.Style

	// FileStyle colors regular file names in listings
	FileStyle lipgloss.Style

	// ImageStyle colors image file names in listings
	ImageStyle lipgloss.Style

	// BarStyle is the inverted header/footer strip of htop
	BarStyle lipgloss.Style

	// HotRow highlights processes above 80% CPU
	HotRow lipgloss.Style

	// WarmRow highlights processes above 5% CPU
	WarmRow lipgloss.Style

	// BoxStyle frames decrypted content and the weather card
	BoxStyle lipgloss.Style
)

var current Palette

func init() {
	Use("default")
}

// Use switches the active palette. Unknown names leave it unchanged.
func Use(name string) bool {
	p, ok := palettes[name]
	if !ok {
		return false
	}
	current = p
	apply(p)
	return true
}

// Current returns the active palette.
func Current() Palette {
	return current
}

// Names returns the palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func apply(p Palette) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text).
		Background(p.Bar).
		Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	PathStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	HeadingStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	InfoStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	WarnStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	DirStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	FileStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	ImageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#c084fc"))

	BarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(p.Bar).
		Bold(true)

	HotRow = lipgloss.NewStyle().
		Background(lipgloss.Color("#7f1d1d"))

	WarmRow = lipgloss.NewStyle().
		Background(lipgloss.Color("#14532d"))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
}
