package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// View renders the complete terminal UI.
// The layout consists of:
//   - A title bar with the window buttons and user@host
//   - The scrollback (or, while interactive, only the interactive line)
//   - The prompt with the ghost completion, hidden while busy
func (m Model) View() string {
	title := m.renderTitle()

	if m.session.Mode() == session.ModeInteractive {
		for _, l := range m.session.Lines() {
			if l.Kind == session.LineInteractive {
				return title + "\n" + l.Content.Render(m.width)
			}
		}
	}

	view := title + "\n" + m.viewport.View()
	if m.session.Busy() {
		return view
	}
	return view + "\n" + m.renderPrompt()
}

// renderTitle draws the bar with the three window buttons.
func (m Model) renderTitle() string {
	p := theme.Current()
	lights := lipgloss.NewStyle().Foreground(p.Error).Render("●") + " " +
		lipgloss.NewStyle().Foreground(p.Warning).Render("●") + " " +
		lipgloss.NewStyle().Foreground(p.Success).Render("●")

	prompt := m.session.Prompt()
	label := theme.TitleStyle.Render(prompt.User + "@" + prompt.Host)

	bar := lights + "  " + label
	if pad := m.width - lipgloss.Width(bar); pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return bar
}

// renderPrompt draws the prompt and the input. With the cursor at the end
// of the line, the untyped rest of the ghost suggestion follows it, the
// first ghost rune sitting under the cursor.
func (m Model) renderPrompt() string {
	prefix := m.session.Prompt().Prefix()
	value := m.input.Value()

	ghost := m.session.Complete(value).Ghost
	if ghost == "" || !strings.HasPrefix(ghost, value) || m.input.Position() != len([]rune(value)) {
		return prefix + m.input.View()
	}
	rest := []rune(ghost[len(value):])
	if len(rest) == 0 {
		return prefix + m.input.View()
	}
	return prefix + value +
		theme.MutedStyle.Reverse(true).Render(string(rest[0])) +
		theme.MutedStyle.Render(string(rest[1:]))
}

// renderLines renders the scrollback at the current width.
func (m Model) renderLines() string {
	lines := m.session.Lines()
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Content.Render(m.width))
	}
	return strings.Join(parts, "\n")
}
