package commands

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// Styles are looked up when the line is drawn, not when it is created, so
// `switch` recolors the whole scrollback.

func plain(s string) output.Renderable { return output.Text(s) }

func styled(style func() lipgloss.Style, s string) output.Renderable {
	return output.Func(func(int) string { return style().Render(s) })
}

func errText(s string) output.Renderable {
	return styled(func() lipgloss.Style { return theme.ErrorStyle }, s)
}

func muted(s string) output.Renderable {
	return styled(func() lipgloss.Style { return theme.MutedStyle }, s)
}

func heading(s string) output.Renderable {
	return styled(func() lipgloss.Style { return theme.HeadingStyle }, s)
}

func success(s string) output.Renderable {
	return styled(func() lipgloss.Style { return theme.SuccessStyle }, s)
}

// md renders markdown at the width of the surface.
func (c *Commands) md(text string) output.Renderable {
	return output.Func(func(w int) string { return c.deps.Markdown(text, w) })
}

// mdKey renders the markdown behind key, or reports the key missing.
func (c *Commands) mdKey(t i18n.Func, key string) output.Renderable {
	text := t(key, nil)
	if text == key {
		return errText(t("cat_no_such_file", i18n.Params{"filename": key}))
	}
	return c.md(text)
}
