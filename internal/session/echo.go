package session

import (
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// Echo is a prompt, optionally followed by the input typed at it. Surfaces
// that echo input themselves (the readline shell) skip these lines.
type Echo struct {
	User   string
	Host   string
	Path   string
	Symbol string
	Input  string
}

// With returns the prompt echoing input.
func (e Echo) With(input string) Echo {
	e.Input = input
	return e
}

// Prefix is the prompt without the input, styled.
func (e Echo) Prefix() string {
	return theme.PromptStyle.Render(e.User+"@"+e.Host) + ":" +
		theme.PathStyle.Render(e.Path) + e.Symbol + " "
}

// Plain is the prompt without styling, for readline.
func (e Echo) Plain() string {
	return e.User + "@" + e.Host + ":" + e.Path + e.Symbol + " "
}

// Render implements output.Renderable.
func (e Echo) Render(int) string {
	return e.Prefix() + e.Input
}
