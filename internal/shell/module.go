package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Necromancerlabs/gocmd2/pkg/shellapi"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/sim"
)

// clearScreen moves the cursor home and wipes the terminal.
const clearScreen = "\033[H\033[2J"

// Module implements gocmd2's CommandModule interface.
// Every entry of the session's command table becomes a cobra command that
// forwards its raw arguments to Session.Submit; the module then waits for
// any animation to finish and prints what the session appended.
type Module struct {
	shell   shellapi.ShellAPI // nil until registered
	session *session.Session
	catalog *i18n.Catalog
	out     io.Writer
	sleep   sim.Sleeper
	width   func() int
}

// NewModule creates the voidshell command module.
func NewModule(s *session.Session, cat *i18n.Catalog, out io.Writer) *Module {
	return &Module{
		session: s,
		catalog: cat,
		out:     out,
		sleep:   sim.RealSleep,
		width:   func() int { return 80 },
	}
}

// Name returns the module name used for identification.
func (m *Module) Name() string {
	return "voidshell"
}

// Initialize is called by gocmd2 when the module is registered.
func (m *Module) Initialize(shell shellapi.ShellAPI) {
	m.shell = shell
	m.UpdatePrompt()
}

// GetCommands returns one command per table entry. help is left out: it
// replaces cobra's help command through HelpCommand.
func (m *Module) GetCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, name := range m.session.Table().Names() {
		if name == "help" {
			continue
		}
		cmds = append(cmds, m.command(name))
	}
	return cmds
}

// HelpCommand is the session's help wrapped as a cobra command.
func (m *Module) HelpCommand() *cobra.Command {
	return m.command("help")
}

func (m *Module) command(name string) *cobra.Command {
	return &cobra.Command{
		Use:                name,
		Short:              m.short(name),
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			m.Exec(strings.TrimSpace(name + " " + strings.Join(args, " ")))
		},
	}
}

// short is the one-line summary from the man page, "ls - list ..." minus
// the name.
func (m *Module) short(name string) string {
	page, ok := m.catalog.Man(m.session.Lang())[name]
	if !ok {
		return ""
	}
	if _, desc, found := strings.Cut(page.Name, " - "); found {
		return desc
	}
	return page.Name
}

// Exec submits input, runs any animation to completion and prints the
// lines the command produced. Prompt echoes are skipped: readline already
// shows the typed line.
func (m *Module) Exec(input string) {
	last := m.lastID()
	if !m.session.Submit(input) {
		return
	}
	if err := m.session.RunPending(context.Background(), m.sleep); err != nil {
		fmt.Fprintln(m.out, err)
	}
	m.flush(last)
	m.UpdatePrompt()
}

// Boot plays the boot sequence without delays and prints its result.
func (m *Module) Boot() {
	m.session.Boot()
	if err := m.session.RunPending(context.Background(), noSleep); err != nil {
		fmt.Fprintln(m.out, err)
	}
	m.flush(uuid.Nil)
}

// flush prints the lines appended after the line last. When last is gone
// the buffer was cleared: the screen is wiped and everything left is
// printed.
func (m *Module) flush(last uuid.UUID) {
	lines := m.session.Lines()
	start := 0
	if last != uuid.Nil {
		start = -1
		for i, l := range lines {
			if l.ID == last {
				start = i + 1
				break
			}
		}
		if start < 0 {
			fmt.Fprint(m.out, clearScreen)
			start = 0
		}
	}
	width := m.width()
	for _, l := range lines[start:] {
		if _, echo := l.Content.(session.Echo); echo {
			continue
		}
		fmt.Fprintln(m.out, l.Content.Render(width))
	}
}

func (m *Module) lastID() uuid.UUID {
	lines := m.session.Lines()
	if len(lines) == 0 {
		return uuid.Nil
	}
	return lines[len(lines)-1].ID
}

// UpdatePrompt shows the session prompt, remote host included.
func (m *Module) UpdatePrompt() {
	if m.shell == nil {
		return
	}
	m.shell.SetPrompt(m.session.Prompt().Prefix())
}

func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
