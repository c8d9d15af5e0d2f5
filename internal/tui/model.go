// Package tui provides the full-screen Bubble Tea surface of voidshell.
//
// The model is a thin shell around a *session.Session:
//   - key presses become Submit, Tab and history calls
//   - scheduler ticks from the session become tea.Tick commands, and their
//     messages are fed back through Session.Fire
//   - the scrollback is re-rendered into a viewport whenever its version
//     changes
//
// At startup the public IP lookup runs as a command; the boot sequence
// starts once it returns, so neofetch can show the address.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Necromancer-Labs/voidshell/internal/config"
	"github.com/Necromancer-Labs/voidshell/internal/logging"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/sim"
)

// ipTimeout bounds the startup IP lookup; boot waits for it.
const ipTimeout = 3 * time.Second

// IPLookup returns the public address shown by neofetch.
type IPLookup func(ctx context.Context) (string, error)

// Model is the Bubble Tea model for the terminal.
type Model struct {
	session  *session.Session // shell core; shared, mutated only from Update
	input    textinput.Model  // prompt line
	viewport viewport.Model   // scrollback
	lookupIP IPLookup         // nil skips the lookup
	tick     func(sim.Tick) tea.Cmd

	mobileWidth int    // below this width the surface is constrained
	version     uint64 // scrollback version last copied into the viewport

	// Terminal dimensions (updated on WindowSizeMsg)
	width  int
	height int
}

// tickMsg carries a scheduler tick back into Update once its delay passed.
type tickMsg sim.Tick

// ipMsg is the result of the startup IP lookup.
type ipMsg struct {
	ip  string
	err error
}

// NewModel creates the model. lookupIP may be nil.
func NewModel(s *session.Session, lookupIP IPLookup) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		session:     s,
		input:       ti,
		viewport:    viewport.New(80, 20),
		lookupIP:    lookupIP,
		tick:        tickCmd,
		mobileWidth: config.MobileWidth,
		width:       80,
		height:      24,
	}
}

// WithMobileWidth overrides the constrained-width breakpoint.
func (m Model) WithMobileWidth(w int) Model {
	if w > 0 {
		m.mobileWidth = w
	}
	return m
}

// Init starts the cursor blink and the IP lookup.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		fetchIP(m.lookupIP),
	)
}

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.SetConstrained(msg.Width < m.mobileWidth)
		m.resize()

	case ipMsg:
		if msg.err != nil {
			logging.L().Warn("public ip lookup failed", zap.Error(msg.err))
		} else {
			m.session.SetIP(msg.ip)
		}
		m.session.Boot()

	case tickMsg:
		if next, ok := m.session.Fire(sim.Tick(msg)); ok {
			cmds = append(cmds, m.tick(next))
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	// New animations queued by this message.
	cmds = append(cmds, m.schedule()...)
	m.refresh()
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press. In interactive mode every key goes to the
// interactive line; otherwise the prompt handles it.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.session.Mode() == session.ModeInteractive {
		m.session.HandleKey(msg.String())
		return m, nil
	}

	switch msg.String() {
	case "enter":
		// Input is held while an animation runs.
		if m.session.Busy() {
			return m, nil
		}
		m.session.Submit(m.input.Value())
		m.input.SetValue("")
		return m, nil

	case "up":
		if v, ok := m.session.HistoryUp(); ok {
			m.input.SetValue(v)
			m.input.CursorEnd()
		}
		return m, nil

	case "down":
		m.input.SetValue(m.session.HistoryDown())
		m.input.CursorEnd()
		return m, nil

	case "tab":
		m.input.SetValue(m.session.Tab(m.input.Value()))
		m.input.CursorEnd()
		return m, nil

	case "right":
		// At the end of the line, right accepts the ghost suggestion.
		if m.input.Position() == len([]rune(m.input.Value())) {
			if ghost := m.session.Complete(m.input.Value()).Ghost; ghost != "" {
				m.input.SetValue(ghost)
				m.input.CursorEnd()
				return m, nil
			}
		}

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Pass other keys to the text input for typing
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// schedule turns the session's queued ticks into timer commands.
func (m Model) schedule() []tea.Cmd {
	ticks := m.session.Ticks()
	cmds := make([]tea.Cmd, 0, len(ticks))
	for _, t := range ticks {
		cmds = append(cmds, m.tick(t))
	}
	return cmds
}

// resize fits the viewport between the title bar and the prompt.
func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-2, 1)
	m.version = 0 // width changed: re-render everything
}

// refresh copies the scrollback into the viewport when it changed and
// scrolls to the bottom.
func (m *Model) refresh() {
	v := m.session.Version()
	if v == m.version {
		return
	}
	m.version = v
	m.viewport.SetContent(m.renderLines())
	m.viewport.GotoBottom()
}

// tickCmd waits out a scheduler tick's delay.
func tickCmd(t sim.Tick) tea.Cmd {
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchIP runs the public IP lookup off the update loop.
func fetchIP(lookup IPLookup) tea.Cmd {
	return func() tea.Msg {
		if lookup == nil {
			return ipMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), ipTimeout)
		defer cancel()
		ip, err := lookup(ctx)
		return ipMsg{ip: ip, err: err}
	}
}

// Run runs the terminal until the user quits.
func Run(s *session.Session, lookupIP IPLookup, mobileWidth int) error {
	model := NewModel(s, lookupIP).WithMobileWidth(mobileWidth)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
