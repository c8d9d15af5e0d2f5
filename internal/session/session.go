// Package session is the shell core: it owns the virtual filesystem, the
// working directory, the scrollback and the history, and dispatches input
// lines to the command table.
//
// A Session is not safe for concurrent use. Both surfaces drive it from a
// single goroutine (the Bubble Tea update loop or the readline loop).
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/logging"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/portfolio"
	"github.com/Necromancer-Labs/voidshell/internal/sim"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
	"github.com/Necromancer-Labs/voidshell/internal/vfs"
)

// Mode is the keyboard owner.
type Mode int

const (
	ModeNormal      Mode = iota // input goes to the prompt
	ModeInteractive             // input goes to the interactive line
)

// Context is what a command handler may do to the session.
type Context interface {
	Path() string
	SetPath(path string)
	Resolve(path string) string
	Lookup(path string) (*vfs.Node, bool)
	Root() *vfs.Node

	AddLine(r output.Renderable, kind LineKind) uuid.UUID
	UpdateLine(id uuid.UUID, r output.Renderable)
	FinishInteractive()
	Constrained() bool
	Clear()

	SetRemoteHost(host string)
	RemoteHost() string

	AddFileToCurrentDir(name string)

	SetLang(code string) bool
	Lang() string
	SetTheme(name string) bool
	History() []string
	IP() string
}

// Options configures a Session. Zero fields get defaults.
type Options struct {
	FS           *vfs.FS
	Table        *Table
	Catalog      *i18n.Catalog
	Lang         string
	Home         string
	User         string
	Host         string
	HistoryLimit int
	Remotes      map[string]portfolio.Remote
	Scheduler    *sim.Scheduler
	Logger       *zap.Logger
}

// Session is one shell.
type Session struct {
	fs      *vfs.FS
	table   *Table
	catalog *i18n.Catalog
	remotes map[string]portfolio.Remote
	sched   *sim.Scheduler
	log     *zap.Logger

	lang string
	t    i18n.Func
	home string
	user string
	host string

	path   string
	remote string
	ip     string

	buf     Buffer
	history *History

	mode          Mode
	interactiveID uuid.UUID
	constrained   bool
	booting       bool
	rebootPending bool
}

// New creates a session. Catalog and Table are required.
func New(opts Options) (*Session, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("session: catalog is required")
	}
	if opts.Table == nil {
		return nil, fmt.Errorf("session: command table is required")
	}
	if opts.Home == "" {
		opts.Home = vfs.DefaultHome
	}
	if opts.FS == nil {
		opts.FS = vfs.New(vfs.Home(opts.Home))
	}
	if opts.Lang == "" || !opts.Catalog.Supported(opts.Lang) {
		opts.Lang = i18n.Fallback
	}
	if opts.User == "" {
		opts.User = "glitchbane"
	}
	if opts.Host == "" {
		opts.Host = "voidshell"
	}
	if opts.Remotes == nil {
		opts.Remotes = portfolio.Remotes()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = sim.NewScheduler()
	}
	if opts.Logger == nil {
		opts.Logger = logging.L()
	}

	return &Session{
		fs:      opts.FS,
		table:   opts.Table,
		catalog: opts.Catalog,
		remotes: opts.Remotes,
		sched:   opts.Scheduler,
		log:     opts.Logger,
		lang:    opts.Lang,
		t:       opts.Catalog.Func(opts.Lang),
		home:    opts.Home,
		user:    opts.User,
		host:    opts.Host,
		path:    opts.Home,
		history: NewHistory(opts.HistoryLimit),
	}, nil
}

// Submit runs one input line. It returns false, without doing anything,
// while the session is busy or a line owns the keyboard.
func (s *Session) Submit(input string) bool {
	if s.Busy() || s.mode == ModeInteractive {
		return false
	}

	fields := strings.Fields(input)
	s.buf.Append(Line{ID: uuid.New(), Kind: LineNormal, Content: s.Prompt().With(input)})

	if s.remote != "" {
		s.dispatchRemote(fields)
	} else {
		s.dispatch(fields)
	}

	if strings.TrimSpace(input) != "" {
		s.history.Push(input)
	}
	s.history.Reset()

	if s.rebootPending {
		s.rebootPending = false
		s.Boot()
	}
	return true
}

func (s *Session) dispatch(fields []string) {
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]
	s.log.Debug("dispatch", zap.String("command", name), zap.Int("argc", len(args)))

	h, ok := s.table.Lookup(name)
	if !ok {
		s.printLine(errorStyle, s.t("command_not_found", i18n.Params{"command": name}))
		return
	}
	if out := s.run(name, h, args); out != nil {
		kind := LineNormal
		if _, animated := out.(sim.Task); animated {
			kind = LineProgress
		}
		s.AddLine(out, kind)
	}
}

// run calls the handler, turning a panic into a printed error.
func (s *Session) run(name string, h Handler, args []string) (out output.Renderable) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("command panicked",
				zap.String("command", name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			out = errorLine(s.t("handler_failed", i18n.Params{"command": name}))
		}
	}()
	return h(args, s.t, s)
}

func (s *Session) dispatchRemote(fields []string) {
	if len(fields) == 0 {
		return
	}
	s.log.Debug("dispatch", zap.String("command", fields[0]), zap.String("remote", s.remote))

	switch fields[0] {
	case "exit":
		s.SetRemoteHost("")
		s.printLine(mutedStyle, s.t("connect_logout", nil))
	case "ls":
		files := s.remotes[s.remote].Files
		s.AddLine(output.Func(func(w int) string {
			cells := make([]output.Cell, len(files))
			for i, f := range files {
				cells[i] = output.Cell{Text: f, Style: theme.FileStyle}
			}
			return output.Grid{Cells: cells}.Render(w)
		}), LineNormal)
	default:
		s.printLine(errorStyle, s.t("connect_command_not_found", i18n.Params{"command": fields[0]}))
	}
}

// Styles are read when a line is drawn so `switch` recolors old lines.
func errorStyle() lipgloss.Style { return theme.ErrorStyle }
func mutedStyle() lipgloss.Style { return theme.MutedStyle }

func (s *Session) printLine(style func() lipgloss.Style, text string) {
	s.AddLine(output.Func(func(int) string { return style().Render(text) }), LineNormal)
}

func errorLine(text string) output.Renderable {
	return output.Func(func(int) string { return errorStyle().Render(text) })
}

// Tab applies completion to input and returns the new input. With several
// candidates it prints them under a prompt echo and leaves input as is.
// An empty prompt lists every command.
func (s *Session) Tab(input string) string {
	c := s.Complete(input)
	if strings.TrimSpace(input) == "" && s.remote == "" {
		c = Completion{Candidates: s.table.Names()}
	}
	switch {
	case c.Ghost != "":
		return c.Ghost
	case len(c.Candidates) > 1:
		s.buf.Append(Line{ID: uuid.New(), Kind: LineNormal, Content: s.Prompt().With(input)})
		s.buf.Append(Line{ID: uuid.New(), Kind: LineNormal, Content: output.Text(strings.Join(c.Candidates, "  "))})
	case len(c.Candidates) == 1:
		return c.Candidates[0] + " "
	}
	return input
}

// Complete completes a command name against the table. Nothing completes
// while connected to a remote host.
func (s *Session) Complete(input string) Completion {
	if s.remote != "" {
		return Completion{}
	}
	return s.table.Complete(input)
}

// HandleKey forwards a key to the interactive line. It reports whether a
// line consumed it.
func (s *Session) HandleKey(key string) bool {
	if s.mode != ModeInteractive {
		return false
	}
	task, ok := s.sched.Task(s.interactiveID)
	if kh, isKH := task.(sim.KeyHandler); ok && isKH && kh.HandleKey(key) {
		s.FinishInteractive()
	}
	return true
}

// Busy reports whether the boot sequence or an animated line is running.
// An interactive line alone does not count.
func (s *Session) Busy() bool {
	return s.booting || s.sched.Active(s.interactiveID) > 0
}

// Booting reports whether the boot sequence is running.
func (s *Session) Booting() bool { return s.booting }

// Boot runs the boot sequence. When it ends the screen is cleared and the
// neofetch card is shown.
func (s *Session) Boot() {
	s.sched.CancelAll()
	s.buf.RemoveKind(LineInteractive)
	s.mode = ModeNormal
	s.interactiveID = uuid.Nil
	s.booting = true

	id := uuid.New()
	boot := sim.NewBoot(s.t)
	s.buf.Append(Line{ID: id, Kind: LineProgress, Content: boot})
	s.sched.Schedule(id, boot, func() {
		s.booting = false
		s.buf.Clear()
		s.AddLine(sim.NeofetchFor(s.t, s.ipOrPlaceholder()), LineNormal)
	})
}

// Ticks returns the timer handles queued since the last call.
func (s *Session) Ticks() []sim.Tick {
	return s.sched.Drain()
}

// Fire steps the animation behind tick and returns its follow-up.
func (s *Session) Fire(tick sim.Tick) (sim.Tick, bool) {
	next, ok := s.sched.Fire(tick)
	s.buf.Touch()
	return next, ok
}

// RunPending blocks until every animation except an interactive line has
// finished, sleeping with sleep between steps.
func (s *Session) RunPending(ctx context.Context, sleep sim.Sleeper) error {
	return s.sched.Run(ctx, sleep)
}

// Lines returns the scrollback.
func (s *Session) Lines() []Line { return s.buf.Lines() }

// Version is the scrollback change counter.
func (s *Session) Version() uint64 { return s.buf.Version() }

// Mode returns the keyboard owner.
func (s *Session) Mode() Mode { return s.mode }

// Table returns the command table.
func (s *Session) Table() *Table { return s.table }

// T returns the translator for the current language.
func (s *Session) T() i18n.Func { return s.t }

// HistoryUp recalls an older input.
func (s *Session) HistoryUp() (string, bool) { return s.history.Up() }

// HistoryDown recalls a newer input, or the empty input past the newest.
func (s *Session) HistoryDown() string { return s.history.Down() }

// SetConstrained marks the surface too small for interactive lines.
func (s *Session) SetConstrained(v bool) { s.constrained = v }

// SetIP records the public address shown by neofetch.
func (s *Session) SetIP(ip string) { s.ip = ip }

// Prompt returns the prompt for the current state.
func (s *Session) Prompt() Echo {
	if s.remote != "" {
		return Echo{User: s.remote, Host: s.host, Path: "~", Symbol: "#"}
	}
	return Echo{User: s.user, Host: s.host, Path: s.shortPath(), Symbol: "$"}
}

func (s *Session) shortPath() string {
	switch {
	case s.path == s.home:
		return "~"
	case strings.HasPrefix(s.path, s.home+"/"):
		return "~" + strings.TrimPrefix(s.path, s.home)
	default:
		return s.path
	}
}

func (s *Session) ipOrPlaceholder() string {
	if s.ip == "" {
		return s.t("ip_not_available", nil)
	}
	return s.ip
}

// Path implements Context.
func (s *Session) Path() string { return s.path }

// SetPath implements Context. The path is canonicalized first.
func (s *Session) SetPath(path string) { s.path = vfs.Resolve(path, s.path) }

// Resolve implements Context.
func (s *Session) Resolve(path string) string { return vfs.Resolve(path, s.path) }

// Lookup implements Context. Relative paths resolve against the working
// directory.
func (s *Session) Lookup(path string) (*vfs.Node, bool) {
	return s.fs.Lookup(vfs.Resolve(path, s.path))
}

// Root implements Context.
func (s *Session) Root() *vfs.Node { return s.fs.Root() }

// AddLine implements Context. Animated content is scheduled under the new
// line's id. A second interactive line is refused with uuid.Nil.
func (s *Session) AddLine(r output.Renderable, kind LineKind) uuid.UUID {
	if kind == LineInteractive {
		if s.mode == ModeInteractive {
			return uuid.Nil
		}
		if s.constrained {
			return uuid.Nil
		}
	}

	id := uuid.New()
	s.buf.Append(Line{ID: id, Kind: kind, Content: r})
	if kind == LineInteractive {
		s.mode = ModeInteractive
		s.interactiveID = id
	}
	if task, ok := r.(sim.Task); ok {
		s.sched.Schedule(id, task, nil)
	}
	return id
}

// UpdateLine implements Context.
func (s *Session) UpdateLine(id uuid.UUID, r output.Renderable) {
	if !s.buf.Update(id, r) {
		return
	}
	if task, ok := r.(sim.Task); ok {
		s.sched.Schedule(id, task, nil)
	}
}

// FinishInteractive implements Context.
func (s *Session) FinishInteractive() {
	if s.interactiveID != uuid.Nil {
		s.sched.Cancel(s.interactiveID)
	}
	s.buf.RemoveKind(LineInteractive)
	s.mode = ModeNormal
	s.interactiveID = uuid.Nil
}

// Constrained implements Context.
func (s *Session) Constrained() bool { return s.constrained }

// Clear implements Context.
func (s *Session) Clear() {
	s.sched.CancelAll()
	s.buf.Clear()
	s.mode = ModeNormal
	s.interactiveID = uuid.Nil
}

// SetRemoteHost implements Context. The empty host disconnects.
func (s *Session) SetRemoteHost(host string) {
	if host != "" {
		if _, ok := s.remotes[host]; !ok {
			return
		}
	}
	s.remote = host
}

// RemoteHost implements Context.
func (s *Session) RemoteHost() string { return s.remote }

// AddFileToCurrentDir implements Context.
func (s *Session) AddFileToCurrentDir(name string) {
	if err := s.fs.AddFile(s.path, name, vfs.Text("Downloaded file: "+name)); err != nil {
		s.log.Warn("add file failed", zap.String("dir", s.path), zap.String("name", name), zap.Error(err))
		return
	}
	s.log.Info("file added", zap.String("dir", s.path), zap.String("name", name))
}

// SetLang implements Context. A change takes effect immediately and
// reboots the shell after the current command.
func (s *Session) SetLang(code string) bool {
	if !s.catalog.Supported(code) {
		return false
	}
	s.log.Info("language changed", zap.String("from", s.lang), zap.String("to", code))
	s.lang = code
	s.t = s.catalog.Func(code)
	s.rebootPending = true
	return true
}

// Lang implements Context.
func (s *Session) Lang() string { return s.lang }

// SetTheme implements Context.
func (s *Session) SetTheme(name string) bool {
	if !theme.Use(name) {
		return false
	}
	s.log.Info("theme changed", zap.String("theme", name))
	s.buf.Touch()
	return true
}

// History implements Context. Entries are oldest first.
func (s *Session) History() []string {
	entries := s.history.Entries()
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// IP implements Context.
func (s *Session) IP() string { return s.ipOrPlaceholder() }
