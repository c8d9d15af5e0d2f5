package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

// keyTask is an interactive line that exits on "q".
type keyTask struct{ cancelled bool }

func (k *keyTask) Step(time.Time) (time.Duration, bool) { return time.Second, false }
func (k *keyTask) HandleKey(key string) bool           { return key == "q" }
func (k *keyTask) Cancel()                             { k.cancelled = true }
func (k *keyTask) Render(int) string                   { return "monitor" }

// slowTask finishes after two steps.
type slowTask struct{ steps int }

func (s *slowTask) Step(time.Time) (time.Duration, bool) {
	s.steps++
	return 100 * time.Millisecond, s.steps >= 2
}
func (s *slowTask) Render(int) string { return "working" }

func testHandlers() map[string]Handler {
	return map[string]Handler{
		"echo": func(args []string, _ i18n.Func, _ Context) output.Renderable {
			return output.Text(strings.Join(args, " "))
		},
		"quiet": func([]string, i18n.Func, Context) output.Renderable { return nil },
		"boom": func([]string, i18n.Func, Context) output.Renderable {
			panic("kaboom")
		},
		"monitor": func(_ []string, _ i18n.Func, ctx Context) output.Renderable {
			ctx.AddLine(&keyTask{}, LineInteractive)
			return nil
		},
		"slow": func([]string, i18n.Func, Context) output.Renderable { return &slowTask{} },
		"cd": func(args []string, _ i18n.Func, ctx Context) output.Renderable {
			ctx.SetPath(args[0])
			return nil
		},
		"lang": func(args []string, t i18n.Func, ctx Context) output.Renderable {
			if !ctx.SetLang(args[0]) {
				return output.Text("unsupported")
			}
			return output.Text(t("lang_changed", i18n.Params{"lang": args[0]}))
		},
	}
}

func newSession(t *testing.T) *Session {
	t.Helper()
	cat, err := i18n.Load()
	require.NoError(t, err)
	s, err := New(Options{Catalog: cat, Table: NewTable(testHandlers()), Lang: "en"})
	require.NoError(t, err)
	return s
}

func rendered(s *Session) []string {
	lines := s.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Content.Render(80)
	}
	return out
}

func finish(t *testing.T, s *Session) {
	t.Helper()
	err := s.RunPending(context.Background(), func(context.Context, time.Duration) error { return nil })
	require.NoError(t, err)
}

func TestNewRequiresCatalogAndTable(t *testing.T) {
	_, err := New(Options{Table: NewTable(nil)})
	require.Error(t, err)

	cat, err := i18n.Load()
	require.NoError(t, err)
	_, err = New(Options{Catalog: cat})
	require.Error(t, err)
}

func TestDispatchAppendsAtMostOneUnit(t *testing.T) {
	tests := []struct {
		input string
		lines int
	}{
		{"", 1},
		{"   ", 1},
		{"quiet", 1},
		{"echo hello world", 2},
		{"nope", 2},
		{"boom", 2},
	}

	for _, tt := range tests {
		s := newSession(t)
		require.True(t, s.Submit(tt.input))
		require.Len(t, s.Lines(), tt.lines, "input %q", tt.input)
	}
}

func TestDispatchOutput(t *testing.T) {
	s := newSession(t)
	s.Submit("echo  hello   world")
	s.Submit("nope --flag")
	s.Submit("boom")

	out := rendered(s)
	require.Equal(t, "glitchbane@voidshell:~$ echo  hello   world", out[0])
	require.Equal(t, "hello world", out[1])
	require.Contains(t, out[3], "command not found: nope")
	require.Contains(t, out[5], "boom")
}

func TestHistoryPushedOnSubmit(t *testing.T) {
	s := newSession(t)
	s.Submit("echo a")
	s.Submit("")
	s.Submit("nope")

	require.Equal(t, []string{"echo a", "nope"}, s.History())
	got, ok := s.HistoryUp()
	require.True(t, ok)
	require.Equal(t, "nope", got)
	got, _ = s.HistoryUp()
	require.Equal(t, "echo a", got)
	got, _ = s.HistoryUp()
	require.Equal(t, "echo a", got)
	require.Equal(t, "nope", s.HistoryDown())
	require.Equal(t, "", s.HistoryDown())
	require.Equal(t, "", s.HistoryDown())
}

func TestHistoryBounds(t *testing.T) {
	h := NewHistory(0)
	_, ok := h.Up()
	require.False(t, ok)
	require.Equal(t, -1, h.Index())

	for i := 0; i < 60; i++ {
		h.Push(strings.Repeat("x", i+1))
	}
	require.Equal(t, DefaultHistoryLimit, h.Len())
	require.Len(t, h.Entries()[0], 60)

	for i := 0; i < 100; i++ {
		h.Up()
	}
	require.Equal(t, h.Len()-1, h.Index())
	h.Reset()
	require.Equal(t, -1, h.Index())
}

func TestComplete(t *testing.T) {
	table := NewTable(map[string]Handler{
		"cat":     testHandlers()["quiet"],
		"cd":      testHandlers()["quiet"],
		"connect": testHandlers()["quiet"],
		"cowsay":  testHandlers()["quiet"],
		"bad cmd": testHandlers()["quiet"],
	})
	require.Equal(t, 4, table.Len())

	tests := []struct {
		input      string
		ghost      string
		candidates []string
	}{
		{"", "", nil},
		{"cat x", "", nil},
		{"c", "", []string{"cat", "cd", "connect", "cowsay"}},
		{"co", "", []string{"connect", "cowsay"}},
		{"cow", "cowsay", []string{"cowsay"}},
		{"cowsay", "", []string{"cowsay"}},
		{"zz", "", nil},
	}

	for _, tt := range tests {
		c := table.Complete(tt.input)
		require.Equal(t, tt.ghost, c.Ghost, "input %q", tt.input)
		require.Equal(t, tt.candidates, c.Candidates, "input %q", tt.input)
	}
}

func TestTab(t *testing.T) {
	s := newSession(t)

	require.Equal(t, "monitor", s.Tab("mon"))
	require.Equal(t, "quiet ", s.Tab("quiet"))
	require.Equal(t, "zz", s.Tab("zz"))
	require.Empty(t, s.Lines())

	s2, err := New(Options{Catalog: s.catalog, Table: NewTable(map[string]Handler{
		"cat": testHandlers()["quiet"],
		"cd":  testHandlers()["quiet"],
	})})
	require.NoError(t, err)
	require.Equal(t, "c", s2.Tab("c"))
	out := rendered(s2)
	require.Len(t, out, 2)
	require.True(t, strings.HasSuffix(out[0], "$ c"))
	require.Equal(t, "cat  cd", out[1])
}

func TestTabOnEmptyInputListsCommands(t *testing.T) {
	s := newSession(t)
	require.Equal(t, "", s.Tab(""))
	require.Equal(t, "  ", s.Tab("  "))

	out := rendered(s)
	require.Len(t, out, 4)
	require.Equal(t, strings.Join(s.Table().Names(), "  "), out[1])
	require.Contains(t, out[1], "monitor")

	s.SetRemoteHost("quimera")
	s.Tab("")
	require.Len(t, s.Lines(), 4)
}

func TestInteractiveGate(t *testing.T) {
	s := newSession(t)
	require.True(t, s.Submit("monitor"))
	require.Equal(t, ModeInteractive, s.Mode())
	require.False(t, s.Busy())

	// A second interactive line is refused and input is not accepted.
	require.Equal(t, uuid.Nil, s.AddLine(&keyTask{}, LineInteractive))
	require.False(t, s.Submit("echo hi"))

	require.True(t, s.HandleKey("x"))
	require.Equal(t, ModeInteractive, s.Mode())
	require.True(t, s.HandleKey("q"))
	require.Equal(t, ModeNormal, s.Mode())
	for _, l := range s.Lines() {
		require.NotEqual(t, LineInteractive, l.Kind)
	}
	require.False(t, s.HandleKey("q"))
}

func TestConstrainedRefusesInteractive(t *testing.T) {
	s := newSession(t)
	s.SetConstrained(true)
	require.Equal(t, uuid.Nil, s.AddLine(&keyTask{}, LineInteractive))
	require.Equal(t, ModeNormal, s.Mode())
}

func TestBusyWhileAnimating(t *testing.T) {
	s := newSession(t)
	require.True(t, s.Submit("slow"))
	require.Equal(t, LineProgress, s.Lines()[1].Kind)
	require.True(t, s.Busy())
	require.False(t, s.Submit("echo hi"))

	finish(t, s)
	require.False(t, s.Busy())
	require.True(t, s.Submit("echo hi"))
}

func TestFireBumpsVersion(t *testing.T) {
	s := newSession(t)
	s.Submit("slow")
	ticks := s.Ticks()
	require.Len(t, ticks, 1)

	v := s.Version()
	next, ok := s.Fire(ticks[0])
	require.True(t, ok)
	require.Greater(t, s.Version(), v)
	_, ok = s.Fire(next)
	require.False(t, ok)
	require.False(t, s.Busy())
}

func TestRemoteMode(t *testing.T) {
	s := newSession(t)
	s.SetRemoteHost("nowhere")
	require.Equal(t, "", s.RemoteHost())

	s.SetRemoteHost("quimera")
	require.Equal(t, "quimera@voidshell:~# ", s.Prompt().Plain())
	require.Empty(t, s.Complete("ec").Candidates)

	s.Submit("ls")
	s.Submit("echo hi")
	s.Submit("")
	s.Submit("exit")

	out := rendered(s)
	require.Contains(t, out[1], "analyzer.log")
	require.Contains(t, out[3], "echo: command not found on remote system")
	require.Len(t, out, 7)
	require.Equal(t, "Connection closed.", out[6])
	require.Equal(t, "", s.RemoteHost())
}

func TestBootEndsInNeofetch(t *testing.T) {
	s := newSession(t)
	s.SetIP("198.51.100.4")
	s.Boot()
	require.True(t, s.Busy())
	require.True(t, s.Booting())
	require.False(t, s.Submit("echo hi"))

	finish(t, s)
	require.False(t, s.Booting())
	out := rendered(s)
	require.Len(t, out, 1)
	require.Contains(t, out[0], "glitchbane@VoidShell")
	require.Contains(t, out[0], "198.51.100.4")
}

func TestLangReboots(t *testing.T) {
	s := newSession(t)
	s.Submit("lang xx")
	require.Equal(t, "unsupported", rendered(s)[1])
	require.False(t, s.Booting())

	s.Submit("lang es")
	require.Equal(t, "es", s.Lang())
	require.True(t, s.Booting())
	finish(t, s)
	require.Contains(t, rendered(s)[0], "Kernel")
}

func TestPromptPath(t *testing.T) {
	s := newSession(t)
	tests := []struct {
		cd   string
		want string
	}{
		{"Documents", "~/Documents$ "},
		{"/", "/$ "},
		{"/home", "/home$ "},
		{"glitchbane/../glitchbane", "~$ "},
	}
	for _, tt := range tests {
		s.Submit("cd " + tt.cd)
		require.Equal(t, "glitchbane@voidshell:"+tt.want, s.Prompt().Plain())
	}
}

func TestAddFileToCurrentDir(t *testing.T) {
	s := newSession(t)
	s.AddFileToCurrentDir("f.bin")
	s.AddFileToCurrentDir("f.bin")

	n, ok := s.Lookup("f.bin")
	require.True(t, ok)
	require.Equal(t, "Downloaded file: f.bin", n.Ref().Value)

	count := 0
	root, _ := s.Lookup(s.Path())
	for _, name := range root.Names() {
		if name == "f.bin" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestBufferRemoveKind(t *testing.T) {
	var b Buffer
	b.Append(Line{ID: uuid.New(), Kind: LineNormal, Content: output.Text("a")})
	b.Append(Line{ID: uuid.New(), Kind: LineInteractive, Content: output.Text("b")})
	b.Append(Line{ID: uuid.New(), Kind: LineNormal, Content: output.Text("c")})

	b.RemoveKind(LineInteractive)
	require.Equal(t, 2, b.Len())
	require.Equal(t, "c", b.Lines()[1].Content.Render(0))
	require.Equal(t, uint64(4), b.Version())
	require.False(t, b.Update(uuid.New(), output.Text("x")))
}

func TestLineKindString(t *testing.T) {
	require.Equal(t, "progress", LineProgress.String())
	require.Equal(t, "unknown", LineKind(9).String())
}

func TestThemeSwitchRecolorsSessionLines(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(termenv.Ascii)
	defer theme.Use("default")
	theme.Use("default")

	s := newSession(t)
	s.Submit("nope")
	s.SetRemoteHost("quimera")
	s.Submit("ls")
	s.Submit("pwd")
	s.Submit("exit")

	before := rendered(s)
	require.True(t, theme.Use("reddead"))
	after := rendered(s)

	// Prompt echoes aside, every line the session printed itself changes.
	for _, i := range []int{1, 3, 5, 7} {
		require.NotEqual(t, before[i], after[i], "line %d", i)
	}
}
