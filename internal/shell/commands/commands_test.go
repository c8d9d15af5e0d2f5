package commands

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/sysinfo"
	"github.com/Necromancer-Labs/voidshell/internal/ui/markdown"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
)

var fixedNow = time.Date(2024, 3, 5, 14, 7, 9, 0, time.FixedZone("CET", 3600))

func newShell(t *testing.T) *session.Session {
	t.Helper()
	cat, err := i18n.Load()
	require.NoError(t, err)

	cmds := New(Deps{
		Catalog:  cat,
		Markdown: markdown.Plain,
		Probe:    sysinfo.Synthetic,
		Now:      func() time.Time { return fixedNow },
		Rand:     rand.New(rand.NewSource(7)),
	})
	s, err := session.New(session.Options{Catalog: cat, Table: cmds.Table(), Lang: "en"})
	require.NoError(t, err)
	return s
}

// exec submits input, lets any animation finish and returns what was
// printed after the prompt echo.
func exec(t *testing.T, s *session.Session, input string) string {
	t.Helper()
	before := len(s.Lines())
	require.True(t, s.Submit(input), "submit %q", input)
	err := s.RunPending(context.Background(), func(context.Context, time.Duration) error { return nil })
	require.NoError(t, err)

	lines := s.Lines()
	if len(lines) <= before+1 {
		return ""
	}
	var out []string
	for _, l := range lines[before+1:] {
		out = append(out, l.Content.Render(80))
	}
	return strings.Join(out, "\n")
}

func TestTableHasEveryCommand(t *testing.T) {
	want := []string{
		"ls", "cd", "pwd", "cat", "tree",
		"about", "resume", "skills", "experience", "education", "project-list", "project", "contact", "social",
		"whoami", "date", "neofetch", "htop", "top", "cal", "stats",
		"connect", "scan", "wget", "weather",
		"help", "clear", "echo", "history", "motd", "cowsay", "switch", "blog", "lang", "man", "sudo", "decrypt",
	}
	table := New(Deps{}).Table()
	require.Equal(t, len(want), table.Len())
	for _, name := range want {
		_, ok := table.Lookup(name)
		require.True(t, ok, name)
	}
}

func TestCdAndPwd(t *testing.T) {
	s := newShell(t)
	tests := []struct {
		input string
		want  string
	}{
		{"pwd", "/home/glitchbane"},
		{"cd Documents", ""},
		{"pwd", "/home/glitchbane/Documents"},
		{"cd ../Projects/./", ""},
		{"pwd", "/home/glitchbane/Projects"},
		{"cd nowhere", "cd: nowhere: No such directory"},
		{"cd README.md", "cd: README.md: No such directory"},
		{"cd /", ""},
		{"pwd", "/"},
		{"cd", ""},
		{"pwd", "/home/glitchbane"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, exec(t, s, tt.input), tt.input)
	}
}

func TestCat(t *testing.T) {
	s := newShell(t)
	tests := []struct {
		input string
		want  string
	}{
		{"cat", "cat: missing operand"},
		{"cat nonexistent.md", "cat: nonexistent.md: No such file or directory"},
		{"cat Documents", "cat: Documents: No such file or directory"},
		{"cat README.md", "# Welcome to VoidShell"},
		{"cat Projects/quimera.proj", "Proyecto Quimera"},
		{"cat Pictures/avatar.png", "Cannot display an image in the terminal."},
		{"cat vault/credentials.txt.enc", "encrypted file. Use 'decrypt vault/credentials.txt.enc'"},
	}
	for _, tt := range tests {
		require.Contains(t, exec(t, s, tt.input), tt.want, tt.input)
	}
}

func TestLs(t *testing.T) {
	s := newShell(t)
	out := exec(t, s, "ls")
	for _, name := range []string{"Documents", "Pictures", "Projects", "README.md", "vault"} {
		require.Contains(t, out, name)
	}
	require.Equal(t, "avatar.png  logo.svg", exec(t, s, "ls Pictures"))
	require.Equal(t, "cat: /home/glitchbane/nope: No such file or directory", exec(t, s, "ls nope"))
	require.Equal(t, "cat: /home/glitchbane/README.md: No such file or directory", exec(t, s, "ls README.md"))
}

func TestTree(t *testing.T) {
	s := newShell(t)
	require.Equal(t, "/home/glitchbane/Pictures\n├── avatar.png\n└── logo.svg", exec(t, s, "tree Pictures"))
	require.Equal(t, "cd: /home/glitchbane/nope: No such directory", exec(t, s, "tree nope"))

	out := exec(t, s, "tree /home")
	require.Contains(t, out, "└── glitchbane")
	require.Contains(t, out, "    ├── Documents")
	require.Contains(t, out, "    │   ├── about.md")
}

func TestConnectAndRemoteLs(t *testing.T) {
	s := newShell(t)
	require.Equal(t, "Usage: connect <host>", exec(t, s, "connect"))
	require.Equal(t, "connect: could not resolve host 'mordor'", exec(t, s, "connect mordor"))

	require.Contains(t, exec(t, s, "connect quimera"), "Connected to QUIMERA")
	require.Equal(t, "quimera", s.RemoteHost())

	out := exec(t, s, "ls")
	require.Contains(t, out, "analyzer.log")
	require.NotContains(t, out, "Documents")
	require.Equal(t, "pwd: command not found on remote system", exec(t, s, "pwd"))

	require.Equal(t, "Connection closed.", exec(t, s, "exit"))
	require.Contains(t, exec(t, s, "ls"), "Documents")
}

func TestWgetAddsFileOnce(t *testing.T) {
	s := newShell(t)
	require.Equal(t, "Usage: wget <url>", exec(t, s, "wget"))
	require.Equal(t, "wget: invalid URL: notaurl", exec(t, s, "wget notaurl"))

	out := exec(t, s, "wget https://example.com/files/file.bin")
	require.Contains(t, out, "'file.bin' saved.")
	exec(t, s, "wget https://example.com/other/file.bin")

	require.Equal(t, 1, strings.Count(exec(t, s, "ls"), "file.bin"))
	require.Equal(t, "Downloaded file: file.bin", exec(t, s, "cat file.bin"))

	exec(t, s, "wget https://example.com/")
	require.Contains(t, exec(t, s, "ls"), "index.html")
}

func TestDecrypt(t *testing.T) {
	s := newShell(t)
	require.Equal(t, "Usage: decrypt <file>", exec(t, s, "decrypt"))
	require.Equal(t, "decrypt: README.md: not an encrypted file", exec(t, s, "decrypt README.md"))

	out := exec(t, s, "decrypt vault/protocol.dat.enc")
	require.Contains(t, out, "Key found! Access granted.")
	require.Contains(t, out, "ANOCHECER PROTOCOL v0.9")
}

func TestHtop(t *testing.T) {
	s := newShell(t)
	s.SetConstrained(true)
	require.Equal(t, "htop is not available on small screens.", exec(t, s, "htop"))

	s.SetConstrained(false)
	require.True(t, s.Submit("top"))
	require.Equal(t, session.ModeInteractive, s.Mode())
	require.False(t, s.Busy())
	require.True(t, s.HandleKey("q"))
	require.Equal(t, session.ModeNormal, s.Mode())
}

func TestSwitch(t *testing.T) {
	defer theme.Use("default")
	s := newShell(t)

	out := exec(t, s, "switch")
	require.Contains(t, out, "Usage: switch <theme>")
	require.Contains(t, out, "2. The Witcher 3")

	require.Equal(t, "Theme switched to 'the witcher 3'.", exec(t, s, "switch The Witcher 3"))
	require.Equal(t, "witcher", theme.Current().Name)
	require.Equal(t, "Theme not found: nope", exec(t, s, "switch nope"))
	require.Equal(t, "witcher", theme.Current().Name)
}

func TestBlog(t *testing.T) {
	s := newShell(t)
	require.Contains(t, exec(t, s, "blog"), "blog ls")

	out := exec(t, s, "blog ls")
	first := strings.Index(out, "hello-void")
	second := strings.Index(out, "terminal-portfolio")
	third := strings.Index(out, "traceless-p2p")
	require.True(t, first >= 0 && first < second && second < third, out)
	require.Contains(t, out, "- 2024-01-15 - Hello, void (`hello-void`)")

	out = exec(t, s, "blog read hello-void")
	require.Contains(t, out, "Hello, void")
	require.Contains(t, out, "Published on 2024-01-15")

	require.Equal(t, "Usage: blog read <slug>", exec(t, s, "blog read"))
	require.Equal(t, "Post not found: nope", exec(t, s, "blog read nope"))
	require.Equal(t, "blog: unknown subcommand: rm", exec(t, s, "blog rm"))
}

func TestLang(t *testing.T) {
	s := newShell(t)
	require.Equal(t, "Usage: lang <code>. Supported languages: en, es", exec(t, s, "lang"))
	require.Equal(t, "Language not supported: fr", exec(t, s, "lang fr"))

	require.True(t, s.Submit("lang es"))
	require.Equal(t, "es", s.Lang())
	require.True(t, s.Booting())
	require.Contains(t, s.Lines()[0].Content.Render(80), "Idioma")
}

func TestManAndSudo(t *testing.T) {
	s := newShell(t)
	out := exec(t, s, "man ls")
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "ls - list directory contents")
	require.Contains(t, out, "SYNOPSIS")

	require.Equal(t, "What manual page do you want? Usage: man <command>", exec(t, s, "man"))
	require.Equal(t, "No manual entry for vim", exec(t, s, "man vim"))
	require.Equal(t, "usage: sudo <command>", exec(t, s, "sudo"))
	require.Contains(t, exec(t, s, "sudo rm -rf /"), "not in the sudoers file")
}

func TestSimpleCommands(t *testing.T) {
	s := newShell(t)
	require.Equal(t, "Israel Zamora - GlitchBane", exec(t, s, "whoami"))
	require.Equal(t, "Tue Mar 05 2024 14:07:09 GMT+0100 (CET)", exec(t, s, "date"))
	require.Equal(t, "a b c", exec(t, s, "echo a   b c"))
	require.Contains(t, exec(t, s, "cowsay"), "Moo...")
	require.Contains(t, exec(t, s, "cal"), "March 2024")
	require.Contains(t, exec(t, s, "stats"), "Developer stats")
	require.Contains(t, exec(t, s, "neofetch"), "not available")
	require.NotEmpty(t, exec(t, s, "motd"))
	require.Contains(t, exec(t, s, "about"), "# About me")

	out := exec(t, s, "project")
	require.Contains(t, out, "Available projects: anochecer, daemons, quimera")
	require.Contains(t, exec(t, s, "project DAEMONS"), "SystemDaemons")
	require.Equal(t, "Project not found: x", exec(t, s, "project x"))

	require.Equal(t, "Usage: scan <target>", exec(t, s, "scan"))
	require.Contains(t, exec(t, s, "scan 10.0.0.1"), "Scan complete.")
}

func TestHistoryNumbering(t *testing.T) {
	s := newShell(t)
	exec(t, s, "echo one")
	exec(t, s, "pwd")
	require.Equal(t, "   1  echo one\n   2  pwd", exec(t, s, "history"))
}

func TestHelpAndClear(t *testing.T) {
	s := newShell(t)
	out := exec(t, s, "help")
	require.Contains(t, out, "Available commands:")
	require.Contains(t, out, "project-list")

	require.True(t, s.Submit("clear"))
	require.Empty(t, s.Lines())
}

func TestWeatherWithoutKey(t *testing.T) {
	s := newShell(t)
	require.Equal(t, "Usage: weather <city>", exec(t, s, "weather"))
	require.Contains(t, exec(t, s, "weather New York"), "OPENWEATHER_API_KEY")
}
