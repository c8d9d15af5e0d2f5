package shell

import (
	"path"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Necromancer-Labs/voidshell/internal/session"
)

// PathCompleter provides tab completion for paths in the virtual filesystem.
// It wraps the default command completer and adds path completion for the
// commands that take a file or directory argument.
type PathCompleter struct {
	session *session.Session

	// cmdCompleter handles command name completion (fallback)
	cmdCompleter readline.AutoCompleter

	// pathCmds maps command names to the argument positions that are paths
	pathCmds map[string][]int
}

// NewPathCompleter creates a completer that handles both commands and paths.
// The cmdCompleter is used for command name completion (first word); when
// nil, names come from the session's command table.
func NewPathCompleter(s *session.Session, cmdCompleter readline.AutoCompleter) *PathCompleter {
	return &PathCompleter{
		session:      s,
		cmdCompleter: cmdCompleter,
		pathCmds: map[string][]int{
			"ls":      {0}, // ls [dir]
			"cd":      {0}, // cd <dir>
			"cat":     {0}, // cat <file>
			"tree":    {0}, // tree [dir]
			"decrypt": {0}, // decrypt <file>
		},
	}
}

// Do implements readline.AutoCompleter interface.
// Called when user presses TAB.
func (c *PathCompleter) Do(line []rune, pos int) ([][]rune, int) {
	lineStr := string(line[:pos])
	parts := strings.Fields(lineStr)

	// Still on the first word: complete command names.
	if len(parts) == 0 || (len(parts) == 1 && !strings.HasSuffix(lineStr, " ")) {
		return c.completeCommand(line, pos)
	}

	// The remote shell has no filesystem to complete against.
	if c.session.RemoteHost() != "" {
		return nil, 0
	}

	positions, ok := c.pathCmds[parts[0]]
	if !ok {
		return nil, 0
	}

	// argIndex counts from 1; a trailing space starts a new argument.
	argIndex := len(parts) - 1
	if strings.HasSuffix(lineStr, " ") {
		argIndex = len(parts)
	}
	isPathArg := false
	for _, p := range positions {
		if p == argIndex-1 {
			isPathArg = true
			break
		}
	}
	if !isPathArg {
		return nil, 0
	}

	partial := ""
	if argIndex < len(parts) {
		partial = parts[argIndex]
	}
	return c.completePath(partial)
}

func (c *PathCompleter) completeCommand(line []rune, pos int) ([][]rune, int) {
	if c.cmdCompleter != nil {
		return c.cmdCompleter.Do(line, pos)
	}
	prefix := strings.TrimLeft(string(line[:pos]), " ")
	var matches [][]rune
	for _, name := range c.session.Table().Names() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, []rune(name[len(prefix):]+" "))
		}
	}
	return matches, len(prefix)
}

// completePath lists the directory part of partial and returns the
// suffixes of the entries that start with its last segment.
//
//	"Docs"          -> dir=".",      prefix="Docs"
//	"Projects/qu"   -> dir="Projects", prefix="qu"
//	"/home/"        -> dir="/home/", prefix=""
func (c *PathCompleter) completePath(partial string) ([][]rune, int) {
	var dir, prefix string
	switch {
	case partial == "":
		dir = "."
	case strings.HasSuffix(partial, "/"):
		dir = partial
	default:
		dir = path.Dir(partial)
		prefix = path.Base(partial)
	}

	node, ok := c.session.Lookup(c.session.Resolve(dir))
	if !ok || !node.IsDir() {
		return nil, 0
	}

	var matches [][]rune
	for _, name := range node.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		suffix := name[len(prefix):]
		if child, _ := node.Child(name); child.IsDir() {
			suffix += "/"
		}
		matches = append(matches, []rune(suffix))
	}
	return matches, len(prefix)
}
