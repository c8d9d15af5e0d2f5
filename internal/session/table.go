package session

import (
	"sort"
	"strings"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
)

// Handler runs one command. It returns the output to print, or nil when
// the command printed through ctx or has nothing to say.
type Handler func(args []string, t i18n.Func, ctx Context) output.Renderable

// Table maps command names to handlers. It cannot change after NewTable.
type Table struct {
	handlers map[string]Handler
	names    []string
}

// NewTable copies handlers into a table. Names with whitespace and nil
// handlers are skipped.
func NewTable(handlers map[string]Handler) *Table {
	t := &Table{handlers: make(map[string]Handler, len(handlers))}
	for name, h := range handlers {
		if h == nil || name == "" || strings.ContainsAny(name, " \t\n") {
			continue
		}
		t.handlers[name] = h
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)
	return t
}

// Lookup returns the handler for name. Names are case-sensitive.
func (t *Table) Lookup(name string) (Handler, bool) {
	h, ok := t.handlers[name]
	return h, ok
}

// Names returns the command names, sorted.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of commands.
func (t *Table) Len() int { return len(t.names) }

// Completion is the result of completing a partial command name.
type Completion struct {
	Ghost      string   // the single candidate, when it extends the input
	Candidates []string // sorted names starting with the input
}

// Complete finds command names starting with input. Inputs that are empty
// or already hold an argument complete to nothing.
func (t *Table) Complete(input string) Completion {
	var c Completion
	if input == "" || strings.Contains(input, " ") {
		return c
	}
	for _, name := range t.names {
		if strings.HasPrefix(name, input) {
			c.Candidates = append(c.Candidates, name)
		}
	}
	if len(c.Candidates) == 1 && c.Candidates[0] != input {
		c.Ghost = c.Candidates[0]
	}
	return c
}
