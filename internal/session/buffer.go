package session

import (
	"github.com/google/uuid"

	"github.com/Necromancer-Labs/voidshell/internal/output"
)

// LineKind says how a line behaves once it is in the buffer.
type LineKind int

const (
	LineNormal      LineKind = iota // printed once, never touched again
	LineProgress                    // animated; its content changes in place
	LineInteractive                 // owns the keyboard until it finishes
)

func (k LineKind) String() string {
	switch k {
	case LineNormal:
		return "normal"
	case LineProgress:
		return "progress"
	case LineInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Line is one entry of the scrollback.
type Line struct {
	ID      uuid.UUID
	Kind    LineKind
	Content output.Renderable
}

// Buffer is the ordered scrollback. Version increases on every change so a
// view can tell when to re-render and auto-scroll.
type Buffer struct {
	lines   []Line
	version uint64
}

// Append adds l at the end.
func (b *Buffer) Append(l Line) {
	b.lines = append(b.lines, l)
	b.version++
}

// Update replaces the content of the line with id. It reports whether the
// line exists.
func (b *Buffer) Update(id uuid.UUID, r output.Renderable) bool {
	for i := range b.lines {
		if b.lines[i].ID == id {
			b.lines[i].Content = r
			b.version++
			return true
		}
	}
	return false
}

// Touch marks the buffer changed without altering it; animated lines
// mutate their own state.
func (b *Buffer) Touch() {
	b.version++
}

// Clear drops every line.
func (b *Buffer) Clear() {
	b.lines = nil
	b.version++
}

// RemoveKind drops the lines of kind k.
func (b *Buffer) RemoveKind(k LineKind) {
	kept := b.lines[:0]
	for _, l := range b.lines {
		if l.Kind != k {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(b.lines); i++ {
		b.lines[i] = Line{}
	}
	b.lines = kept
	b.version++
}

// Lines returns a copy of the scrollback.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.lines) }

// Version returns the change counter.
func (b *Buffer) Version() uint64 { return b.version }
