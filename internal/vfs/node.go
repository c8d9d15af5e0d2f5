// Package vfs provides the in-memory filesystem behind the voidshell prompt.
//
// The tree is read-only from the point of view of the commands. The single
// mutation point (a downloaded file landing in the working directory) goes
// through WithFile, which copies only the nodes on the path to the changed
// directory and hands back a brand new root. The old root stays valid, so a
// render that is still holding it never observes a half-built tree.
package vfs

import "sort"

// Kind tags a Node as a directory or a file
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

// String returns a human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// RefKind says how a file's content reference is resolved.
type RefKind int

const (
	RefText      RefKind = iota // Value is the literal content
	RefKey                      // Value is a translation key holding markdown
	RefProject                  // Value is a project slug
	RefImage                    // Value is a translation key for the "cannot display" notice
	RefEncrypted                // Value is the translation key of the plaintext
)

// Ref is an opaque content reference stored in a file node.
type Ref struct {
	Kind  RefKind
	Value string
}

// Text returns a literal content reference.
func Text(s string) Ref { return Ref{Kind: RefText, Value: s} }

// Key returns a translated markdown content reference.
func Key(key string) Ref { return Ref{Kind: RefKey, Value: key} }

// Node is either a directory (with children) or a file (with a Ref).
// Nodes are treated as immutable once they are reachable from a root.
type Node struct {
	kind     Kind
	ref      Ref
	children map[string]*Node
}

// Dir creates a directory node. The children map is copied.
func Dir(children map[string]*Node) *Node {
	c := make(map[string]*Node, len(children))
	for name, child := range children {
		c[name] = child
	}
	return &Node{kind: KindDir, children: c}
}

// File creates a file node holding ref.
func File(ref Ref) *Node {
	return &Node{kind: KindFile, ref: ref}
}

// Kind reports whether n is a directory or a file.
func (n *Node) Kind() Kind { return n.kind }

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool { return n != nil && n.kind == KindDir }

// IsFile reports whether n is a file.
func (n *Node) IsFile() bool { return n != nil && n.kind == KindFile }

// Ref returns the content reference of a file node (zero for directories).
func (n *Node) Ref() Ref { return n.ref }

// Child returns the named child of a directory.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsDir() {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Len returns the number of children (always 0 for files).
func (n *Node) Len() int {
	return len(n.children)
}

// Names returns the child names sorted, so listings are stable.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// with returns a shallow copy of directory n with name bound to child.
func (n *Node) with(name string, child *Node) *Node {
	c := make(map[string]*Node, len(n.children)+1)
	for k, v := range n.children {
		c[k] = v
	}
	c[name] = child
	return &Node{kind: KindDir, children: c}
}
