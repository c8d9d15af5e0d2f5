package vfs

import (
	"fmt"
	"strings"
)

// Split breaks a path into its non-empty segments.
// Repeated and trailing slashes disappear: "/a//b/" -> ["a", "b"].
func Split(path string) []string {
	raw := strings.Split(path, "/")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Resolve turns input into a canonical absolute path, relative to cwd unless
// input starts with "/". "." is dropped and ".." pops the previous segment.
// Popping past the root is a no-op, so "/.." is simply "/".
func Resolve(input, cwd string) string {
	var acc []string
	if !strings.HasPrefix(input, "/") {
		acc = Split(cwd)
	}

	for _, part := range Split(input) {
		switch part {
		case ".":
		case "..":
			if len(acc) > 0 {
				acc = acc[:len(acc)-1]
			}
		default:
			acc = append(acc, part)
		}
	}
	return "/" + strings.Join(acc, "/")
}

// Lookup walks root along path. Every step must land on a directory that
// holds the next segment; a missing name or a file in the middle of the
// path reports false.
func Lookup(root *Node, path string) (*Node, bool) {
	if root == nil {
		return nil, false
	}
	if path == "/" {
		return root, true
	}

	node := root
	for _, part := range Split(path) {
		child, ok := node.Child(part)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// WithFile returns a new root in which the directory at dir holds name bound
// to file. Only the directories from the root down to dir are copied; every
// other node is shared with the old root, which is left untouched.
func WithFile(root *Node, dir, name string, file *Node) (*Node, error) {
	if name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	if !root.IsDir() {
		return nil, fmt.Errorf("root is not a directory")
	}
	return insert(root, Split(dir), dir, name, file)
}

func insert(node *Node, parts []string, dir, name string, file *Node) (*Node, error) {
	if len(parts) == 0 {
		return node.with(name, file), nil
	}

	child, ok := node.Child(parts[0])
	if !ok || !child.IsDir() {
		return nil, fmt.Errorf("no such directory: %s", dir)
	}

	updated, err := insert(child, parts[1:], dir, name, file)
	if err != nil {
		return nil, err
	}
	return node.with(parts[0], updated), nil
}
