package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		cwd   string
		want  string
	}{
		{"..", "/", "/"},
		{"a/./b/../c", "/x", "/x/a/c"},
		{"/etc/../usr", "/home", "/usr"},
		{"Documents", "/home/glitchbane", "/home/glitchbane/Documents"},
		{"../../../../..", "/home/glitchbane", "/"},
		{"//a///b//", "/", "/a/b"},
		{".", "/home", "/home"},
		{"", "/home/glitchbane", "/home/glitchbane"},
		{"/", "/home", "/"},
		{"x/..", "/", "/"},
	}

	for _, tt := range tests {
		if got := Resolve(tt.input, tt.cwd); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.input, tt.cwd, got, tt.want)
		}
	}
}

func TestResolveIdempotentOnAbsolute(t *testing.T) {
	inputs := []string{"/a/../b/./c", "/..", "/x/y/z/../../w", "/a//b/"}
	cwds := []string{"/", "/home/glitchbane", "/deep/er/path"}

	for _, p := range inputs {
		for _, d := range cwds {
			once := Resolve(p, d)
			twice := Resolve(once, d)
			if once != twice {
				t.Errorf("Resolve not idempotent for %q in %q: %q then %q", p, d, once, twice)
			}
			if strings.Contains(once, "/./") || strings.Contains(once, "/../") {
				t.Errorf("Resolve(%q) = %q is not canonical", p, once)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	root := Home(DefaultHome)

	node, ok := Lookup(root, "/")
	require.True(t, ok)
	require.Same(t, root, node)

	node, ok = Lookup(root, "/home/glitchbane/Documents/about.md")
	require.True(t, ok)
	require.True(t, node.IsFile())
	require.Equal(t, Key("about_md"), node.Ref())

	node, ok = Lookup(root, Resolve("Projects", DefaultHome))
	require.True(t, ok)
	require.True(t, node.IsDir())
	require.Equal(t, []string{"README.md", "anochecer.proj", "daemons.proj", "quimera.proj"}, node.Names())
}

func TestLookupNotFound(t *testing.T) {
	root := Home(DefaultHome)

	for _, p := range []string{
		"/home/nobody",
		"/home/glitchbane/nope/about.md",
		"/home/glitchbane/README.md/child", // file in the middle of the path
		"/missing",
	} {
		node, ok := Lookup(root, p)
		if ok || node != nil {
			t.Errorf("Lookup(%q) = %v, %v; want not found", p, node, ok)
		}
	}

	_, ok := Lookup(nil, "/")
	require.False(t, ok)
}

func TestWithFileIsPersistent(t *testing.T) {
	old := Home(DefaultHome)

	next, err := WithFile(old, "/home/glitchbane/Documents", "file.bin", File(Text("Downloaded file: file.bin")))
	require.NoError(t, err)

	// The new tree sees the file.
	node, ok := Lookup(next, "/home/glitchbane/Documents/file.bin")
	require.True(t, ok)
	require.Equal(t, "Downloaded file: file.bin", node.Ref().Value)

	// The old tree does not.
	_, ok = Lookup(old, "/home/glitchbane/Documents/file.bin")
	require.False(t, ok)

	// Untouched siblings are shared, not copied.
	oldProjects, _ := Lookup(old, "/home/glitchbane/Projects")
	newProjects, _ := Lookup(next, "/home/glitchbane/Projects")
	require.Same(t, oldProjects, newProjects)

	// The path to the change is copied.
	oldDocs, _ := Lookup(old, "/home/glitchbane/Documents")
	newDocs, _ := Lookup(next, "/home/glitchbane/Documents")
	require.NotSame(t, oldDocs, newDocs)
}

func TestWithFileErrors(t *testing.T) {
	root := Home(DefaultHome)

	_, err := WithFile(root, "/home/glitchbane/missing", "x", File(Text("")))
	require.Error(t, err)

	_, err = WithFile(root, "/home/glitchbane/README.md", "x", File(Text("")))
	require.Error(t, err)

	_, err = WithFile(root, "/home", "", File(Text("")))
	require.Error(t, err)

	_, err = WithFile(root, "/home", "a/b", File(Text("")))
	require.Error(t, err)
}

func TestFSAddFileReplaces(t *testing.T) {
	fs := New(Home(DefaultHome))
	before := fs.Root()

	require.NoError(t, fs.AddFile(DefaultHome, "file.bin", Text("one")))
	require.NoError(t, fs.AddFile(DefaultHome, "file.bin", Text("two")))

	node, ok := fs.Lookup(DefaultHome + "/file.bin")
	require.True(t, ok)
	require.Equal(t, "two", node.Ref().Value)

	home, _ := fs.Lookup(DefaultHome)
	count := 0
	for _, name := range home.Names() {
		if name == "file.bin" {
			count++
		}
	}
	require.Equal(t, 1, count)

	_, ok = Lookup(before, DefaultHome+"/file.bin")
	require.False(t, ok, "snapshot taken before the swap must not change")
}

func TestHomeMountsAtPath(t *testing.T) {
	root := Home("/users/me")
	node, ok := Lookup(root, "/users/me/contact.md")
	require.True(t, ok)
	require.True(t, node.IsFile())

	flat := Home("/")
	_, ok = Lookup(flat, "/vault/protocol.dat.enc")
	require.True(t, ok)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "dir", KindDir.String())
	require.Equal(t, "file", KindFile.String())
	require.Equal(t, "unknown", Kind(42).String())
}
