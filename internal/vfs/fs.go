package vfs

import "sync/atomic"

// FS owns the current root. Readers take a snapshot with Root(); AddFile
// builds the next tree off to the side and swaps the pointer in one step.
type FS struct {
	root atomic.Pointer[Node]
}

// New creates an FS over root.
func New(root *Node) *FS {
	fs := &FS{}
	fs.root.Store(root)
	return fs
}

// Root returns the current tree snapshot.
func (fs *FS) Root() *Node {
	return fs.root.Load()
}

// Lookup resolves an absolute path against the current root.
func (fs *FS) Lookup(path string) (*Node, bool) {
	return Lookup(fs.Root(), path)
}

// AddFile stores a file named name in directory dir.
// An existing entry with the same name is replaced.
func (fs *FS) AddFile(dir, name string, ref Ref) error {
	for {
		old := fs.root.Load()
		next, err := WithFile(old, dir, name, File(ref))
		if err != nil {
			return err
		}
		if fs.root.CompareAndSwap(old, next) {
			return nil
		}
	}
}
