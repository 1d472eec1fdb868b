// Package pathtree converts flat slash-delimited path listings, as returned
// by the gateway's file endpoints, into a nested folder tree for browsing.
// It is shared by the notes browser and the Drive folder picker.
package pathtree

import (
	"sort"
	"strings"
)

// Tree is one directory level: file names at this level plus named child
// folders. Files may repeat (the listing is not deduplicated); folder names
// are unique per level and compared byte for byte.
type Tree struct {
	Files   []string
	Folders map[string]*Tree
}

// New returns an empty tree node.
func New() *Tree {
	return &Tree{
		Folders: make(map[string]*Tree),
	}
}

// Build constructs a tree from flat paths. Each path is `/`-delimited with no
// leading slash; the final segment is a file name, every preceding segment a
// folder. Folders are created lazily and reused, so construction order never
// affects the final structure. A bare filename lands at the root, and a path
// ending in `/` yields an empty-string file entry rather than an error.
func Build(paths []string) *Tree {
	root := New()
	for _, path := range paths {
		root.insert(path)
	}
	return root
}

func (t *Tree) insert(path string) {
	node := t
	rest := path
	for {
		i := strings.IndexByte(rest, '/')
		if i < 0 {
			node.Files = append(node.Files, rest)
			return
		}
		name := rest[:i]
		rest = rest[i+1:]
		child, ok := node.Folders[name]
		if !ok {
			child = New()
			node.Folders[name] = child
		}
		node = child
	}
}

// Walk performs a depth-first traversal, invoking fn with the full
// `folder/.../file` path of every file entry. Folders are visited in
// lexicographic order so the output is deterministic; the multiset of walked
// paths is exactly the multiset passed to Build.
func (t *Tree) Walk(fn func(path string)) {
	t.walk("", fn)
}

func (t *Tree) walk(prefix string, fn func(path string)) {
	for _, name := range t.SortedFolders() {
		t.Folders[name].walk(prefix+name+"/", fn)
	}
	for _, file := range t.Files {
		fn(prefix + file)
	}
}

// Paths returns every file path in the tree, folders first at each level.
func (t *Tree) Paths() []string {
	var paths []string
	t.Walk(func(p string) {
		paths = append(paths, p)
	})
	return paths
}

// SortedFolders returns the folder names at this level in lexicographic
// order. Rendering convention puts folders before files at each level.
func (t *Tree) SortedFolders() []string {
	names := make([]string, 0, len(t.Folders))
	for name := range t.Folders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedFiles returns the file names at this level in lexicographic order.
// Duplicates are preserved.
func (t *Tree) SortedFiles() []string {
	files := make([]string, len(t.Files))
	copy(files, t.Files)
	sort.Strings(files)
	return files
}

// FileCount returns the number of file entries in the whole tree.
func (t *Tree) FileCount() int {
	count := len(t.Files)
	for _, child := range t.Folders {
		count += child.FileCount()
	}
	return count
}
