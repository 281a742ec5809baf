// Package pathtree builds a nested name tree from a flat stream of relative
// asset paths. Directories become nested nodes; file names land in the leaf
// list of their parent node, filtered by an extension allow-list.
package pathtree

import (
	"path"
	"sort"
	"strings"
)

// Node is one directory level of an asset tree. A name is either a child
// directory or a leaf file, never both fields of the same entry, so no
// reserved key can collide with a real directory name.
type Node struct {
	Dirs  map[string]*Node
	Files []string
}

// NewNode returns an empty directory node.
func NewNode() *Node {
	return &Node{Dirs: make(map[string]*Node)}
}

// Child returns the named child directory, or nil if it does not exist.
func (n *Node) Child(name string) *Node {
	return n.Dirs[name]
}

// DirNames returns the names of all child directories in sorted order.
func (n *Node) DirNames() []string {
	names := make([]string, 0, len(n.Dirs))
	for name := range n.Dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedFiles returns the leaf file names in sorted order. Insertion order of
// the Files slice itself is not guaranteed; callers that need a stable order
// go through this accessor.
func (n *Node) SortedFiles() []string {
	files := make([]string, len(n.Files))
	copy(files, n.Files)
	sort.Strings(files)
	return files
}

// Builder accumulates relative paths into a tree, admitting only leaf files
// whose extension is on the allow-list.
type Builder struct {
	root *Node
	exts map[string]bool
}

// NewBuilder creates a Builder that accepts the given file extensions
// (including the leading dot, matched case-insensitively).
func NewBuilder(extensions []string) *Builder {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Builder{root: NewNode(), exts: exts}
}

// Add routes one slash-separated relative path into the tree. Every segment
// but the last becomes (or reuses) a directory node; the last segment joins
// that directory's file list if its extension is allowed. Entries that cannot
// be routed or whose extension is not allowed are dropped silently.
func (b *Builder) Add(relPath string) {
	segments := strings.Split(strings.Trim(relPath, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return
	}
	file := segments[len(segments)-1]
	if !b.exts[strings.ToLower(path.Ext(file))] {
		return
	}
	node := b.root
	for _, dir := range segments[:len(segments)-1] {
		if dir == "" {
			return
		}
		child := node.Dirs[dir]
		if child == nil {
			child = NewNode()
			node.Dirs[dir] = child
		}
		node = child
	}
	node.Files = append(node.Files, file)
}

// Root returns the accumulated tree.
func (b *Builder) Root() *Node {
	return b.root
}
