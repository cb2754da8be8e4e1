// Package vfs is the in-memory filesystem the shell browses and loads
// programs from.  It is seeded from a JSON tree of nodes.
package vfs

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/navionguy/nextbasic/berrors"
	"github.com/navionguy/nextbasic/filelist"
)

// node types
const (
	DirNode = "dir"
	TxtNode = "txt"
	AppNode = "app"
)

// Node is one directory, text file or app link
type Node struct {
	Type     string           `json:"type"`
	Content  string           `json:"content,omitempty"`
	URL      string           `json:"url,omitempty"`
	Size     int              `json:"size,omitempty"` // KB
	Children map[string]*Node `json:"children,omitempty"`
}

// IsDir is true for directories
func (n *Node) IsDir() bool {
	return n.Type == DirNode
}

// FS is a filesystem rooted at a single directory node
type FS struct {
	mu   sync.RWMutex
	root *Node
}

// New returns an empty filesystem
func New() *FS {
	return &FS{root: &Node{Type: DirNode, Children: map[string]*Node{}}}
}

// Load reads a JSON tree, the top node must be a directory
func Load(r io.Reader) (*FS, error) {
	var root Node

	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("vfs: decoding tree: %w", err)
	}

	if !root.IsDir() {
		return nil, fmt.Errorf("vfs: root is a %q node, not a directory", root.Type)
	}

	if err := fixup(&root, "/"); err != nil {
		return nil, err
	}

	return &FS{root: &root}, nil
}

// fixup checks node types and fills in missing sizes
func fixup(n *Node, where string) error {
	switch n.Type {
	case DirNode:
		if n.Children == nil {
			n.Children = map[string]*Node{}
		}
		for name, child := range n.Children {
			if child == nil || len(name) == 0 || strings.Contains(name, "/") {
				return fmt.Errorf("vfs: bad entry %q in %s", name, where)
			}
			if err := fixup(child, path.Join(where, name)); err != nil {
				return err
			}
		}
	case TxtNode:
		if n.Size == 0 {
			n.Size = sizeKB(n.Content)
		}
	case AppNode:
	default:
		return fmt.Errorf("vfs: %s has unknown type %q", where, n.Type)
	}
	return nil
}

// Save writes the tree back out as JSON
func (fs *FS) Save(w io.Writer) error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fs.root); err != nil {
		return fmt.Errorf("vfs: encoding tree: %w", err)
	}
	return nil
}

// Normalize resolves p against the directory cwd, handling
// absolute paths, "." and "..".  The result is always absolute
// and never climbs above the root.
func Normalize(cwd string, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = path.Join("/", cwd, p)
	}
	return path.Clean("/" + p)
}

// split turns an absolute path into its parts
func split(p string) []string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if len(p) == 0 {
		return nil
	}
	return strings.Split(p, "/")
}

// Lookup finds the node at an absolute path
func (fs *FS) Lookup(p string) (*Node, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.lookup(p)
}

func (fs *FS) lookup(p string) (*Node, bool) {
	node := fs.root
	for _, part := range split(p) {
		if node.Children == nil {
			return nil, false
		}
		next, ok := node.Children[part]
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// ReadFile returns the contents of a text file
func (fs *FS) ReadFile(p string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, ok := fs.lookup(p)
	if !ok {
		return "", berrors.New(berrors.FileNotFound, "%s", p)
	}

	if node.Type != TxtNode {
		return "", berrors.New(berrors.NotATextFile, "%s", p)
	}

	return node.Content, nil
}

// WriteFile creates or replaces a text file, its directory must exist
func (fs *FS) WriteFile(p string, content string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parts := split(p)
	if len(parts) == 0 {
		return berrors.New(berrors.NotATextFile, "%s", p)
	}

	dir, ok := fs.lookup("/" + strings.Join(parts[:len(parts)-1], "/"))
	if !ok || !dir.IsDir() {
		return berrors.New(berrors.NotADirectory, "%s", path.Dir(path.Clean("/"+p)))
	}

	name := parts[len(parts)-1]
	if old, ok := dir.Children[name]; ok && old.Type != TxtNode {
		return berrors.New(berrors.NotATextFile, "%s", p)
	}

	dir.Children[name] = &Node{Type: TxtNode, Content: content, Size: sizeKB(content)}
	return nil
}

// List returns the entries in a directory, directories first
func (fs *FS) List(p string) (*filelist.FileList, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, ok := fs.lookup(p)
	if !ok || !node.IsDir() {
		return nil, berrors.New(berrors.NotADirectory, "%s", p)
	}

	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	fl := filelist.NewFileList()
	for _, name := range names {
		child := node.Children[name]
		if child.IsDir() {
			fl.AddFile(name, true, "", 0)
			continue
		}
		fl.AddFile(name, false, child.Type, child.Size)
	}
	fl.Sort()

	return fl, nil
}

// sizes are whole KB, anything non-empty is at least 1
func sizeKB(content string) int {
	return (len(content) + 1023) / 1024
}
