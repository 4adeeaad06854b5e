package keymap

import (
	"fmt"

	"github.com/dshills/filestorm/internal/input/key"
	"github.com/dshills/filestorm/internal/input/mode"
)

// Tree holds one binding trie per mode. Each node may carry a terminal
// binding and/or children keyed by the next Key.
type Tree struct {
	roots map[mode.Mode]*node
}

type node struct {
	binding  Binding
	children map[key.Key]*node
}

func newNode() *node {
	return &node{children: make(map[key.Key]*node)}
}

// NewTree creates an empty binding tree.
func NewTree() *Tree {
	return &Tree{roots: make(map[mode.Mode]*node)}
}

// Add registers a binding for the given mode and key sequence. Registering
// the same sequence twice replaces the earlier binding, which lets user
// configuration override defaults.
func (t *Tree) Add(m mode.Mode, keys []key.Key, b Binding) error {
	if len(keys) == 0 {
		return fmt.Errorf("empty key sequence for mode %s", m)
	}
	if b == nil {
		return fmt.Errorf("nil binding for %q in mode %s", key.Sequence(keys), m)
	}

	root, ok := t.roots[m]
	if !ok {
		root = newNode()
		t.roots[m] = root
	}

	n := root
	for _, k := range keys {
		child, ok := n.children[k]
		if !ok {
			child = newNode()
			n.children[k] = child
		}
		n = child
	}
	n.binding = b
	return nil
}

// Result describes what a lookup found.
type Result int

const (
	// ResultNone means no node matches the sequence prefix.
	ResultNone Result = iota

	// ResultPending means a node matches but resolution must wait for more
	// keys: either the node has no terminal binding yet, or children make
	// the match ambiguous.
	ResultPending

	// ResultBound means the sequence matched a terminal binding with no
	// further continuations.
	ResultBound
)

// Find walks the mode's trie along the key sequence. For ResultBound the
// returned binding is the unambiguous terminal match; otherwise it is nil.
func (t *Tree) Find(m mode.Mode, keys []key.Key) (Binding, Result) {
	root, ok := t.roots[m]
	if !ok {
		return nil, ResultNone
	}

	n := root
	for _, k := range keys {
		child, ok := n.children[k]
		if !ok {
			return nil, ResultNone
		}
		n = child
	}

	if n.binding != nil && len(n.children) == 0 {
		return n.binding, ResultBound
	}
	return nil, ResultPending
}
