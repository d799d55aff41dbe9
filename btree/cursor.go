package btree

import "fmt"

// Cursor walks the entries of a tree in ascending key order.
//
// A cursor is invalidated by every mutating call on its tree; using it
// afterwards yields undefined positions (but never corrupts the tree).
type Cursor[K, V any] struct {
	tree  *Tree[K, V]
	stack []cursorFrame[K, V] // path from root to the current node
}

type cursorFrame[K, V any] struct {
	node *Node[K, V]
	pos  int // current entry index in node; for internal nodes the next entry to visit
}

// NewCursor creates an unpositioned cursor for tree.
func NewCursor[K, V any](tree *Tree[K, V]) (*Cursor[K, V], error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: tree is nil", ErrIllegalArguments)
	}
	return &Cursor[K, V]{tree: tree}, nil
}

// First positions the cursor at the smallest entry. It returns false for an
// empty tree.
func (c *Cursor[K, V]) First() bool {
	c.stack = c.stack[:0]
	if c.tree.IsEmpty() {
		return false
	}
	c.descendLeft(c.tree.root)
	return true
}

// Seek positions the cursor at the first entry with a key >= key. It returns
// false if there is no such entry.
func (c *Cursor[K, V]) Seek(key K) bool {
	c.stack = c.stack[:0]
	if c.tree.IsEmpty() {
		return false
	}
	n := c.tree.root
	for {
		i, found := n.find(key, c.tree.cfg.Compare)
		c.stack = append(c.stack, cursorFrame[K, V]{node: n, pos: i})
		if found || n.IsLeaf() {
			break
		}
		n = n.children[i]
	}
	return c.settle()
}

// Next advances the cursor to the following entry. It returns false when the
// entries are exhausted.
func (c *Cursor[K, V]) Next() bool {
	if !c.Valid() {
		return false
	}
	top := &c.stack[len(c.stack)-1]
	if top.node.IsLeaf() {
		top.pos++
		return c.settle()
	}
	// the successor of an internal entry is the leftmost entry right of it
	top.pos++
	c.descendLeft(top.node.children[top.pos])
	return true
}

// Valid reports whether the cursor is positioned on an entry.
func (c *Cursor[K, V]) Valid() bool {
	if len(c.stack) == 0 {
		return false
	}
	top := c.stack[len(c.stack)-1]
	return top.pos < len(top.node.keys)
}

// Entry returns the key and value at the cursor position.
func (c *Cursor[K, V]) Entry() (key K, value V, err error) {
	if !c.Valid() {
		return key, value, ErrInvalidCursor
	}
	top := c.stack[len(c.stack)-1]
	return top.node.keys[top.pos], top.node.values[top.pos], nil
}

// descendLeft pushes the path to the leftmost entry of the subtree at n.
func (c *Cursor[K, V]) descendLeft(n *Node[K, V]) {
	for {
		c.stack = append(c.stack, cursorFrame[K, V]{node: n, pos: 0})
		if n.IsLeaf() {
			return
		}
		n = n.children[0]
	}
}

// settle pops exhausted frames until the top frame points at an entry.
func (c *Cursor[K, V]) settle() bool {
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		if top.pos < len(top.node.keys) {
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return false
}
