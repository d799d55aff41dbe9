package btree

import "slices"

// Node is one node of a B-tree.
//
// keys are strictly increasing and values[i] belongs to keys[i]. An internal
// node has exactly len(keys)+1 children, a leaf has none. Clients only get to
// see nodes during traversal and must treat them as read-only; the accessors
// hand out copies.
type Node[K, V any] struct {
	keys     []K
	values   []V
	children []*Node[K, V]
}

// IsLeaf reports whether n has no children.
func (n *Node[K, V]) IsLeaf() bool { return len(n.children) == 0 }

// Len returns the number of keys stored in n.
func (n *Node[K, V]) Len() int { return len(n.keys) }

// NumChildren returns the number of children of n.
func (n *Node[K, V]) NumChildren() int { return len(n.children) }

// Keys returns a copy of the keys of n.
func (n *Node[K, V]) Keys() []K { return slices.Clone(n.keys) }

// Values returns a copy of the values of n, parallel to Keys.
func (n *Node[K, V]) Values() []V { return slices.Clone(n.values) }

// Entry returns the i-th key/value pair of n.
func (n *Node[K, V]) Entry(i int) (K, V) {
	assert(i >= 0 && i < len(n.keys), "node entry index out of range")
	return n.keys[i], n.values[i]
}

// newNode creates an empty node with room for a full node's entries.
func newNode[K, V any](maxKeys int) *Node[K, V] {
	return &Node[K, V]{
		keys:   make([]K, 0, maxKeys),
		values: make([]V, 0, maxKeys),
	}
}
