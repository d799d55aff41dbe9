package btree

import "slices"

// find returns the smallest index i with key <= keys[i] and whether
// keys[i] equals key. If no such index exists, i == len(keys), which is the
// slot of the rightmost child.
func (n *Node[K, V]) find(key K, compare CompareFunc[K]) (int, bool) {
	return slices.BinarySearchFunc(n.keys, key, func(probe, target K) int {
		return compare(probe, target)
	})
}

// insertEntryAt inserts a key/value pair at position i.
func (n *Node[K, V]) insertEntryAt(i int, key K, value V) {
	assert(i >= 0 && i <= len(n.keys), "insertEntryAt index out of range")
	n.keys = slices.Insert(n.keys, i, key)
	n.values = slices.Insert(n.values, i, value)
}

// removeEntryAt removes the key/value pair at position i and returns it.
func (n *Node[K, V]) removeEntryAt(i int) (K, V) {
	assert(i >= 0 && i < len(n.keys), "removeEntryAt index out of range")
	key, value := n.keys[i], n.values[i]
	n.keys = slices.Delete(n.keys, i, i+1)
	n.values = slices.Delete(n.values, i, i+1)
	return key, value
}

// insertChildAt inserts child at position i.
func (n *Node[K, V]) insertChildAt(i int, child *Node[K, V]) {
	assert(i >= 0 && i <= len(n.children), "insertChildAt index out of range")
	n.children = slices.Insert(n.children, i, child)
}

// removeChildAt removes and returns the child at position i.
func (n *Node[K, V]) removeChildAt(i int) *Node[K, V] {
	assert(i >= 0 && i < len(n.children), "removeChildAt index out of range")
	child := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	return child
}

// truncate cuts n down to its first k entries and, for internal nodes, its
// first k+1 children. Dropped slots are zeroed so that moved entries are not
// kept alive twice.
func (n *Node[K, V]) truncate(k int) {
	assert(k >= 0 && k <= len(n.keys), "truncate length out of range")
	clear(n.keys[k:])
	clear(n.values[k:])
	n.keys = n.keys[:k]
	n.values = n.values[:k]
	if !n.IsLeaf() {
		clear(n.children[k+1:])
		n.children = n.children[:k+1]
	}
}

// rightmost returns the greatest entry of the subtree rooted at n
// (the in-order predecessor of the separator to the right of n).
func (n *Node[K, V]) rightmost() (K, V) {
	cur := n
	for !cur.IsLeaf() {
		cur = cur.children[len(cur.children)-1]
	}
	assert(len(cur.keys) > 0, "rightmost reached an empty leaf")
	last := len(cur.keys) - 1
	return cur.keys[last], cur.values[last]
}

// leftmost returns the smallest entry of the subtree rooted at n
// (the in-order successor of the separator to the left of n).
func (n *Node[K, V]) leftmost() (K, V) {
	cur := n
	for !cur.IsLeaf() {
		cur = cur.children[0]
	}
	assert(len(cur.keys) > 0, "leftmost reached an empty leaf")
	return cur.keys[0], cur.values[0]
}
