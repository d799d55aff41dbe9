package btree

// ForEach walks all entries in ascending key order.
//
// Iteration stops early if fn returns false. fn must not mutate the tree.
func (t *Tree[K, V]) ForEach(fn func(key K, value V) bool) {
	if t == nil || fn == nil {
		return
	}
	t.forEachNode(t.root, fn)
}

func (t *Tree[K, V]) forEachNode(n *Node[K, V], fn func(key K, value V) bool) bool {
	assert(n != nil, "forEachNode called with nil node")
	if n.IsLeaf() {
		for i, key := range n.keys {
			if !fn(key, n.values[i]) {
				return false
			}
		}
		return true
	}
	for i, key := range n.keys {
		if !t.forEachNode(n.children[i], fn) {
			return false
		}
		if !fn(key, n.values[i]) {
			return false
		}
	}
	return t.forEachNode(n.children[len(n.keys)], fn)
}

// AscendRange calls fn for every entry with from <= key < to, in ascending
// order, until fn returns false.
func (t *Tree[K, V]) AscendRange(from, to K, fn func(key K, value V) bool) {
	if t == nil || fn == nil {
		return
	}
	c := &Cursor[K, V]{tree: t}
	for ok := c.Seek(from); ok; ok = c.Next() {
		key, value, _ := c.Entry()
		if t.cfg.Compare(key, to) >= 0 || !fn(key, value) {
			return
		}
	}
}

// Traverse visits every node in pre-order, left to right. depth is 0 for the
// root. It is meant for diagnostics; visit must not mutate the tree or keep
// nodes beyond the next mutating call.
func (t *Tree[K, V]) Traverse(visit func(n *Node[K, V], depth int)) {
	if t == nil || visit == nil {
		return
	}
	t.traverseNode(t.root, 0, visit)
}

func (t *Tree[K, V]) traverseNode(n *Node[K, V], depth int, visit func(*Node[K, V], int)) {
	visit(n, depth)
	for _, child := range n.children {
		t.traverseNode(child, depth+1, visit)
	}
}

// TraverseBreadthFirst visits every node level by level, each level left to
// right.
func (t *Tree[K, V]) TraverseBreadthFirst(visit func(n *Node[K, V], depth int)) {
	if t == nil || visit == nil {
		return
	}
	level := []*Node[K, V]{t.root}
	for depth := 0; len(level) > 0; depth++ {
		var next []*Node[K, V]
		for _, n := range level {
			visit(n, depth)
			next = append(next, n.children...)
		}
		level = next
	}
}
