package btree

// splitChild splits the full child parent.children[i].
//
// The median entry (index t-1) moves up into parent at position i. Entries
// after the median, and for internal nodes the children after the median,
// move to a new right sibling which is linked at parent.children[i+1]. The
// child keeps everything strictly before the median.
func (t *Tree[K, V]) splitChild(parent *Node[K, V], i int) {
	assert(parent != nil, "splitChild called with nil parent")
	assert(i >= 0 && i < len(parent.children), "splitChild index out of range")
	child := parent.children[i]
	assert(len(child.keys) == t.cfg.maxKeys(), "splitChild called for non-full child")
	mid := t.cfg.MinDegree - 1
	sibling := newNode[K, V](t.cfg.maxKeys())
	sibling.keys = append(sibling.keys, child.keys[mid+1:]...)
	sibling.values = append(sibling.values, child.values[mid+1:]...)
	if !child.IsLeaf() {
		sibling.children = make([]*Node[K, V], 0, 2*t.cfg.MinDegree)
		sibling.children = append(sibling.children, child.children[mid+1:]...)
	}
	medianKey, medianValue := child.keys[mid], child.values[mid]
	child.truncate(mid)
	parent.insertEntryAt(i, medianKey, medianValue)
	parent.insertChildAt(i+1, sibling)
	T().Debugf("btree: split child %d, median %v moves up", i, medianKey)
}

// borrowFromPrev rotates one entry from the left sibling of
// parent.children[i] through the parent into the child.
func (t *Tree[K, V]) borrowFromPrev(parent *Node[K, V], i int) {
	assert(i > 0, "borrowFromPrev called for leftmost child")
	child, sibling := parent.children[i], parent.children[i-1]
	assert(len(sibling.keys) >= t.cfg.MinDegree, "borrowFromPrev: sibling cannot lend")
	child.insertEntryAt(0, parent.keys[i-1], parent.values[i-1])
	last := len(sibling.keys) - 1
	parent.keys[i-1], parent.values[i-1] = sibling.keys[last], sibling.values[last]
	if child.IsLeaf() {
		sibling.truncate(last)
	} else {
		moved := sibling.children[last+1]
		sibling.truncate(last)
		child.insertChildAt(0, moved)
	}
	T().Debugf("btree: child %d borrowed from left sibling", i)
}

// borrowFromNext rotates one entry from the right sibling of
// parent.children[i] through the parent into the child.
func (t *Tree[K, V]) borrowFromNext(parent *Node[K, V], i int) {
	assert(i+1 < len(parent.children), "borrowFromNext called for rightmost child")
	child, sibling := parent.children[i], parent.children[i+1]
	assert(len(sibling.keys) >= t.cfg.MinDegree, "borrowFromNext: sibling cannot lend")
	child.insertEntryAt(len(child.keys), parent.keys[i], parent.values[i])
	parent.keys[i], parent.values[i] = sibling.removeEntryAt(0)
	if !child.IsLeaf() {
		child.insertChildAt(len(child.children), sibling.removeChildAt(0))
	}
	T().Debugf("btree: child %d borrowed from right sibling", i)
}

// merge folds parent.children[i+1] and the separator parent.keys[i] into
// parent.children[i]. The parent loses one entry and one child.
func (t *Tree[K, V]) merge(parent *Node[K, V], i int) {
	assert(i >= 0 && i+1 < len(parent.children), "merge index out of range")
	child, sibling := parent.children[i], parent.children[i+1]
	assert(len(child.keys)+len(sibling.keys)+1 <= t.cfg.maxKeys(), "merge would overflow node")
	sepKey, sepValue := parent.removeEntryAt(i)
	parent.removeChildAt(i + 1)
	child.keys = append(child.keys, sepKey)
	child.values = append(child.values, sepValue)
	child.keys = append(child.keys, sibling.keys...)
	child.values = append(child.values, sibling.values...)
	child.children = append(child.children, sibling.children...)
	T().Debugf("btree: merged children %d and %d around %v", i, i+1, sepKey)
}

// fill makes sure parent.children[i] holds at least t keys before a delete
// descends into it: borrow from the left sibling, else from the right
// sibling, else merge with the right sibling (or the left one for the
// rightmost child).
func (t *Tree[K, V]) fill(parent *Node[K, V], i int) {
	last := len(parent.children) - 1
	switch {
	case i > 0 && len(parent.children[i-1].keys) >= t.cfg.MinDegree:
		t.borrowFromPrev(parent, i)
	case i < last && len(parent.children[i+1].keys) >= t.cfg.MinDegree:
		t.borrowFromNext(parent, i)
	case i < last:
		t.merge(parent, i)
	default:
		t.merge(parent, i-1)
	}
}
