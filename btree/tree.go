package btree

import (
	"cmp"
)

// Tree is an in-memory B-tree mapping keys of type K to values of type V.
//
// The zero value is not usable; create trees with New or NewWithConfig.
type Tree[K, V any] struct {
	cfg   Config[K]
	root  *Node[K, V] // never nil; an empty tree has an empty leaf root
	count int
}

// New creates an empty tree of minimum degree minDegree, ordering keys by
// their natural order. It fails with ErrInvalidConfig if minDegree < 2.
func New[K cmp.Ordered, V any](minDegree int) (*Tree[K, V], error) {
	return NewWithConfig[K, V](OrderedConfig[K](minDegree))
}

// NewWithConfig creates an empty tree with validated configuration.
func NewWithConfig[K, V any](cfg Config[K]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		T().Errorf("btree: %v", err)
		return nil, err
	}
	return &Tree[K, V]{
		cfg:  cfg,
		root: newNode[K, V](cfg.maxKeys()),
	}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[K, V]) Config() Config[K] {
	return t.cfg
}

// MinDegree returns the minimum degree t of the tree.
func (t *Tree[K, V]) MinDegree() int {
	return t.cfg.MinDegree
}

// Len returns the number of key/value pairs in the tree.
func (t *Tree[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.Len() == 0
}

// Height returns the number of node levels, where 1 means the root is a leaf.
func (t *Tree[K, V]) Height() int {
	if t == nil {
		return 0
	}
	h := 1
	for n := t.root; !n.IsLeaf(); n = n.children[0] {
		h++
	}
	return h
}

// Root returns the root node for read-only inspection.
func (t *Tree[K, V]) Root() *Node[K, V] {
	return t.root
}

// Clear removes all entries, leaving an empty leaf root.
func (t *Tree[K, V]) Clear() {
	t.root = newNode[K, V](t.cfg.maxKeys())
	t.count = 0
}

// Search returns the value stored for key. The boolean result is false if
// key is not present.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	n, i, found := t.locate(key)
	if !found {
		var zero V
		return zero, false
	}
	return n.values[i], true
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	_, _, found := t.locate(key)
	return found
}

// locate finds the node and slot holding key.
func (t *Tree[K, V]) locate(key K) (*Node[K, V], int, bool) {
	n := t.root
	for {
		i, found := n.find(key, t.cfg.Compare)
		if found {
			return n, i, true
		}
		if n.IsLeaf() {
			return nil, 0, false
		}
		n = n.children[i]
	}
}

// Insert stores value for key. If key is already present its value is
// replaced in place and the previous value is returned with replaced ==
// true; the shape of the tree does not change in this case.
//
// New keys are inserted in a single top-down pass which splits every full
// node before descending into it. If the root is full, the tree grows by
// one level.
func (t *Tree[K, V]) Insert(key K, value V) (old V, replaced bool) {
	if n, i, found := t.locate(key); found {
		old = n.values[i]
		n.values[i] = value
		return old, true
	}
	if len(t.root.keys) == t.cfg.maxKeys() {
		oldRoot := t.root
		t.root = newNode[K, V](t.cfg.maxKeys())
		t.root.children = append(make([]*Node[K, V], 0, 2*t.cfg.MinDegree), oldRoot)
		t.splitChild(t.root, 0)
		T().Debugf("btree: root split, height now %d", t.Height())
	}
	t.insertNonFull(t.root, key, value)
	t.count++
	return old, false
}

// insertNonFull descends from n, which is not full, to the leaf where key
// belongs.
func (t *Tree[K, V]) insertNonFull(n *Node[K, V], key K, value V) {
	for {
		i, found := n.find(key, t.cfg.Compare)
		assert(!found, "insertNonFull found a key which should be absent")
		if n.IsLeaf() {
			n.insertEntryAt(i, key, value)
			return
		}
		if len(n.children[i].keys) == t.cfg.maxKeys() {
			t.splitChild(n, i)
			c := t.cfg.Compare(key, n.keys[i])
			assert(c != 0, "promoted median equals inserted key")
			if c > 0 {
				i++
			}
		}
		n = n.children[i]
	}
}

// Delete removes key and returns its value with removed == true. Deleting a
// key which is not present leaves the tree untouched.
func (t *Tree[K, V]) Delete(key K) (old V, removed bool) {
	if t.IsEmpty() {
		return old, false
	}
	n, i, found := t.locate(key)
	if !found {
		return old, false
	}
	old = n.values[i]
	t.deleteFrom(t.root, key)
	t.count--
	if len(t.root.keys) == 0 && !t.root.IsLeaf() {
		assert(len(t.root.children) == 1, "empty internal root must have a single child")
		t.root = t.root.children[0]
		T().Debugf("btree: root shrinks, height now %d", t.Height())
	}
	return old, true
}

// deleteFrom removes key from the subtree rooted at n. Every node it descends
// into holds at least t keys (or is the root), so removing one entry never
// leaves a node below the minimum.
func (t *Tree[K, V]) deleteFrom(n *Node[K, V], key K) {
	for {
		i, found := n.find(key, t.cfg.Compare)
		if found {
			if n.IsLeaf() {
				n.removeEntryAt(i)
				return
			}
			if n = t.deleteInternal(n, i); n == nil {
				return
			}
			continue // key now lives in the merged child
		}
		assert(!n.IsLeaf(), "deleteFrom: key vanished from descent path")
		if len(n.children[i].keys) < t.cfg.MinDegree {
			t.fill(n, i)
			continue // n may have been restructured; locate key again
		}
		n = n.children[i]
	}
}

// deleteInternal removes keys[i] from internal node n. It returns nil when
// the deletion is complete, or the merged child which now holds the key.
//
// If the left child can spare a key, keys[i] is replaced by its in-order
// predecessor, which is then deleted from the left subtree. Otherwise the
// right child is tried with the in-order successor. If neither can spare a
// key, both children are merged around keys[i].
func (t *Tree[K, V]) deleteInternal(n *Node[K, V], i int) *Node[K, V] {
	left, right := n.children[i], n.children[i+1]
	switch {
	case len(left.keys) >= t.cfg.MinDegree:
		pk, pv := left.rightmost()
		n.keys[i], n.values[i] = pk, pv
		t.deleteFrom(left, pk)
	case len(right.keys) >= t.cfg.MinDegree:
		sk, sv := right.leftmost()
		n.keys[i], n.values[i] = sk, sv
		t.deleteFrom(right, sk)
	default:
		t.merge(n, i)
		return left
	}
	return nil
}
