package btree

import "fmt"

// Check validates the structural invariants of the tree:
//
//   - every non-root node holds between t-1 and 2t-1 keys, the root at most 2t-1,
//   - an empty root is a leaf,
//   - keys, values and children of a node have matching lengths,
//   - keys are strictly increasing within a node and separate its subtrees,
//   - all leaves are at the same depth,
//   - the number of entries matches Len.
//
// It is meant for tests and diagnostics.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariantViolation)
	}
	if t.root == nil {
		return fmt.Errorf("%w: nil root", ErrInvariantViolation)
	}
	if len(t.root.keys) == 0 && !t.root.IsLeaf() {
		return fmt.Errorf("%w: empty root has children", ErrInvariantViolation)
	}
	c := checker[K, V]{cfg: t.cfg, leafDepth: -1}
	if err := c.checkNode(t.root, 0, nil, nil); err != nil {
		return err
	}
	if c.count != t.count {
		return fmt.Errorf("%w: item count mismatch (%d != %d)", ErrInvariantViolation, c.count, t.count)
	}
	return nil
}

type checker[K, V any] struct {
	cfg       Config[K]
	leafDepth int
	count     int
}

// checkNode validates the subtree at n. lower and upper, if non-nil, are
// exclusive bounds for every key in the subtree.
func (c *checker[K, V]) checkNode(n *Node[K, V], depth int, lower, upper *K) error {
	if n == nil {
		return fmt.Errorf("%w: nil node at depth %d", ErrInvariantViolation, depth)
	}
	nkeys := len(n.keys)
	if len(n.values) != nkeys {
		return fmt.Errorf("%w: %d keys but %d values at depth %d",
			ErrInvariantViolation, nkeys, len(n.values), depth)
	}
	if nkeys > c.cfg.maxKeys() {
		return fmt.Errorf("%w: node at depth %d overflows (%d > %d keys)",
			ErrInvariantViolation, depth, nkeys, c.cfg.maxKeys())
	}
	if depth > 0 && nkeys < c.cfg.minKeys() {
		return fmt.Errorf("%w: node at depth %d underflows (%d < %d keys)",
			ErrInvariantViolation, depth, nkeys, c.cfg.minKeys())
	}
	for i, key := range n.keys {
		if i > 0 && c.cfg.Compare(n.keys[i-1], key) >= 0 {
			return fmt.Errorf("%w: keys not increasing at depth %d: %v, %v",
				ErrInvariantViolation, depth, n.keys[i-1], key)
		}
		if lower != nil && c.cfg.Compare(key, *lower) <= 0 {
			return fmt.Errorf("%w: key %v not above separator %v", ErrInvariantViolation, key, *lower)
		}
		if upper != nil && c.cfg.Compare(key, *upper) >= 0 {
			return fmt.Errorf("%w: key %v not below separator %v", ErrInvariantViolation, key, *upper)
		}
	}
	c.count += nkeys
	if n.IsLeaf() {
		if c.leafDepth < 0 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return fmt.Errorf("%w: leaves at depths %d and %d", ErrInvariantViolation, c.leafDepth, depth)
		}
		return nil
	}
	if len(n.children) != nkeys+1 {
		return fmt.Errorf("%w: %d keys but %d children at depth %d",
			ErrInvariantViolation, nkeys, len(n.children), depth)
	}
	for i, child := range n.children {
		lo, hi := lower, upper
		if i > 0 {
			lo = &n.keys[i-1]
		}
		if i < nkeys {
			hi = &n.keys[i]
		}
		if err := c.checkNode(child, depth+1, lo, hi); err != nil {
			return err
		}
	}
	return nil
}
