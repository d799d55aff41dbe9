package btree

// Min returns the smallest key and its value. ok is false for an empty tree.
func (t *Tree[K, V]) Min() (key K, value V, ok bool) {
	if t.IsEmpty() {
		return key, value, false
	}
	key, value = t.root.leftmost()
	return key, value, true
}

// Max returns the greatest key and its value. ok is false for an empty tree.
func (t *Tree[K, V]) Max() (key K, value V, ok bool) {
	if t.IsEmpty() {
		return key, value, false
	}
	key, value = t.root.rightmost()
	return key, value, true
}

// Keys returns all keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.Len())
	t.ForEach(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
