package orderedindex

import (
	"cmp"
	"context"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/orderedindex/btree"
)

// Op is the kind of change an Event reports.
type Op int8

// Kinds of changes.
const (
	Inserted Op = iota // a new key has been added
	Updated            // the value of an existing key has been replaced
	Deleted            // a key has been removed
)

func (op Op) String() string {
	switch op {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Event describes one successful mutation of an Index.
type Event[K, V any] struct {
	Op     Op
	Key    K
	Value  V // new value, or the removed value for Deleted
	Old    V // previous value for Updated
	Len    int
	Height int
}

// Index owns a B-tree and serializes access to it. After every successful
// mutation it broadcasts an Event to its subscribers. Events are published
// while the mutation is still exclusive, so subscribers see them in mutation
// order.
//
// Subscribers have to drain their channels; a stalled subscriber will
// eventually block mutations.
type Index[K, V any] struct {
	mu     sync.Mutex
	tree   *btree.Tree[K, V]
	cast   *caster.Caster // broadcaster for change events
	closed bool
}

// New creates an index over a tree of minimum degree minDegree, ordering keys
// naturally. It fails with an error wrapping btree.ErrInvalidConfig for an
// invalid degree.
func New[K cmp.Ordered, V any](minDegree int) (*Index[K, V], error) {
	return NewWithConfig[K, V](btree.OrderedConfig[K](minDegree))
}

// NewWithConfig creates an index over a tree with the given configuration.
func NewWithConfig[K, V any](cfg btree.Config[K]) (*Index[K, V], error) {
	tree, err := btree.NewWithConfig[K, V](cfg)
	if err != nil {
		return nil, err
	}
	return &Index[K, V]{
		tree: tree,
		cast: caster.New(nil),
	}, nil
}

// Insert stores value for key and reports whether an existing value has been
// replaced.
func (idx *Index[K, V]) Insert(key K, value V) (replaced bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	old, replaced := idx.tree.Insert(key, value)
	op := Inserted
	if replaced {
		op = Updated
	}
	idx.publish(Event[K, V]{Op: op, Key: key, Value: value, Old: old})
	return replaced
}

// Delete removes key and reports whether it has been present. Deleting an
// absent key publishes nothing.
func (idx *Index[K, V]) Delete(key K) (removed bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	old, removed := idx.tree.Delete(key)
	if removed {
		idx.publish(Event[K, V]{Op: Deleted, Key: key, Value: old})
	}
	return removed
}

// Search returns the value for key.
func (idx *Index[K, V]) Search(key K) (V, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.tree.Search(key)
}

// Len returns the number of entries.
func (idx *Index[K, V]) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.tree.Len()
}

// Dump returns the textual dump of the underlying tree.
func (idx *Index[K, V]) Dump() string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.tree.String()
}

// View calls fn with exclusive read access to the underlying tree. fn must
// neither mutate the tree nor keep references to it or its nodes.
func (idx *Index[K, V]) View(fn func(tree *btree.Tree[K, V])) {
	if fn == nil {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	fn(idx.tree)
}

// Subscribe registers for change events. The returned channel buffers up to
// capacity events and is closed when ctx is done or the index is closed.
func (idx *Index[K, V]) Subscribe(ctx context.Context, capacity uint) (<-chan Event[K, V], error) {
	if ctx == nil {
		return nil, ErrIllegalArguments
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.closed {
		return nil, ErrIndexClosed
	}
	sub, ok := idx.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrIndexClosed
	}
	events := make(chan Event[K, V], capacity)
	go forward(ctx, sub, events)
	return events, nil
}

// forward passes events from a broadcaster subscription on to a typed channel
// until ctx is done or the broadcaster closes sub. After ctx is done, sub keeps
// being drained until the broadcaster drops it, otherwise a pending delivery
// would block every following mutation.
func forward[K, V any](ctx context.Context, sub chan interface{}, events chan<- Event[K, V]) {
	defer close(events)
	for {
		select {
		case m, ok := <-sub:
			if !ok {
				return
			}
			e, ok := m.(Event[K, V])
			if !ok {
				continue
			}
			select {
			case events <- e:
			case <-ctx.Done():
				go drain(sub)
				return
			}
		case <-ctx.Done():
			go drain(sub)
			return
		}
	}
}

func drain(sub chan interface{}) {
	for range sub {
	}
}

// Close stops broadcasting and closes all subscriber channels. The index
// remains usable; mutations after Close are applied but not published.
func (idx *Index[K, V]) Close() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.closed {
		return
	}
	idx.closed = true
	idx.cast.Close()
}

// publish expects idx.mu to be held.
func (idx *Index[K, V]) publish(e Event[K, V]) {
	if idx.closed {
		return
	}
	e.Len = idx.tree.Len()
	e.Height = idx.tree.Height()
	if !idx.cast.Pub(e) {
		T().Errorf("orderedindex: could not publish %s event", e.Op)
		return
	}
	T().Debugf("orderedindex: published %s of %v", e.Op, e.Key)
}
