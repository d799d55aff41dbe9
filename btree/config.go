package btree

import (
	"cmp"
	"fmt"
)

const (
	// MinMinDegree is the smallest minimum degree a B-tree may be configured with.
	MinMinDegree = 2
	// DefaultMinDegree is a reasonable minimum degree for small in-memory indexes.
	DefaultMinDegree = 3
)

// CompareFunc returns a negative number if a < b, zero if a == b and a
// positive number if a > b.
type CompareFunc[K any] func(a, b K) int

// Config configures a B-tree.
type Config[K any] struct {
	// MinDegree is the minimum degree t. Non-root nodes hold between t-1 and
	// 2t-1 keys. It is fixed for the lifetime of a tree.
	MinDegree int
	// Compare orders keys. It must implement a strict weak ordering.
	Compare CompareFunc[K]
}

// OrderedConfig returns a configuration using the natural ordering of K.
func OrderedConfig[K cmp.Ordered](minDegree int) Config[K] {
	return Config[K]{
		MinDegree: minDegree,
		Compare:   cmp.Compare[K],
	}
}

// maxKeys is the occupancy of a full node.
func (cfg Config[K]) maxKeys() int {
	return 2*cfg.MinDegree - 1
}

// minKeys is the lower occupancy bound for non-root nodes.
func (cfg Config[K]) minKeys() int {
	return cfg.MinDegree - 1
}

func (cfg Config[K]) validate() error {
	if cfg.MinDegree < MinMinDegree {
		return fmt.Errorf("%w: minimum degree must be at least %d, is %d",
			ErrInvalidConfig, MinMinDegree, cfg.MinDegree)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	return nil
}
