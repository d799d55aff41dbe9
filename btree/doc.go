/*
Package btree provides an in-memory ordered index, implemented as a classic
B-tree of minimum degree t.

The tree maps keys to values. Keys are kept in strictly increasing order,
either by their natural ordering (`New`) or by a client supplied comparison
(`NewWithConfig`). Every node except the root holds between t-1 and 2t-1
keys, all leaves live at the same depth, and a node exclusively owns its
children. There are no parent pointers: insertion splits full nodes on the
way down, deletion fills deficient nodes on the way down, so every mutation is
a single top-down pass.

Current status:
  - construction with validated configuration (`Config`, `ErrInvalidConfig`),
  - insert with pre-emptive split and root growth,
  - search, min/max and in-order iteration (`ForEach`, `AscendRange`, `Cursor`),
  - delete with predecessor/successor replacement, sibling borrowing,
    merging and root shrinking,
  - pre-order and level-order traversal for diagnostics,
  - a deterministic textual dump (`String`, `Dump`),
  - an invariant checker (`Check`) for tests.

A Tree is not safe for concurrent use. Callers sharing a tree between
goroutines have to serialize access themselves.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// T traces to a global core-tracer. If no core-tracer has been installed, a
// tracer writing errors to the standard logger is put in place.
func T() tracing.Trace {
	if gtrace.CoreTracer == nil {
		tracer := gologadapter.New()
		tracer.SetTraceLevel(tracing.LevelError)
		gtrace.CoreTracer = tracer
	}
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
