package btree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a deterministic, human-readable description of the tree to w.
//
// Every node gets one line, in pre-order. A line is indented by two blanks per
// level and lists the node's entries as "(key,value)", separated by commas:
//
//	(20,b)
//	  (10,a)
//	  (30,c),(40,d)
func (t *Tree[K, V]) Dump(w io.Writer) error {
	var err error
	t.Traverse(func(n *Node[K, V], depth int) {
		if err != nil {
			return
		}
		_, err = io.WriteString(w, formatNode(n, depth))
	})
	return err
}

// String returns the output of Dump as a string.
func (t *Tree[K, V]) String() string {
	var b strings.Builder
	_ = t.Dump(&b)
	return b.String()
}

func formatNode[K, V any](n *Node[K, V], depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	for i, key := range n.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "(%v,%v)", key, n.values[i])
	}
	b.WriteByte('\n')
	return b.String()
}
