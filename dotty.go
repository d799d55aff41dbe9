package orderedindex

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/orderedindex/btree"
)

type nodeids[K, V any] struct {
	idTable map[*btree.Node[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[*btree.Node[K, V]]int),
		max:     1,
	}
}

func (ids nodeids[K, V]) find(node *btree.Node[K, V]) int {
	return ids.idTable[node]
}

func (ids *nodeids[K, V]) alloc(node *btree.Node[K, V]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Tree2Dot outputs the structure of a B-tree in Graphviz DOT format
// (for debugging purposes). Nodes are drawn as records with one field per
// key, and are shaded by depth.
func Tree2Dot[K, V any](tree *btree.Tree[K, V], w io.Writer) error {
	if tree == nil || w == nil {
		return ErrIllegalArguments
	}
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12,shape=record];\n")
	ids := newtable[K, V]()
	parents := make([]int, 0, tree.Height()) // parents[d] is the last node visited at depth d
	nodelist, edgelist := "", ""
	tree.Traverse(func(node *btree.Node[K, V], depth int) {
		ID := ids.alloc(node)
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\"%s];\n", ID, dotLabel(node), nodeDotStyles(node, depth))
		if depth > 0 {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", parents[depth-1], ID)
		}
		parents = append(parents[:depth], ID)
	})
	b.WriteString(nodelist)
	b.WriteString(edgelist)
	b.WriteString("}\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		T().Errorf("tree DOT: %s", err.Error())
		return err
	}
	return nil
}

func dotLabel[K, V any](node *btree.Node[K, V]) string {
	if node.Len() == 0 {
		return "∅"
	}
	fields := make([]string, node.Len())
	for i := range fields {
		k, _ := node.Entry(i)
		fields[i] = dotEscape(fmt.Sprint(k))
	}
	return strings.Join(fields, "|")
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `|`, `\|`,
	`{`, `\{`, `}`, `\}`, `<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotEscaper.Replace(s)
}

func nodeDotStyles[K, V any](node *btree.Node[K, V], depth int) string {
	s := ",style=filled"
	if node.IsLeaf() {
		s += ",color=\"#4499FF\""
	} else {
		s += ",color=black"
	}
	s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[min(depth, len(hexcolors)-1)])
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
