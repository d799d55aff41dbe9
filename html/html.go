/*
Package html renders snapshots of a B-tree as HTML fragments and reads them
back.

A snapshot is a `<div class="btree">` holding nested lists which mirror the
node hierarchy. Every node becomes a list item, carrying its depth in a
`data-depth` attribute and its keys, joined by "|", as a label:

	<div class="btree">
	  <ul><li data-depth="0"><span class="keys">20</span>
	    <ul><li data-depth="1"><span class="keys">10</span></li>
	        <li data-depth="1"><span class="keys">30|40</span></li></ul>
	  </li></ul>
	</div>

Snapshots are meant for embedding a tree visualization into web pages and for
testing tree shapes by comparing them to stored fragments.
*/
package html

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/orderedindex/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	if gtrace.CoreTracer == nil {
		gtrace.CoreTracer = gologadapter.New()
	}
	return gtrace.CoreTracer
}

// ErrNoSnapshot is returned by NodeLabels if the input does not contain a tree
// snapshot.
var ErrNoSnapshot = errors.New("html: no tree snapshot found")

// ErrIllegalArguments flags nil parameters.
var ErrIllegalArguments = errors.New("html: illegal arguments")

// Class is the CSS class of the snapshot's enclosing div.
const Class = "btree"

// LabelSeparator separates the keys within a node label.
const LabelSeparator = "|"

// Render writes an HTML snapshot of tree to w.
func Render[K, V any](tree *btree.Tree[K, V], w io.Writer) error {
	if tree == nil || w == nil {
		return ErrIllegalArguments
	}
	div := element(atom.Div, html.Attribute{Key: "class", Val: Class})
	lists := make([]*html.Node, 0, tree.Height()) // lists[d] takes the items of depth d
	var items []*html.Node                          // items[d] is the last item at depth d
	tree.Traverse(func(node *btree.Node[K, V], depth int) {
		li := element(atom.Li, html.Attribute{Key: "data-depth", Val: strconv.Itoa(depth)})
		span := element(atom.Span, html.Attribute{Key: "class", Val: "keys"})
		span.AppendChild(&html.Node{Type: html.TextNode, Data: Label(node)})
		li.AppendChild(span)
		if depth == 0 {
			ul := element(atom.Ul)
			div.AppendChild(ul)
			lists = append(lists[:0], ul)
		} else if len(lists) <= depth || lists[depth].Parent != items[depth-1] {
			ul := element(atom.Ul)
			items[depth-1].AppendChild(ul)
			lists = append(lists[:depth], ul)
		}
		lists[depth].AppendChild(li)
		items = append(items[:depth], li)
	})
	if err := html.Render(w, div); err != nil {
		T().Errorf("html snapshot: %s", err.Error())
		return err
	}
	return nil
}

// Label returns the keys of node, formatted with fmt and joined by
// LabelSeparator.
func Label[K, V any](node *btree.Node[K, V]) string {
	keys := make([]string, node.Len())
	for i := range keys {
		k, _ := node.Entry(i)
		keys[i] = fmt.Sprint(k)
	}
	return strings.Join(keys, LabelSeparator)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

// NodeLabels parses a snapshot created by Render and returns the node labels
// grouped by depth, top to bottom and left to right within a level. Markup
// surrounding the snapshot is ignored; if more than one snapshot is present,
// the first one is used.
func NodeLabels(r io.Reader) ([][]string, error) {
	if r == nil {
		return nil, ErrIllegalArguments
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	div := findSnapshot(doc)
	if div == nil {
		return nil, ErrNoSnapshot
	}
	var levels [][]string
	var collect func(n *html.Node) error
	collect = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.DataAtom == atom.Li {
			depth, err := strconv.Atoi(attr(n, "data-depth"))
			if err != nil || depth < 0 || depth > len(levels) {
				return fmt.Errorf("%w: bad depth %q", ErrNoSnapshot, attr(n, "data-depth"))
			}
			if depth == len(levels) {
				levels = append(levels, nil)
			}
			levels[depth] = append(levels[depth], itemLabel(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := collect(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(div); err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: snapshot is empty", ErrNoSnapshot)
	}
	return levels, nil
}

func findSnapshot(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Div {
		for _, class := range strings.Fields(attr(n, "class")) {
			if class == Class {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if div := findSnapshot(c); div != nil {
			return div
		}
	}
	return nil
}

// itemLabel returns the text of the first span of a list item.
func itemLabel(li *html.Node) string {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Span {
			var b strings.Builder
			for t := c.FirstChild; t != nil; t = t.NextSibling {
				if t.Type == html.TextNode {
					b.WriteString(t.Data)
				}
			}
			return b.String()
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
