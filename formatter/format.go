package formatter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/orderedindex/btree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// ErrIllegalArguments flags nil parameters.
var ErrIllegalArguments = errors.New("formatter: illegal arguments")

// Ellipsis marks lines which have been cut off.
const Ellipsis = "…"

// Indent is prepended to a node's line once per level of depth.
const Indent = "  "

// Config represents a set of configuration parameters for formatting.
type Config struct {
	LineWidth int            // maximum line width in cells; 0 or less means unlimited
	Context   *uax11.Context // context for measuring character widths
}

// Format is an interface for formatting drivers, given an io.Writer
type Format interface {
	Preamble(io.Writer)
	Postamble(io.Writer)
	Node(text string, depth int, w io.Writer) // output the (already cut) text for a node
	Newline(io.Writer)
}

var setupGraphemes sync.Once

// Output formats tree using a given formatter.
//
// Neither of the arguments may be nil. However, it is safe to have config.Context
// set to nil. In this case, uax11.LatinContext is used.
func Output[K, V any](tree *btree.Tree[K, V], out io.Writer, config *Config, format Format) error {
	//
	if tree == nil || out == nil || config == nil || format == nil {
		return ErrIllegalArguments
	} else if config.Context == nil {
		config.Context = uax11.LatinContext
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	ew := &errWriter{w: out}
	format.Preamble(ew)
	tree.Traverse(func(node *btree.Node[K, V], depth int) {
		line := strings.Repeat(Indent, depth) + nodeText(node)
		cut := Truncate(line, config.LineWidth, config.Context)
		if len(cut) < len(line) {
			T().Debugf("formatter: cut node line at depth %d to %d cells", depth, config.LineWidth)
		}
		format.Node(cut, depth, ew)
		format.Newline(ew)
	})
	format.Postamble(ew)
	if ew.err != nil {
		T().Errorf("formatter: %s", ew.err.Error())
	}
	return ew.err
}

// Print outputs a tree to stdout.
//
// If parameter config is nil,
// a heuristic will create a config from the current terminal's properties (if
// stdout is interactive). Config.Context will also be created based on heuristics
// from the user environment.
func Print[K, V any](tree *btree.Tree[K, V], config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Output(tree, os.Stdout, config, NewConsole(nil))
}

func nodeText[K, V any](node *btree.Node[K, V]) string {
	var b strings.Builder
	for i := range node.Len() {
		if i > 0 {
			b.WriteByte(',')
		}
		k, v := node.Entry(i)
		fmt.Fprintf(&b, "(%v,%v)", k, v)
	}
	return b.String()
}

// Width returns the number of terminal cells s occupies.
func Width(s string, context *uax11.Context) int {
	if s == "" {
		return 0
	}
	if context == nil {
		context = uax11.LatinContext
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	return uax11.StringWidth(grapheme.StringFromString(s), context)
}

// Truncate cuts s to at most width cells, ending it in Ellipsis if anything
// has been cut. A width of 0 or less leaves s untouched. Cuts never separate
// a character from following combining marks.
func Truncate(s string, width int, context *uax11.Context) string {
	if width <= 0 || Width(s, context) <= width {
		return s
	}
	room := width - Width(Ellipsis, context)
	if room < 0 {
		return ""
	}
	cut := 0
	for i, r := range s {
		if isMark(r) {
			continue
		}
		if Width(s[:i], context) > room {
			break
		}
		cut = i
	}
	return s[:cut] + Ellipsis
}

func isMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Me) || r == '\u200d'
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
