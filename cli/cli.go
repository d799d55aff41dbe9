// Package cli implements an interactive, line oriented console for playing with
// an ordered index. Keys and values are strings.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"github.com/npillmayer/orderedindex"
	"github.com/npillmayer/orderedindex/btree"
	"github.com/npillmayer/orderedindex/formatter"
	"github.com/npillmayer/orderedindex/html"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return orderedindex.T()
}

// Index is the index type the console operates on.
type Index = orderedindex.Index[string, string]

// Cli reads commands line by line and applies them to an index, printing
// results and tree dumps to its output.
type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	index   *Index
	console *formatter.Console
	config  *formatter.Config
	errc    *color.Color // color for error messages
	promptc *color.Color // color for the prompt
	Quiet   bool         // suppress help and prompt, e.g. for scripts
}

// NewCli creates a console reading commands from s and writing to out.
// config controls the width of tree dumps; it may be nil.
func NewCli(s *bufio.Scanner, out io.Writer, index *Index, config *formatter.Config) *Cli {
	if config == nil {
		config = &formatter.Config{}
	}
	return &Cli{
		scanner: s,
		out:     out,
		index:   index,
		console: formatter.NewConsole(nil),
		config:  config,
		errc:    color.New(color.FgRed),
		promptc: color.New(color.FgCyan, color.Bold),
	}
}

// Start processes commands until input is exhausted or EXIT is entered.
func (c *Cli) Start() error {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return nil
		}
		c.printPrompt()
	}
	return c.scanner.Err()
}

const help = `
B-Tree CLI

Available Commands:
  SET <key> <val> Insert a key-value pair into the B-Tree
  DEL <key>       Remove a key-value pair from the B-Tree
  GET <key>       Retrieve the value for key from the B-Tree
  DUMP            Print the B-Tree, one node per line
  DOT             Print the B-Tree in Graphviz DOT format
  HTML            Print an HTML snapshot of the B-Tree
  CHECK           Verify the B-Tree's structural invariants
  STATS           Print size, height and minimum degree
  SEED <n>        Insert n random key-value pairs
  HELP            Show this text
  EXIT            Terminate this session
`

func (c *Cli) printHelp() {
	if !c.Quiet {
		fmt.Fprint(c.out, help)
	}
}

func (c *Cli) printPrompt() {
	if !c.Quiet {
		c.promptc.Fprint(c.out, "> ")
	}
}

func (c *Cli) printError(format string, args ...interface{}) {
	c.errc.Fprintf(c.out, format+"\n", args...)
}

// processInput returns false if the session should end.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	T().Debugf("cli: command %q with %d args", command, len(fields)-1)
	switch command {
	default:
		c.printError("Unknown command \"%s\"", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "dump":
		c.dump()
	case "dot":
		c.processDotCommand()
	case "html":
		c.processHTMLCommand()
	case "check":
		c.processCheckCommand()
	case "stats":
		c.processStatsCommand()
	case "seed":
		c.processSeedCommand(fields[1:])
	case "help":
		fmt.Fprint(c.out, help)
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		c.printError("Usage: SET <key> <value>")
		return
	}
	if c.index.Insert(args[0], args[1]) {
		fmt.Fprintf(c.out, "Updated %s.\n", args[0])
	}
	c.dump()
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		c.printError("Usage: DEL <key>")
		return
	}
	if !c.index.Delete(args[0]) {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	c.dump()
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		c.printError("Usage: GET <key>")
		return
	}
	val, ok := c.index.Search(args[0])
	if !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, val)
}

func (c *Cli) dump() {
	var err error
	c.index.View(func(tree *btree.Tree[string, string]) {
		err = formatter.Output(tree, c.out, c.config, c.console)
	})
	if err != nil {
		c.printError("Cannot print tree: %v", err)
	}
}

func (c *Cli) processDotCommand() {
	var err error
	c.index.View(func(tree *btree.Tree[string, string]) {
		err = orderedindex.Tree2Dot(tree, c.out)
	})
	if err != nil {
		c.printError("Cannot create DOT output: %v", err)
	}
}

func (c *Cli) processHTMLCommand() {
	var err error
	c.index.View(func(tree *btree.Tree[string, string]) {
		err = html.Render(tree, c.out)
	})
	if err != nil {
		c.printError("Cannot create HTML snapshot: %v", err)
		return
	}
	fmt.Fprintln(c.out)
}

func (c *Cli) processCheckCommand() {
	var err error
	c.index.View(func(tree *btree.Tree[string, string]) {
		err = tree.Check()
	})
	if err != nil {
		c.printError("%v", err)
		return
	}
	fmt.Fprintln(c.out, "OK")
}

func (c *Cli) processStatsCommand() {
	c.index.View(func(tree *btree.Tree[string, string]) {
		fmt.Fprintf(c.out, "keys=%d height=%d t=%d\n", tree.Len(), tree.Height(), tree.MinDegree())
	})
}

func (c *Cli) processSeedCommand(args []string) {
	if len(args) != 1 {
		c.printError("Usage: SEED <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		c.printError("Usage: SEED <n>, n must be a non-negative number")
		return
	}
	added := Seed(c.index, n)
	fmt.Fprintf(c.out, "Seeded %d records.\n", added)
}

// Seed inserts n records with random keys not yet present in index and returns
// the number of records added. It gives up after a bounded number of key
// collisions, so fewer than n records may be added.
func Seed(index *Index, n int) int {
	added := 0
	for attempts := 0; added < n && attempts < 10*n+10; attempts++ {
		k := faker.Word() + faker.Word()
		if _, found := index.Search(k); found {
			continue
		}
		index.Insert(k, faker.Word())
		added++
	}
	T().Infof("cli: seeded %d records", added)
	return added
}
