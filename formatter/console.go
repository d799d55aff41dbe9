package formatter

import (
	"io"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Console is a type for outputting trees to a console with a fixed width font.
// Every level of the tree is printed in a color of its own.
type Console struct {
	palette []*color.Color
	lines   int // number of lines already printed
}

// NewConsole creates a new formatter for consoles with a fixed width font.
//
// palette holds the colors used for nodes, indexed by depth. Nodes deeper than
// the palette is long will cycle through the palette again. If palette is
// empty, a default palette is used.
//
// Coloring is subject to the global color.NoColor switch of package
// github.com/fatih/color, which is set if stdout is not a terminal.
func NewConsole(palette []*color.Color) *Console {
	if len(palette) == 0 {
		palette = makeDefaultPalette()
	}
	return &Console{palette: palette}
}

func makeDefaultPalette() []*color.Color {
	return []*color.Color{
		color.New(color.FgBlue, color.Bold),
		color.New(color.FgGreen),
		color.New(color.FgYellow),
		color.New(color.FgMagenta),
		color.New(color.FgCyan),
	}
}

// Color returns the color for nodes at depth.
func (c *Console) Color(depth int) *color.Color {
	if depth < 0 {
		depth = 0
	}
	return c.palette[depth%len(c.palette)]
}

// Lines returns the number of node lines printed since the last Preamble.
func (c *Console) Lines() int {
	return c.lines
}

// Preamble is called by the output driver before a tree will be formatted.
// (Part of interface Format)
func (c *Console) Preamble(w io.Writer) {
	c.lines = 0
}

// Postamble will be called after a tree has been formatted.
// (Part of interface Format)
func (c *Console) Postamble(w io.Writer) {}

// Node outputs the text for a node, colored by depth. Indentation is not
// colored.
// (Part of interface Format)
func (c *Console) Node(text string, depth int, w io.Writer) {
	indent := 0
	for indent < len(text) && text[indent] == ' ' {
		indent++
	}
	io.WriteString(w, text[:indent])
	c.Color(depth).Fprint(w, text[indent:])
	c.lines++
}

// Newline will be called at the end of every node.
// (Part of interface Format)
func (c *Console) Newline(w io.Writer) {
	io.WriteString(w, "\n")
}

// --- Config for terminals --------------------------------------------------

// DefaultLineWidth is used if no terminal is present.
const DefaultLineWidth = 65

// ConfigFromTerminal is a simple helper for creating a formatting Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{LineWidth: DefaultLineWidth}
	if term.IsTerminal(0) {
		if w, _, err := term.GetSize(0); err == nil {
			config.LineWidth = lineWidthFor(w)
		}
	}
	T().Infof("formatter: setting line length to %d en", config.LineWidth)
	return config
}

func lineWidthFor(termWidth int) int {
	switch {
	case termWidth > 65:
		return termWidth - 10
	case termWidth > 30:
		return termWidth - 5
	case termWidth > 10:
		return termWidth
	}
	return 10
}
