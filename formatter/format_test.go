package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/orderedindex/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/uax11"
)

func plainColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestOutputPlain(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	plainColors(t)
	//
	tree, _ := btree.New[int, string](2)
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(k, "v")
	}
	var b strings.Builder
	config := &Config{LineWidth: 0, Context: uax11.LatinContext}
	console := NewConsole(nil)
	if err := Output(tree, &b, config, console); err != nil {
		t.Fatal(err)
	}
	want := "(20,v)\n  (10,v)\n  (30,v),(40,v)\n"
	if b.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", b.String(), want)
	}
	if console.Lines() != 3 {
		t.Errorf("console counted %d lines, want 3", console.Lines())
	}
}

func TestOutputMatchesDumpWhenUnlimited(t *testing.T) {
	plainColors(t)
	tree, _ := btree.New[int, int](3)
	for k := range 100 {
		tree.Insert(k, k*2)
	}
	var b strings.Builder
	if err := Output(tree, &b, &Config{}, NewConsole(nil)); err != nil {
		t.Fatal(err)
	}
	if b.String() != tree.String() {
		t.Errorf("console output differs from dump")
	}
}

func TestOutputColorsByDepth(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()
	//
	tree, _ := btree.New[int, int](2)
	for _, k := range []int{1, 2, 3, 4} {
		tree.Insert(k, k)
	}
	palette := []*color.Color{color.New(color.FgRed), color.New(color.FgGreen)}
	var b strings.Builder
	if err := Output(tree, &b, &Config{}, NewConsole(palette)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, have %d: %q", len(lines), b.String())
	}
	if !strings.HasPrefix(lines[0], "\x1b[31m") {
		t.Errorf("root not printed in red: %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  \x1b[32m") {
			t.Errorf("child not indented and printed in green: %q", line)
		}
	}
}

func TestOutputRespectsLineWidth(t *testing.T) {
	plainColors(t)
	tree, _ := btree.New[string, string](4)
	for _, k := range []string{"alpha", "beta", "gamma", "delta", "日本語のキー", "épsilon", "zeta"} {
		tree.Insert(k, strings.ToUpper(k))
	}
	for _, width := range []int{5, 12, 20, 40} {
		var b strings.Builder
		config := &Config{LineWidth: width, Context: uax11.LatinContext}
		if err := Output(tree, &b, config, NewConsole(nil)); err != nil {
			t.Fatal(err)
		}
		for _, line := range strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n") {
			if w := Width(line, uax11.LatinContext); w > width {
				t.Errorf("line %q occupies %d cells, limit is %d", line, w, width)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	ctx := uax11.LatinContext
	if s := Truncate("hello", 5, ctx); s != "hello" {
		t.Errorf("fitting string cut: %q", s)
	}
	if s := Truncate("hello world", 0, ctx); s != "hello world" {
		t.Errorf("unlimited width cut: %q", s)
	}
	if s := Truncate("hello world", 6, ctx); s != "hello"+Ellipsis {
		t.Errorf("Truncate = %q", s)
	}
	wide := "日本語日本語日本語"
	cut := Truncate(wide, 10, ctx)
	if Width(cut, ctx) > 10 || !strings.HasSuffix(cut, Ellipsis) {
		t.Errorf("wide string not cut to 10 cells: %q", cut)
	}
	if len([]rune(cut)) >= 10 {
		t.Errorf("wide characters should count double, kept %d runes", len([]rune(cut)))
	}
}

func TestTruncateKeepsCombiningMarks(t *testing.T) {
	s := strings.Repeat("e\u0301", 6) // decomposed accented e's
	cut := Truncate(s, 4, uax11.LatinContext)
	if strings.HasSuffix(strings.TrimSuffix(cut, Ellipsis), "e") {
		t.Errorf("cut separated a combining mark: %q", cut)
	}
}

func TestLineWidthHeuristic(t *testing.T) {
	cases := map[int]int{200: 190, 66: 56, 50: 45, 20: 20, 5: 10}
	for term, want := range cases {
		if got := lineWidthFor(term); got != want {
			t.Errorf("lineWidthFor(%d) = %d, want %d", term, got, want)
		}
	}
	if c := ConfigFromTerminal(); c.LineWidth < 10 {
		t.Errorf("config from terminal has line width %d", c.LineWidth)
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestOutputErrors(t *testing.T) {
	plainColors(t)
	tree, _ := btree.New[int, int](2)
	tree.Insert(1, 1)
	if err := Output(tree, failingWriter{}, &Config{}, NewConsole(nil)); !errors.Is(err, errWrite) {
		t.Errorf("expected write error, got %v", err)
	}
	if err := Output[int, int](nil, &strings.Builder{}, &Config{}, NewConsole(nil)); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments, got %v", err)
	}
}
