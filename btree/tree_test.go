package btree

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// redirectTracing routes tracing output to t and reinstalls the previous
// tracer when t finishes.
func redirectTracing(t *testing.T, level tracing.TraceLevel) {
	saved := gtrace.CoreTracer
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(level)
	t.Cleanup(func() {
		teardown()
		gtrace.CoreTracer = saved
	})
}

func makeIntTree(t *testing.T, minDegree int, keys ...int) *Tree[int, int] {
	t.Helper()
	tree, err := New[int, int](minDegree)
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	for _, k := range keys {
		tree.Insert(k, k)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invalid after setup: %v", err)
	}
	return tree
}

// shape returns the keys of the root and of each of its children.
func shape[K, V any](tree *Tree[K, V]) (root []K, children [][]K) {
	root = tree.Root().Keys()
	for _, child := range tree.Root().children {
		children = append(children, child.Keys())
	}
	return
}

func TestNewRejectsInvalidDegree(t *testing.T) {
	redirectTracing(t, tracing.LevelDebug)
	//
	for _, degree := range []int{-1, 0, 1} {
		tree, err := New[int, string](degree)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("New(%d): expected ErrInvalidConfig, got %v", degree, err)
		}
		if tree != nil {
			t.Errorf("New(%d): expected nil tree on error", degree)
		}
	}
}

func TestNewWithConfigRequiresCompare(t *testing.T) {
	_, err := NewWithConfig[string, int](Config[string]{MinDegree: 3})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for missing compare, got %v", err)
	}
}

func TestNewCreatesEmptyLeafRoot(t *testing.T) {
	tree, err := New[int, string](2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Root().IsLeaf() || tree.Root().Len() != 0 {
		t.Fatalf("expected empty leaf root, have %d keys", tree.Root().Len())
	}
	if tree.Len() != 0 || tree.Height() != 1 || !tree.IsEmpty() {
		t.Fatalf("unexpected empty tree state len=%d height=%d", tree.Len(), tree.Height())
	}
	if tree.MinDegree() != 2 {
		t.Fatalf("expected min degree 2, have %d", tree.MinDegree())
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("expected empty tree to be valid, got %v", err)
	}
}

func TestEmptyTreeSearchAndDelete(t *testing.T) {
	tree := makeIntTree(t, 3)
	if _, ok := tree.Search(42); ok {
		t.Errorf("search on empty tree reported a hit")
	}
	if _, removed := tree.Delete(42); removed {
		t.Errorf("delete on empty tree reported a removal")
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertAndSearch(t *testing.T) {
	tree, _ := New[int, string](3)
	tree.Insert(10, "ten")
	tree.Insert(20, "twenty")
	tree.Insert(5, "five")
	t.Logf("tree:\n%s", tree)
	for k, want := range map[int]string{10: "ten", 20: "twenty", 5: "five"} {
		if v, ok := tree.Search(k); !ok || v != want {
			t.Errorf("search(%d) = %q/%v, want %q", k, v, ok, want)
		}
	}
	if _, ok := tree.Search(30); ok {
		t.Errorf("search(30) should not find anything")
	}
	if !tree.Contains(5) || tree.Contains(6) {
		t.Errorf("Contains reports wrong membership")
	}
}

func TestInsertOverwritesValue(t *testing.T) {
	tree, _ := New[int, string](3)
	tree.Insert(10, "ten")
	old, replaced := tree.Insert(10, "TEN")
	if !replaced || old != "ten" {
		t.Errorf("expected replacement of %q, got %q/%v", "ten", old, replaced)
	}
	if v, _ := tree.Search(10); v != "TEN" {
		t.Errorf("expected updated value TEN, got %q", v)
	}
	if tree.Len() != 1 {
		t.Errorf("expected exactly one entry, have %d", tree.Len())
	}
}

func TestOverwriteOfFullRootKeepsHeight(t *testing.T) {
	tree := makeIntTree(t, 2, 10, 20, 30) // root is full now
	if tree.Height() != 1 {
		t.Fatalf("expected height 1, have %d", tree.Height())
	}
	tree.Insert(20, 200)
	if tree.Height() != 1 || tree.Len() != 3 {
		t.Fatalf("overwrite changed structure: height=%d len=%d", tree.Height(), tree.Len())
	}
	if root, _ := shape(tree); !slices.Equal(root, []int{10, 20, 30}) {
		t.Fatalf("root keys changed to %v", root)
	}
	if v, _ := tree.Search(20); v != 200 {
		t.Fatalf("expected 200, have %d", v)
	}
}

func TestRootSplit(t *testing.T) {
	redirectTracing(t, tracing.LevelDebug)
	//
	tree := makeIntTree(t, 2, 10, 20, 30)
	root, children := shape(tree)
	if !slices.Equal(root, []int{10, 20, 30}) || len(children) != 0 {
		t.Fatalf("expected leaf root [10 20 30], have %v / %v", root, children)
	}
	tree.Insert(40, 40)
	t.Logf("tree:\n%s", tree)
	root, children = shape(tree)
	if !slices.Equal(root, []int{20}) {
		t.Fatalf("expected root [20], have %v", root)
	}
	if len(children) != 2 || !slices.Equal(children[0], []int{10}) || !slices.Equal(children[1], []int{30, 40}) {
		t.Fatalf("expected children [10] [30 40], have %v", children)
	}
	if tree.Height() != 2 {
		t.Fatalf("expected height 2, have %d", tree.Height())
	}
}

func TestRootSplitWithManyKeys(t *testing.T) {
	tree := makeIntTree(t, 2, 10, 20, 30, 40, 50, 60, 70, 80, 90)
	t.Logf("tree:\n%s", tree)
	for k := 10; k <= 90; k += 10 {
		if v, ok := tree.Search(k); !ok || v != k {
			t.Errorf("search(%d) = %d/%v", k, v, ok)
		}
	}
}

func TestInsertStepByStep(t *testing.T) {
	steps := []struct {
		keys     []int
		root     []int
		children [][]int
	}{
		{[]int{10}, []int{10}, nil},
		{[]int{10, 20}, []int{10, 20}, nil},
		{[]int{10, 20, 5}, []int{5, 10, 20}, nil},
		{[]int{10, 20, 5, 6}, []int{5, 6, 10, 20}, nil},
		{[]int{10, 20, 5, 6, 12}, []int{5, 6, 10, 12, 20}, nil},
		{[]int{10, 20, 5, 6, 12, 30}, []int{10}, [][]int{{5, 6}, {12, 20, 30}}},
		{[]int{10, 20, 5, 6, 12, 30, 7}, []int{10}, [][]int{{5, 6, 7}, {12, 20, 30}}},
		{[]int{10, 20, 5, 6, 12, 30, 7, 17}, []int{10}, [][]int{{5, 6, 7}, {12, 17, 20, 30}}},
	}
	for _, step := range steps {
		tree := makeIntTree(t, 3, step.keys...)
		root, children := shape(tree)
		if !slices.Equal(root, step.root) {
			t.Errorf("insert %v: root = %v, want %v", step.keys, root, step.root)
		}
		if len(children) != len(step.children) {
			t.Errorf("insert %v: %d children, want %d", step.keys, len(children), len(step.children))
			continue
		}
		for i := range children {
			if !slices.Equal(children[i], step.children[i]) {
				t.Errorf("insert %v: child %d = %v, want %v", step.keys, i, children[i], step.children[i])
			}
		}
	}
}

func TestHeightGrowsByOneLevel(t *testing.T) {
	tree := makeIntTree(t, 3)
	for k := 1; k <= 18; k++ {
		before := tree.Height()
		tree.Insert(k, k)
		if h := tree.Height(); h < before || h > before+1 {
			t.Fatalf("height jumped from %d to %d", before, h)
		}
	}
	if tree.Height() != 2 {
		t.Fatalf("18 keys with t=3 should fit into 2 levels, have %d", tree.Height())
	}
	tree.Insert(19, 19)
	if tree.Height() != 3 {
		t.Fatalf("19th key should grow the tree to 3 levels, have %d", tree.Height())
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteEvenKeys(t *testing.T) {
	tree, _ := New[int, string](3)
	for k := 1; k <= 100; k++ {
		tree.Insert(k, "value-"+strconv.Itoa(k))
	}
	for _, k := range []int{1, 25, 50, 75, 100} {
		if v, _ := tree.Search(k); v != "value-"+strconv.Itoa(k) {
			t.Fatalf("search(%d) = %q", k, v)
		}
	}
	for k := 2; k <= 100; k += 2 {
		if _, removed := tree.Delete(k); !removed {
			t.Fatalf("delete(%d) did not remove", k)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("after delete(%d): %v", k, err)
		}
	}
	for k := 1; k <= 100; k++ {
		v, ok := tree.Search(k)
		if k%2 == 0 && ok {
			t.Errorf("even key %d still present", k)
		} else if k%2 == 1 && (!ok || v != "value-"+strconv.Itoa(k)) {
			t.Errorf("odd key %d lost: %q/%v", k, v, ok)
		}
	}
	if tree.Len() != 50 {
		t.Errorf("expected 50 keys left, have %d", tree.Len())
	}
}

func TestDeleteReducesHeight(t *testing.T) {
	redirectTracing(t, tracing.LevelDebug)
	//
	tree := makeIntTree(t, 2, 10, 20, 30, 40, 50)
	t.Logf("tree before deletions:\n%s", tree)
	for _, k := range []int{10, 20, 30} {
		tree.Delete(k)
		if err := tree.Check(); err != nil {
			t.Fatalf("after delete(%d): %v", k, err)
		}
	}
	t.Logf("tree after deletions:\n%s", tree)
	root, children := shape(tree)
	if !slices.Equal(root, []int{40, 50}) || len(children) != 0 {
		t.Fatalf("expected leaf root [40 50], have %v / %v", root, children)
	}
	if tree.Height() != 1 {
		t.Fatalf("expected height 1, have %d", tree.Height())
	}
}

func TestDeleteKeepsRestOfTree(t *testing.T) {
	tree := makeIntTree(t, 3, 50, 30, 70, 10, 40, 60, 80, 5, 20, 35, 45, 55, 65, 75, 85)
	tree.Delete(30)
	t.Logf("tree after deleting 30:\n%s", tree)
	if _, ok := tree.Search(30); ok {
		t.Errorf("30 still present")
	}
	if v, ok := tree.Search(35); !ok || v != 35 {
		t.Errorf("search(35) = %d/%v", v, ok)
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteInternalKeyUsesPredecessorThenSuccessor(t *testing.T) {
	// root [40 60] over [5 10 20 30 35] [45 50 55] [65 70 75 80 85]
	tree := makeIntTree(t, 3, 50, 30, 70, 10, 40, 60, 80, 5, 20, 35, 45, 55, 65, 75, 85)
	if root, _ := shape(tree); !slices.Equal(root, []int{40, 60}) {
		t.Fatalf("unexpected setup, root = %v", root)
	}
	tree.Delete(40) // left child can spare a key: predecessor 35 moves up
	if root, _ := shape(tree); !slices.Equal(root, []int{35, 60}) {
		t.Fatalf("expected predecessor replacement, root = %v", root)
	}
	tree.Delete(55)
	tree.Delete(60) // left child is minimal now: successor 65 moves up
	root, children := shape(tree)
	if !slices.Equal(root, []int{35, 65}) {
		t.Fatalf("expected successor replacement, root = %v", root)
	}
	if !slices.Equal(children[2], []int{70, 75, 80, 85}) {
		t.Fatalf("expected right child [70 75 80 85], have %v", children[2])
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteInternalKeyMergesChildren(t *testing.T) {
	tree := makeIntTree(t, 2, 10, 20, 30, 40)
	tree.Delete(40) // [20] over [10] [30]
	tree.Delete(20)
	root, children := shape(tree)
	if !slices.Equal(root, []int{10, 30}) || len(children) != 0 {
		t.Fatalf("expected merged leaf root [10 30], have %v / %v", root, children)
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteBorrowsFromLeftSibling(t *testing.T) {
	// [20 30] over [5 10 15] [25] [35 40]
	tree := makeIntTree(t, 2, 10, 20, 30, 5, 15, 25, 35, 40)
	tree.Delete(25)
	root, children := shape(tree)
	if !slices.Equal(root, []int{15, 30}) {
		t.Fatalf("expected root [15 30], have %v", root)
	}
	want := [][]int{{5, 10}, {20}, {35, 40}}
	for i := range want {
		if !slices.Equal(children[i], want[i]) {
			t.Fatalf("child %d = %v, want %v", i, children[i], want[i])
		}
	}
}

func TestDeleteBorrowsFromRightSibling(t *testing.T) {
	tree := makeIntTree(t, 2, 10, 20, 30, 40) // [20] over [10] [30 40]
	tree.Delete(10)
	root, children := shape(tree)
	if !slices.Equal(root, []int{30}) {
		t.Fatalf("expected root [30], have %v", root)
	}
	if !slices.Equal(children[0], []int{20}) || !slices.Equal(children[1], []int{40}) {
		t.Fatalf("expected children [20] [40], have %v", children)
	}
}

func TestDeleteMergesWithLeftSibling(t *testing.T) {
	// [20 30] over [5 10 15] [25] [35]: the rightmost child has no right sibling
	tree := makeIntTree(t, 2, 10, 20, 30, 5, 15, 25, 35, 40)
	tree.Delete(40)
	tree.Delete(35)
	root, children := shape(tree)
	if !slices.Equal(root, []int{20}) {
		t.Fatalf("expected root [20], have %v", root)
	}
	if !slices.Equal(children[1], []int{25, 30}) {
		t.Fatalf("expected merged child [25 30], have %v", children[1])
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteComplexSequence(t *testing.T) {
	tree, _ := New[int, string](2)
	for _, k := range []int{50, 30, 70, 10, 40, 60, 80, 5, 15, 35, 45, 55, 65, 75, 85} {
		tree.Insert(k, strconv.Itoa(k))
	}
	for _, k := range []int{5, 30, 35, 40, 45} {
		old, removed := tree.Delete(k)
		if !removed || old != strconv.Itoa(k) {
			t.Fatalf("delete(%d) = %q/%v", k, old, removed)
		}
		if _, ok := tree.Search(k); ok {
			t.Fatalf("%d still present after delete", k)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("after delete(%d): %v", k, err)
		}
	}
	for _, k := range []int{10, 15, 50, 55, 60, 65, 70, 75, 80, 85} {
		if v, _ := tree.Search(k); v != strconv.Itoa(k) {
			t.Errorf("search(%d) = %q", k, v)
		}
	}
}

func TestDeleteAbsentKeyLeavesTreeUntouched(t *testing.T) {
	tree := makeIntTree(t, 2, 10, 20, 30, 40, 50, 60, 70)
	before := tree.String()
	if _, removed := tree.Delete(99); removed {
		t.Fatalf("delete of absent key reported removal")
	}
	if after := tree.String(); after != before {
		t.Fatalf("tree changed by absent delete:\n%s\nvs.\n%s", before, after)
	}
	for _, k := range []int{10, 20, 30} {
		if !tree.Contains(k) {
			t.Errorf("lost key %d", k)
		}
	}
}

func TestDeleteAllThenReuse(t *testing.T) {
	tree := makeIntTree(t, 2, 3, 1, 4, 1, 5, 9, 2, 6)
	for _, k := range tree.Keys() {
		tree.Delete(k)
	}
	if !tree.IsEmpty() || tree.Height() != 1 || tree.Root().Len() != 0 {
		t.Fatalf("expected empty leaf root, have len=%d height=%d", tree.Len(), tree.Height())
	}
	tree.Insert(7, 7)
	if v, ok := tree.Search(7); !ok || v != 7 {
		t.Fatalf("tree not reusable after emptying")
	}
}

func TestClear(t *testing.T) {
	tree := makeIntTree(t, 2, 1, 2, 3, 4, 5, 6, 7, 8)
	tree.Clear()
	if !tree.IsEmpty() || tree.Height() != 1 {
		t.Fatalf("clear did not empty the tree")
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestCustomCompare(t *testing.T) {
	desc := Config[string]{
		MinDegree: 2,
		Compare: func(a, b string) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			}
			return 0
		},
	}
	tree, err := NewWithConfig[string, int](desc)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range []string{"b", "d", "a", "c", "e"} {
		tree.Insert(s, i)
	}
	if keys := tree.Keys(); !slices.Equal(keys, []string{"e", "d", "c", "b", "a"}) {
		t.Fatalf("expected descending keys, have %v", keys)
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestTracerIsReinstalledAfterTest(t *testing.T) {
	before := gtrace.CoreTracer
	t.Run("traced", func(t *testing.T) {
		redirectTracing(t, tracing.LevelDebug)
		makeIntTree(t, 2, 1, 2, 3, 4)
	})
	if gtrace.CoreTracer != before {
		t.Fatalf("tracer of a finished test is still installed")
	}
	// splits after the subtest has finished must not trace into it
	tree := makeIntTree(t, 2, 1, 2, 3, 4, 5, 6, 7, 8)
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}
