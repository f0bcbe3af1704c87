package statetree

import (
	"encoding/json"
	"testing"
)

type counterState struct {
	N     int    `json:"n"`
	Label string `json:"label"`
}

func (counterState) StateKind() string { return "counter" }

type otherState struct {
	Text string `json:"text"`
}

func (otherState) StateKind() string { return "other" }

func mustEncode(t *testing.T, v Value) Node {
	t.Helper()
	n, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode(%T): %v", v, err)
	}
	return n
}

func TestCursor_PickBuildsChildPaths(t *testing.T) {
	t.Parallel()

	root := New().Cursor()
	if got := root.Path(); len(got) != 0 {
		t.Fatalf("root path = %v; want empty", got)
	}

	list := root.Pick("todolist")
	a := list.Pick("a")
	b := list.Pick("b")
	if got, want := a.Path(), (Path{"todolist", "a"}); !got.Equal(want) {
		t.Fatalf("a path = %v; want %v", got, want)
	}
	if got, want := b.Path(), (Path{"todolist", "b"}); !got.Equal(want) {
		t.Fatalf("b path = %v; want %v (siblings must not alias)", got, want)
	}
	if got := b.Path().String(); got != "/todolist/b" {
		t.Fatalf("String() = %q", got)
	}
}

func TestRead_DefaultsOnMissingForeignOrBrokenState(t *testing.T) {
	t.Parallel()

	tree := New()
	tree.Set(Path{"counter"}, mustEncode(t, counterState{N: 3, Label: "x"}))
	tree.Set(Path{"foreign"}, mustEncode(t, otherState{Text: "hi"}))
	tree.Set(Path{"broken"}, Node{Kind: "counter", Data: json.RawMessage(`{"n":"not a number"}`)})
	tree.Set(Path{"partial"}, Node{Kind: "counter", Data: json.RawMessage(`{"n":7}`)})

	c := tree.Cursor()
	def := counterState{N: -1, Label: "default"}

	tests := []struct {
		name string
		at   Cursor
		want counterState
	}{
		{"stored", c.Pick("counter"), counterState{N: 3, Label: "x"}},
		{"absent", c.Pick("nope"), def},
		{"absent below absent", c.Pick("nope").Pick("deeper"), def},
		{"foreign kind", c.Pick("foreign"), def},
		{"undecodable", c.Pick("broken"), def},
		{"missing fields keep defaults", c.Pick("partial"), counterState{N: 7, Label: "default"}},
	}
	for _, tt := range tests {
		if got := ReadOr(tt.at, def); got != tt.want {
			t.Fatalf("%s: got %#v; want %#v", tt.name, got, tt.want)
		}
	}

	if got := Read[counterState](c.Pick("nope")); got != (counterState{}) {
		t.Fatalf("Read zero default: got %#v", got)
	}
}

func TestTree_ClearKeepsChildrenAndPrunesEmptyBranches(t *testing.T) {
	t.Parallel()

	tree := New()
	tree.Set(Path{"todolist"}, mustEncode(t, otherState{Text: "editing"}))
	tree.Set(Path{"todolist", "a"}, mustEncode(t, otherState{Text: "buffer"}))
	tree.Set(Path{"x", "y", "z"}, mustEncode(t, otherState{Text: "deep"}))

	tree.Clear(Path{"todolist"})
	if _, ok := tree.Get(Path{"todolist"}); ok {
		t.Fatalf("expected todolist node cleared")
	}
	if _, ok := tree.Get(Path{"todolist", "a"}); !ok {
		t.Fatalf("expected child buffer to survive clearing its parent")
	}

	tree.Clear(Path{"x", "y", "z"})
	if _, ok := tree.Branches["x"]; ok {
		t.Fatalf("expected empty branch chain x/y/z to be pruned")
	}

	// Clearing something that was never set is a no-op.
	tree.Clear(Path{"never", "set"})
	if _, ok := tree.Branches["never"]; ok {
		t.Fatalf("clear must not create branches")
	}
}

func TestTree_CloneIsDeep(t *testing.T) {
	t.Parallel()

	tree := New()
	tree.Set(Path{"a"}, mustEncode(t, counterState{N: 1}))
	cp := tree.Clone()
	if !tree.Equal(cp) {
		t.Fatalf("clone should equal original")
	}

	tree.Set(Path{"a"}, mustEncode(t, counterState{N: 2}))
	if got := ReadOr(cp.Cursor().Pick("a"), counterState{}); got.N != 1 {
		t.Fatalf("clone changed with original: N=%d", got.N)
	}
	if tree.Equal(cp) {
		t.Fatalf("trees should differ after mutation")
	}
}

func TestTree_EqualTreatsNilAndEmptyAlike(t *testing.T) {
	t.Parallel()

	var nilTree *Tree
	if !nilTree.Equal(New()) || !New().Equal(&Tree{Branches: map[string]*Tree{}}) {
		t.Fatalf("empty trees should be equal")
	}

	a := New()
	a.Set(Path{"k"}, Node{Kind: "other", Data: json.RawMessage(`{"text": "x"}`)})
	b := New()
	b.Set(Path{"k"}, Node{Kind: "other", Data: json.RawMessage(`{"text":"x"}`)})
	if !a.Equal(b) {
		t.Fatalf("node data should compare after compaction")
	}
}

func TestTree_Validate(t *testing.T) {
	t.Parallel()

	tree := New()
	tree.Set(Path{"ok"}, mustEncode(t, otherState{}))
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tree.Set(Path{"bad", "node"}, Node{Data: json.RawMessage(`{}`)})
	if err := tree.Validate(); err == nil {
		t.Fatalf("expected error for node without kind")
	}
}

func TestEncode_RejectsNil(t *testing.T) {
	t.Parallel()

	if _, err := Encode(nil); err == nil {
		t.Fatalf("expected error")
	}
}

type labelledState struct {
	Label *string `json:"label"`
}

func (labelledState) StateKind() string { return "labelled" }

func TestReadOr_LeavesDefaultUntouched(t *testing.T) {
	t.Parallel()

	tree := New()
	tree.Set(Path{"k"}, Node{Kind: "labelled", Data: json.RawMessage(`{"label":"stored"}`)})

	label := "default"
	def := labelledState{Label: &label}
	got := ReadOr(tree.Cursor().Pick("k"), def)

	if label != "default" {
		t.Fatalf("default was written through: %q", label)
	}
	if got.Label == nil || *got.Label != "stored" {
		t.Fatalf("got %#v; want stored label", got)
	}
	if got.Label == def.Label {
		t.Fatalf("result shares the default's pointer")
	}
}

func TestNode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    Node
		ok   bool
	}{
		{"encoded", mustEncode(t, counterState{N: 1}), true},
		{"null payload", Node{Kind: "counter", Data: json.RawMessage(`null`)}, true},
		{"no kind", Node{Data: json.RawMessage(`{}`)}, false},
		{"no data", Node{Kind: "counter"}, false},
		{"broken data", Node{Kind: "counter", Data: json.RawMessage(`{"n":`)}, false},
	}
	for _, tt := range tests {
		if err := tt.n.Validate(); (err == nil) != tt.ok {
			t.Fatalf("%s: Validate() = %v; want ok=%v", tt.name, err, tt.ok)
		}
	}
}
