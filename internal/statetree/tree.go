/*
Package statetree stores per-component UI state in a tree addressed by paths.

Every component reads its own slice through a Cursor and asks for a change by
building a patch for Cursor.Path. Values are stored as a kind tag plus a JSON
payload, so the tree itself is independent of the record types living in it
and serializes as plain JSON.

A component instance keeps its state exactly as long as its path stays the
same. Paths are built from identity keys (task ids), so when a key disappears
its subtree is simply no longer reachable from the render pass. Nothing prunes
it; it comes back if the key does.
*/
package statetree

import "fmt"

type Tree struct {
	Node     *Node            `json:"node,omitempty"`
	Branches map[string]*Tree `json:"branches,omitempty"`
}

func New() *Tree { return &Tree{} }

// Cursor returns a read-only view at the root.
func (t *Tree) Cursor() Cursor {
	return Cursor{tree: t, path: Path{}}
}

func (t *Tree) Get(path Path) (*Node, bool) {
	cur := t
	for _, key := range path {
		if cur == nil {
			return nil, false
		}
		cur = cur.Branches[key]
	}
	if cur == nil || cur.Node == nil {
		return nil, false
	}
	return cur.Node, true
}

// Set stores n at path, creating intermediate branches.
func (t *Tree) Set(path Path, n Node) {
	cur := t
	for _, key := range path {
		if cur.Branches == nil {
			cur.Branches = map[string]*Tree{}
		}
		next := cur.Branches[key]
		if next == nil {
			next = &Tree{}
			cur.Branches[key] = next
		}
		cur = next
	}
	v := n.Clone()
	cur.Node = &v
}

// Clear removes the value stored at path. Child branches are kept; branches
// left with neither a value nor children are pruned.
func (t *Tree) Clear(path Path) {
	if len(path) == 0 {
		t.Node = nil
		return
	}
	clearAt(t, path)
}

func clearAt(t *Tree, path Path) bool {
	if t == nil {
		return true
	}
	if len(path) == 0 {
		t.Node = nil
		return len(t.Branches) == 0
	}
	child, ok := t.Branches[path[0]]
	if !ok {
		return false
	}
	if clearAt(child, path[1:]) {
		delete(t.Branches, path[0])
		if len(t.Branches) == 0 {
			t.Branches = nil
		}
	}
	return t.Node == nil && len(t.Branches) == 0
}

func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{}
	if t.Node != nil {
		n := t.Node.Clone()
		out.Node = &n
	}
	if len(t.Branches) > 0 {
		out.Branches = make(map[string]*Tree, len(t.Branches))
		for k, b := range t.Branches {
			out.Branches[k] = b.Clone()
		}
	}
	return out
}

// Equal compares two trees structurally. A nil tree equals an empty one.
func (t *Tree) Equal(other *Tree) bool {
	if t.empty() && other.empty() {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	switch {
	case t.Node == nil && other.Node != nil, t.Node != nil && other.Node == nil:
		return false
	case t.Node != nil && !t.Node.Equal(*other.Node):
		return false
	}
	if len(t.Branches) != len(other.Branches) {
		return false
	}
	for k, b := range t.Branches {
		ob, ok := other.Branches[k]
		if !ok || !b.Equal(ob) {
			return false
		}
	}
	return true
}

func (t *Tree) empty() bool {
	return t == nil || (t.Node == nil && len(t.Branches) == 0)
}

// Validate reports the first structurally invalid node, if any.
func (t *Tree) Validate() error {
	return validate(t, Path{})
}

func validate(t *Tree, at Path) error {
	if t == nil {
		return nil
	}
	if t.Node != nil {
		if err := t.Node.Validate(); err != nil {
			return fmt.Errorf("state node at %s %w", at, err)
		}
	}
	for k, b := range t.Branches {
		if b == nil {
			return fmt.Errorf("state branch %s is null", at.Append(k))
		}
		if err := validate(b, at.Append(k)); err != nil {
			return err
		}
	}
	return nil
}
