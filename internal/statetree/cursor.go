package statetree

// Cursor is a read-only view of one node of a Tree. Picking a child shares the
// underlying tree; nothing is copied.
type Cursor struct {
	tree *Tree // nil when nothing has been stored at or below path
	path Path
}

// At returns a detached cursor for path with no stored state. Mostly useful to
// render a component before its parent has ever written anything.
func At(path Path) Cursor {
	return Cursor{path: append(Path{}, path...)}
}

func (c Cursor) Path() Path {
	return append(Path{}, c.path...)
}

func (c Cursor) Pick(key string) Cursor {
	var child *Tree
	if c.tree != nil {
		child = c.tree.Branches[key]
	}
	return Cursor{tree: child, path: c.path.Append(key)}
}

func (c Cursor) Node() (*Node, bool) {
	if c.tree == nil || c.tree.Node == nil {
		return nil, false
	}
	return c.tree.Node, true
}
