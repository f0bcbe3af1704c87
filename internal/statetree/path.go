package statetree

import "strings"

// Path addresses a node in a Tree. The empty path is the root.
type Path []string

// Append returns a new path with key added. The receiver is never aliased, so
// sibling paths built from the same parent stay independent.
func (p Path) Append(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	return "/" + strings.Join(p, "/")
}
