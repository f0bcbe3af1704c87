package view

// Diff is the identity diff between two renders of a keyed list.
type Diff struct {
	Retained []string // in next order
	Added    []string // in next order
	Removed  []string // in prev order
}

// Reconcile compares two key sequences. A retained key keeps whatever the
// renderer attached to it (edit field, caret, focus); an added key starts
// fresh; a removed key's attachments are dropped.
func Reconcile(prev, next []string) Diff {
	inPrev := make(map[string]bool, len(prev))
	for _, k := range prev {
		inPrev[k] = true
	}
	inNext := make(map[string]bool, len(next))
	var d Diff
	for _, k := range next {
		if inNext[k] {
			continue
		}
		inNext[k] = true
		if inPrev[k] {
			d.Retained = append(d.Retained, k)
		} else {
			d.Added = append(d.Added, k)
		}
	}
	for _, k := range prev {
		if !inNext[k] {
			d.Removed = append(d.Removed, k)
			inNext[k] = true
		}
	}
	return d
}

// ResolveFocus maps a selection in prevKeys to an index in nextKeys. The same
// key wins; if it is gone, the nearest following survivor, then the nearest
// preceding one. -1 means nextKeys is empty.
func ResolveFocus(prevKeys []string, prevIndex int, nextKeys []string) int {
	if len(nextKeys) == 0 {
		return -1
	}
	pos := make(map[string]int, len(nextKeys))
	for i, k := range nextKeys {
		if _, ok := pos[k]; !ok {
			pos[k] = i
		}
	}
	if prevIndex < 0 || prevIndex >= len(prevKeys) {
		return clampIndex(prevIndex, len(nextKeys))
	}
	if i, ok := pos[prevKeys[prevIndex]]; ok {
		return i
	}
	for j := prevIndex + 1; j < len(prevKeys); j++ {
		if i, ok := pos[prevKeys[j]]; ok {
			return i
		}
	}
	for j := prevIndex - 1; j >= 0; j-- {
		if i, ok := pos[prevKeys[j]]; ok {
			return i
		}
	}
	return clampIndex(prevIndex, len(nextKeys))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
