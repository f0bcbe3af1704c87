package view

import "reflect"

type EffectKind int

const (
	// FocusEdit moves input focus into a row's edit field. Deps[0] is the
	// row's editing flag.
	FocusEdit EffectKind = iota + 1
)

func (k EffectKind) String() string {
	switch k {
	case FocusEdit:
		return "focus-edit"
	default:
		return "unknown"
	}
}

// Effect is a side effect requested by a render. It runs when its Deps differ
// from the ones seen for the same Key and Kind on the previous render.
type Effect struct {
	Key  string
	Kind EffectKind
	Deps []any
}

func DepsChanged(old, next []any) bool {
	if len(old) != len(next) {
		return true
	}
	for i := range old {
		if !reflect.DeepEqual(old[i], next[i]) {
			return true
		}
	}
	return false
}

// FocusRequested reports whether e is a FocusEdit whose row just entered
// editing. Combined with EffectRunner.Due it fires once per transition.
func FocusRequested(e Effect) bool {
	if e.Kind != FocusEdit || len(e.Deps) == 0 {
		return false
	}
	editing, _ := e.Deps[0].(bool)
	return editing
}

type effectID struct {
	key  string
	kind EffectKind
}

// EffectRunner remembers the deps of the previous render. The zero value is
// ready to use.
type EffectRunner struct {
	last map[effectID][]any
}

// Due returns the effects whose deps changed since the previous call,
// including ones seen for the first time. Keys missing from effects are
// forgotten, so a row that comes back counts as a new mount.
func (r *EffectRunner) Due(effects []Effect) []Effect {
	next := make(map[effectID][]any, len(effects))
	var due []Effect
	for _, e := range effects {
		id := effectID{key: e.Key, kind: e.Kind}
		old, seen := r.last[id]
		if !seen || DepsChanged(old, e.Deps) {
			due = append(due, e)
		}
		next[id] = append([]any(nil), e.Deps...)
	}
	r.last = next
	return due
}
