// Package action defines the closed set of mutations the store accepts.
//
// Components never touch the store; they build one of these and hand it to the
// dispatcher. Every action has a stable type tag and a JSON payload so the
// applied sequence can be journaled and read back.
package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"todolist-cli/internal/statetree"
)

const (
	TypeAddItem        = "add-item"
	TypeToggleAll      = "toggle-all"
	TypeToggle         = "toggle"
	TypeDestroy        = "destroy"
	TypeSave           = "save"
	TypeClearCompleted = "clear-completed"
	TypeStatePatch     = "state-patch"
)

// Action is implemented only by the types in this package.
type Action interface {
	Type() string
	sealed()
}

type AddItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ToggleAll struct{}

type Toggle struct {
	ID string `json:"id"`
}

// Destroy removes a task.
type Destroy struct {
	ID string `json:"id"`
}

// Save replaces a task's title.
type Save struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ClearCompleted struct{}

// StatePatch writes Node at Path in the state tree, or clears it when Node is nil.
type StatePatch struct {
	Path statetree.Path  `json:"path"`
	Node *statetree.Node `json:"node,omitempty"`
}

func (AddItem) Type() string        { return TypeAddItem }
func (ToggleAll) Type() string      { return TypeToggleAll }
func (Toggle) Type() string         { return TypeToggle }
func (Destroy) Type() string        { return TypeDestroy }
func (Save) Type() string           { return TypeSave }
func (ClearCompleted) Type() string { return TypeClearCompleted }
func (StatePatch) Type() string     { return TypeStatePatch }

func (AddItem) sealed()        {}
func (ToggleAll) sealed()      {}
func (Toggle) sealed()         {}
func (Destroy) sealed()        {}
func (Save) sealed()           {}
func (ClearCompleted) sealed() {}
func (StatePatch) sealed()     {}

// SetState builds a patch storing v at path.
func SetState(path statetree.Path, v statetree.Value) (StatePatch, error) {
	n, err := statetree.Encode(v)
	if err != nil {
		return StatePatch{}, err
	}
	return StatePatch{Path: append(statetree.Path{}, path...), Node: &n}, nil
}

// ClearState builds a patch removing the value at path.
func ClearState(path statetree.Path) StatePatch {
	return StatePatch{Path: append(statetree.Path{}, path...)}
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func Marshal(a Action) ([]byte, error) {
	if a == nil {
		return nil, errors.New("marshal action: nil")
	}
	var payload json.RawMessage
	switch a.(type) {
	case ToggleAll, ClearCompleted:
	default:
		b, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", a.Type(), err)
		}
		payload = b
	}
	return json.Marshal(envelope{Type: a.Type(), Payload: payload})
}

func Unmarshal(b []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("unmarshal action: %w", err)
	}
	typ := strings.TrimSpace(env.Type)
	switch typ {
	case TypeToggleAll:
		return ToggleAll{}, nil
	case TypeClearCompleted:
		return ClearCompleted{}, nil
	case TypeAddItem:
		return decodePayload[AddItem](typ, env.Payload)
	case TypeToggle:
		return decodePayload[Toggle](typ, env.Payload)
	case TypeDestroy:
		return decodePayload[Destroy](typ, env.Payload)
	case TypeSave:
		return decodePayload[Save](typ, env.Payload)
	case TypeStatePatch:
		p, err := decodePayload[StatePatch](typ, env.Payload)
		if err != nil {
			return nil, err
		}
		if p.Path == nil {
			p.Path = statetree.Path{}
		}
		return p, nil
	case "":
		return nil, errors.New("unmarshal action: missing type")
	default:
		return nil, fmt.Errorf("unmarshal action: unknown type %q", typ)
	}
}

func decodePayload[T Action](typ string, raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, fmt.Errorf("unmarshal %s: missing payload", typ)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("unmarshal %s: %w", typ, err)
	}
	return v, nil
}
