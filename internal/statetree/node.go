package statetree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Value is a component-local state record. StateKind is the tag written next
// to the payload so a reader can tell whether the stored shape is its own.
type Value interface {
	StateKind() string
}

// Node is one stored value: a kind tag plus the JSON payload.
type Node struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

func Encode(v Value) (Node, error) {
	if v == nil {
		return Node{}, errors.New("encode state: nil value")
	}
	kind := v.StateKind()
	if kind == "" {
		return Node{}, fmt.Errorf("encode state: %T has an empty kind", v)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return Node{}, fmt.Errorf("encode state %s: %w", kind, err)
	}
	return Node{Kind: kind, Data: b}, nil
}

// Validate reports whether n survives a JSON round trip unchanged: it needs a
// kind and a well-formed payload.
func (n Node) Validate() error {
	if n.Kind == "" {
		return errors.New("has no kind")
	}
	if len(n.Data) == 0 {
		return fmt.Errorf("%s has no data", n.Kind)
	}
	if !json.Valid(n.Data) {
		return fmt.Errorf("%s data is not valid JSON", n.Kind)
	}
	return nil
}

func (n Node) Clone() Node {
	out := Node{Kind: n.Kind}
	if n.Data != nil {
		out.Data = append(json.RawMessage(nil), n.Data...)
	}
	return out
}

func (n Node) Equal(other Node) bool {
	if n.Kind != other.Kind {
		return false
	}
	return bytes.Equal(compact(n.Data), compact(other.Data))
}

func compact(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return b
	}
	return buf.Bytes()
}

// Read decodes the value at c into T, falling back to T's zero value.
func Read[T Value](c Cursor) T {
	var def T
	return ReadOr(c, def)
}

// ReadOr decodes the value at c into T. It returns def when nothing is stored
// at c, when the stored kind is not T's kind, or when the payload does not
// decode. It never fails: a renamed or reshaped state record degrades to its
// default instead of breaking the render.
//
// Fields missing from the payload keep def's values. The payload is decoded
// into a copy of def, so def and anything it points to are never written.
func ReadOr[T Value](c Cursor, def T) T {
	n, ok := c.Node()
	if !ok || n.Kind != def.StateKind() || len(n.Data) == 0 {
		return def
	}
	base, err := json.Marshal(def)
	if err != nil {
		return def
	}
	var out T
	if err := json.Unmarshal(base, &out); err != nil {
		return def
	}
	if err := json.Unmarshal(n.Data, &out); err != nil {
		return def
	}
	return out
}
