package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"todolist-cli/internal/model"
	"todolist-cli/internal/statetree"
)

const snapshotVersion = 1

type wireStore struct {
	Version int             `json:"version"`
	Tasks   []model.Task    `json:"tasks"`
	States  *statetree.Tree `json:"states"`
}

// Serialize encodes the whole store, tasks and state tree, as compact JSON.
func Serialize(s *Store) (string, error) {
	if s == nil {
		return "", errors.New("serialize store: nil store")
	}
	w := wireStore{
		Version: snapshotVersion,
		Tasks:   s.Tasks,
		States:  s.States,
	}
	if w.Tasks == nil {
		w.Tasks = []model.Task{}
	}
	if w.States == nil {
		w.States = statetree.New()
	}
	b, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("serialize store: %w", err)
	}
	return string(b), nil
}

// Deserialize is the inverse of Serialize. It never falls back to an empty
// store: anything it cannot account for is an error.
func Deserialize(text string) (*Store, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var w wireStore
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse store: trailing data after snapshot")
	}

	switch w.Version {
	case snapshotVersion:
	case 0:
		return nil, errors.New("parse store: missing version")
	default:
		return nil, fmt.Errorf("parse store: unsupported version %d", w.Version)
	}
	if w.States == nil {
		return nil, errors.New("parse store: missing states")
	}
	if err := w.States.Validate(); err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}

	seen := make(map[string]bool, len(w.Tasks))
	for i, t := range w.Tasks {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("parse store: task %d has empty id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("parse store: duplicate task id %q", t.ID)
		}
		seen[t.ID] = true
	}
	if w.Tasks == nil {
		w.Tasks = []model.Task{}
	}
	return &Store{Tasks: w.Tasks, States: w.States}, nil
}

// SerializeIndent is Serialize with indentation, used for human-facing exports.
func SerializeIndent(s *Store) (string, error) {
	raw, err := Serialize(s)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return "", fmt.Errorf("serialize store: %w", err)
	}
	return buf.String(), nil
}
