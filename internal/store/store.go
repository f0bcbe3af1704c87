package store

import (
	"todolist-cli/internal/model"
	"todolist-cli/internal/statetree"
)

// Store is the single mutable aggregate: the task list plus the UI state tree.
// Only the dispatcher writes to it; renders work on a Clone.
type Store struct {
	Tasks  []model.Task
	States *statetree.Tree
}

func New() *Store {
	return &Store{
		Tasks:  []model.Task{},
		States: statetree.New(),
	}
}

func (s *Store) Clone() *Store {
	if s == nil {
		return New()
	}
	out := &Store{
		Tasks:  make([]model.Task, len(s.Tasks)),
		States: s.States.Clone(),
	}
	copy(out.Tasks, s.Tasks)
	if out.States == nil {
		out.States = statetree.New()
	}
	return out
}

// Cursor returns a read-only view of the state tree root.
func (s *Store) Cursor() statetree.Cursor {
	if s.States == nil {
		return statetree.At(nil)
	}
	return s.States.Cursor()
}

func (s *Store) FindTask(id string) (*model.Task, bool) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i], true
		}
	}
	return nil, false
}

// Equal reports whether both stores hold the same tasks in the same order and
// structurally equal state trees.
func (s *Store) Equal(other *Store) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Tasks) != len(other.Tasks) {
		return false
	}
	for i := range s.Tasks {
		if s.Tasks[i] != other.Tasks[i] {
			return false
		}
	}
	return s.States.Equal(other.States)
}
