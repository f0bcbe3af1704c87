package store

import (
	"fmt"
	"strings"

	"todolist-cli/internal/action"
	"todolist-cli/internal/model"
	"todolist-cli/internal/statetree"
)

// Update applies one action. It is the only place the store changes.
//
// Anything Update accepts survives Serialize and Deserialize: ids must be
// non-blank and unique, and state nodes need a kind and valid JSON data.
// Rejected actions leave the store unchanged.
//
// Toggle and Destroy on an unknown id are silently ignored: they come from
// rows rendered off the current list, so a miss is a stale handler. Save on
// an unknown id is reported, since it ends an edit session the user expects
// to land.
func (s *Store) Update(a action.Action) error {
	if s.States == nil {
		s.States = statetree.New()
	}
	switch a := a.(type) {
	case action.StatePatch:
		if a.Node == nil {
			s.States.Clear(a.Path)
			break
		}
		if err := a.Node.Validate(); err != nil {
			return fmt.Errorf("%w: state node at %s %v", ErrInvalidAction, a.Path, err)
		}
		s.States.Set(a.Path, *a.Node)
	case action.AddItem:
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("%w: add-item with empty id", ErrInvalidAction)
		}
		if _, ok := s.FindTask(a.ID); ok {
			return fmt.Errorf("%w: duplicate task id %q", ErrInvalidAction, a.ID)
		}
		s.Tasks = append(s.Tasks, model.Task{
			ID:        a.ID,
			Title:     a.Text,
			Completed: false,
		})
	case action.ToggleAll:
		completed := true
		for _, t := range s.Tasks {
			if !t.Completed {
				completed = false
				break
			}
		}
		for i := range s.Tasks {
			s.Tasks[i].Completed = !completed
		}
	case action.Toggle:
		if t, ok := s.FindTask(a.ID); ok {
			t.Completed = !t.Completed
		}
	case action.Destroy:
		for i := range s.Tasks {
			if s.Tasks[i].ID == a.ID {
				s.Tasks = append(s.Tasks[:i:i], s.Tasks[i+1:]...)
				break
			}
		}
	case action.Save:
		t, ok := s.FindTask(a.ID)
		if !ok {
			return &NotFoundError{Kind: "task", ID: a.ID}
		}
		t.Title = a.Text
	case action.ClearCompleted:
		kept := s.Tasks[:0:0]
		for _, t := range s.Tasks {
			if !t.Completed {
				kept = append(kept, t)
			}
		}
		s.Tasks = kept
	case nil:
		return fmt.Errorf("%w: nil", ErrUnknownAction)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, a.Type())
	}
	return nil
}
