package view

import (
	"todolist-cli/internal/action"
	"todolist-cli/internal/model"
	"todolist-cli/internal/statetree"
)

type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

type TaskOutput struct {
	Path      statetree.Path
	ID        string
	Title     string
	Completed bool
	Mode      Mode
	EditText  string
	Effects   []Effect

	OnToggle    Handler
	OnDestroy   Handler
	OnBeginEdit Handler
	OnEditInput InputHandler
	// OnCommit runs on confirm and on blur. OnCancel discards the buffer.
	OnCommit Handler
	OnCancel Handler
}

// Task renders one row. editing comes from the parent list, which is the only
// place that knows which row is being edited.
func Task(c statetree.Cursor, t model.Task, editing bool, onEdit EditHandler, onCancel Handler) TaskOutput {
	path := c.Path()
	state := statetree.Read[TaskState](c)
	id := t.ID

	out := TaskOutput{
		Path:      path,
		ID:        id,
		Title:     t.Title,
		Completed: t.Completed,
		EditText:  state.EditText,
		Effects:   []Effect{{Key: id, Kind: FocusEdit, Deps: []any{editing}}},
	}
	if editing {
		out.Mode = Editing
	}

	out.OnToggle = func(d Dispatcher) error {
		return d.Submit(action.Toggle{ID: id})
	}
	out.OnDestroy = func(d Dispatcher) error {
		return d.Submit(action.Destroy{ID: id})
	}
	out.OnBeginEdit = func(d Dispatcher) error {
		if err := onEdit(id, d); err != nil {
			return err
		}
		return d.SubmitStateAt(path, TaskState{EditText: t.Title})
	}
	out.OnEditInput = func(value string, d Dispatcher) error {
		return d.SubmitStateAt(path, TaskState{EditText: value})
	}
	out.OnCommit = func(d Dispatcher) error {
		if !editing {
			return nil
		}
		// A failed Save keeps the row in edit mode with its buffer intact.
		if err := d.Submit(action.Save{ID: id, Text: state.EditText}); err != nil {
			return err
		}
		return onCancel(d)
	}
	out.OnCancel = func(d Dispatcher) error {
		if !editing {
			return nil
		}
		return onCancel(d)
	}
	return out
}
