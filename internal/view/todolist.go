package view

import (
	"todolist-cli/internal/model"
	"todolist-cli/internal/statetree"
)

// EditHandler is shared by every row: the row passes its own id.
type EditHandler func(id string, d Dispatcher) error

// Row pairs a rendered task with its identity key. Key is always the task id,
// never the row's position.
type Row struct {
	Key  string
	Task TaskOutput
}

type TodolistOutput struct {
	Path      statetree.Path
	EditingID string
	Rows      []Row
}

func (o TodolistOutput) Keys() []string {
	keys := make([]string, len(o.Rows))
	for i, r := range o.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Effects collects the effects of every row in order.
func (o TodolistOutput) Effects() []Effect {
	var out []Effect
	for _, r := range o.Rows {
		out = append(out, r.Task.Effects...)
	}
	return out
}

// Row returns the row with key, if rendered.
func (o TodolistOutput) Row(key string) (Row, bool) {
	for _, r := range o.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// Todolist renders tasks, already filtered, in order. Each task mounts at
// c.Pick(task.ID), so its edit buffer follows the task across filter changes
// and deletions of its neighbours.
func Todolist(c statetree.Cursor, tasks []model.Task) TodolistOutput {
	path := c.Path()
	state := statetree.Read[TodolistState](c)

	var onEdit EditHandler = func(id string, d Dispatcher) error {
		return d.SubmitStateAt(path, TodolistState{EditingID: &id})
	}
	var onCancel Handler = func(d Dispatcher) error {
		return d.ClearStateAt(path)
	}

	out := TodolistOutput{Path: path, Rows: make([]Row, 0, len(tasks))}
	if state.EditingID != nil {
		out.EditingID = *state.EditingID
	}
	for _, t := range tasks {
		out.Rows = append(out.Rows, Row{
			Key:  t.ID,
			Task: Task(c.Pick(t.ID), t, state.Editing(t.ID), onEdit, onCancel),
		})
	}
	return out
}
