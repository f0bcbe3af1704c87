package view

import (
	"strings"

	"todolist-cli/internal/action"
	"todolist-cli/internal/model"
	"todolist-cli/internal/statetree"
	"todolist-cli/internal/store"
)

const (
	Heading     = "todos"
	Placeholder = "What needs to be done?"
)

type ContainerOutput struct {
	Path           statetree.Path
	NewItemText    string
	Filter         model.Filter
	ActiveCount    int
	CompletedCount int
	AllCompleted   bool

	// List and Footer are nil while the store has no tasks.
	List   *TodolistOutput
	Footer *FooterOutput

	OnNewItemInput  InputHandler
	OnNewItemSubmit Handler
	OnToggleAll     Handler
}

// Container is the root component. newID mints the id of the next task.
func Container(st *store.Store, newID func() string) ContainerOutput {
	cursor := st.Cursor()
	path := cursor.Path()
	state := statetree.Read[AppState](cursor)
	active, completed := model.Counts(st.Tasks)

	out := ContainerOutput{
		Path:           path,
		NewItemText:    state.NewItemText,
		Filter:         state.Filter,
		ActiveCount:    active,
		CompletedCount: completed,
		AllCompleted:   len(st.Tasks) > 0 && active == 0,
	}

	out.OnNewItemInput = func(value string, d Dispatcher) error {
		next := state
		next.NewItemText = value
		return d.SubmitStateAt(path, next)
	}
	out.OnNewItemSubmit = func(d Dispatcher) error {
		text := state.NewItemText
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if err := d.Submit(action.AddItem{ID: newID(), Text: text}); err != nil {
			return err
		}
		next := state
		next.NewItemText = ""
		return d.SubmitStateAt(path, next)
	}
	out.OnToggleAll = func(d Dispatcher) error {
		return d.Submit(action.ToggleAll{})
	}

	if len(st.Tasks) > 0 {
		list := Todolist(cursor.Pick(TodolistKey), model.FilterTasks(st.Tasks, state.Filter))
		out.List = &list

		onFilter := func(f model.Filter, d Dispatcher) error {
			next := state
			next.Filter = f
			return d.SubmitStateAt(path, next)
		}
		onClearCompleted := func(d Dispatcher) error {
			return d.Submit(action.ClearCompleted{})
		}
		footer := Footer(active, completed, state.Filter, onFilter, onClearCompleted)
		out.Footer = &footer
	}
	return out
}
