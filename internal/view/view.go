/*
Package view turns a store snapshot into a declarative description of the
screen.

Each component is a plain function of its state cursor and its slice of
domain data. It reads its own record from the state tree, and returns an
output struct carrying what to draw plus handler values. Handlers do not close
over a dispatcher; the renderer passes one in when an event fires, so the same
output can be rendered, inspected in tests, or discarded.

The tree is:

	Container (root, AppState)
	└── Todolist ("todolist", TodolistState)
	    └── Task ("todolist"/<task id>, TaskState), one per visible task, keyed by id
	Footer (no state of its own)
*/
package view

import (
	"todolist-cli/internal/action"
	"todolist-cli/internal/statetree"
)

// Dispatcher is the write side handlers get at event time.
type Dispatcher interface {
	Submit(a action.Action) error
	SubmitStateAt(path statetree.Path, v statetree.Value) error
	ClearStateAt(path statetree.Path) error
}

type Handler func(d Dispatcher) error

type InputHandler func(value string, d Dispatcher) error

// Run calls h when it is set.
func (h Handler) Run(d Dispatcher) error {
	if h == nil {
		return nil
	}
	return h(d)
}

func (h InputHandler) Run(value string, d Dispatcher) error {
	if h == nil {
		return nil
	}
	return h(value, d)
}
