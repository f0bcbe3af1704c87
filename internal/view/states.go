package view

import "todolist-cli/internal/model"

const (
	KindApp      = "app"
	KindTodolist = "todolist"
	KindTask     = "task"

	// TodolistKey is the branch the list mounts under.
	TodolistKey = "todolist"
)

// AppState lives at the root of the state tree.
type AppState struct {
	Filter      model.Filter `json:"filter"`
	NewItemText string       `json:"newItemText"`
}

func (AppState) StateKind() string { return KindApp }

// TodolistState records which task, if any, is being edited. At most one.
type TodolistState struct {
	EditingID *string `json:"editingId,omitempty"`
}

func (TodolistState) StateKind() string { return KindTodolist }

func (s TodolistState) Editing(id string) bool {
	return s.EditingID != nil && *s.EditingID == id
}

// TaskState is the edit buffer of one task.
type TaskState struct {
	EditText string `json:"editText"`
}

func (TaskState) StateKind() string { return KindTask }
