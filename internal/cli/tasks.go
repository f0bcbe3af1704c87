package cli

import (
	"errors"
	"strings"

	"todolist-cli/internal/action"
	"todolist-cli/internal/model"
	"todolist-cli/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// mutate applies acts in order through a journaled dispatcher and saves the
// resulting snapshot. check, when set, sees the loaded store first.
func mutate(cmd *cobra.Command, app *App, check func(*store.Store) error, acts ...action.Action) (*store.Store, error) {
	ctx := cmd.Context()
	ws, d, err := openWorkspace(ctx, app, app.Logger)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	if check != nil {
		if err := check(d.Snapshot()); err != nil {
			return nil, err
		}
	}
	for _, a := range acts {
		if err := d.Submit(a); err != nil {
			return nil, err
		}
	}
	snap := d.Snapshot()
	if err := ws.SaveStore(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func loadStore(cmd *cobra.Command, app *App) (*store.Store, error) {
	ctx := cmd.Context()
	ws, err := store.OpenWorkspace(ctx, app.Dir)
	if err != nil {
		return nil, err
	}
	defer ws.Close()
	return ws.LoadStore(ctx)
}

func taskExists(id string) func(*store.Store) error {
	return func(s *store.Store) error {
		if _, ok := s.FindTask(id); !ok {
			return &store.NotFoundError{Kind: "task", ID: id}
		}
		return nil
	}
}

func findTask(s *store.Store, id string) (model.Task, error) {
	t, ok := s.FindTask(id)
	if !ok {
		return model.Task{}, &store.NotFoundError{Kind: "task", ID: id}
	}
	return *t, nil
}

func joinText(args []string) (string, error) {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return "", errors.New("missing text")
	}
	return text, nil
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinText(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := uuid.NewString()
			s, err := mutate(cmd, app, nil, action.AddItem{ID: id, Text: text})
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := findTask(s, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			active, completed := model.Counts(s.Tasks)
			return writeOut(cmd, app, map[string]any{
				"data": model.FilterTasks(s.Tasks, f),
				"meta": map[string]any{
					"filter":         f,
					"activeCount":    active,
					"completedCount": completed,
				},
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "Which tasks to show (all|active|completed)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := findTask(s, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			s, err := mutate(cmd, app, taskExists(id), action.Toggle{ID: id})
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := findTask(s, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newToggleAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all",
		Short: "Complete every task, or reopen them all if all are completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := mutate(cmd, app, nil, action.ToggleAll{})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": s.Tasks})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"destroy"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, err := mutate(cmd, app, taskExists(id), action.Destroy{ID: id}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "removed": true}})
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <task-id> <text...>",
		Short: "Change a task's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			text, err := joinText(args[1:])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := mutate(cmd, app, nil, action.Save{ID: id, Text: text})
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := findTask(s, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newClearCompletedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var before int
			count := func(s *store.Store) error {
				_, before = model.Counts(s.Tasks)
				return nil
			}
			s, err := mutate(cmd, app, count, action.ClearCompleted{})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"removed":   before,
				"remaining": len(s.Tasks),
			}})
		},
	}
}
