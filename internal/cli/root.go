package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"todolist-cli/internal/config"
	"todolist-cli/internal/dispatch"
	"todolist-cli/internal/format"
	"todolist-cli/internal/logutil"
	"todolist-cli/internal/store"
	"todolist-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string

	// Config is resolved before every command runs.
	Config config.Config
	Logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{Logger: logutil.Discard}

	cmd := &cobra.Command{
		Use:          "todos",
		Short:        "A local todo list with a TUI and a scriptable CLI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todos

  # Scriptable commands
  todos add buy milk
  todos list --filter active

  # Direct lookup (shortcut for: todos show <task-id>)
  todos 0f8c2a4e-8d0b-4a57-9b8e-1f2f4d0c6a11
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Root().PersistentFlags())
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Config = cfg
		app.Dir = cfg.Dir
		app.Format = cfg.Format
		app.PrettyJSON = cfg.Pretty
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to the workspace dir (default: $XDG_DATA_HOME/todos)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", format.JSON, "Output format ("+strings.Join(format.Names, "|")+")")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newToggleAllCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newClearCompletedCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newLogCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	logger, closer, err := logutil.Open(app.Config.TUI.DebugLog)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("open debug log: %w", err))
	}
	defer closer.Close()

	ws, d, err := openWorkspace(cmd.Context(), app, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer ws.Close()

	logger.Printf("tui: start workspace=%s session=%s", ws.ID(), ws.SessionID())
	return tui.Run(tui.Options{
		Workspace:  ws,
		Dispatcher: d,
		Autosave:   app.Config.TUI.Autosave,
		Glyphs:     app.Config.TUI.Glyphs,
		AltScreen:  app.Config.TUI.AltScreen,
		Logger:     logger,
	})
}

// openWorkspace opens the workspace and wraps its snapshot in a dispatcher
// that journals into it. The caller closes the workspace.
func openWorkspace(ctx context.Context, app *App, logger *log.Logger) (*store.Workspace, *dispatch.Dispatcher, error) {
	ws, err := store.OpenWorkspace(ctx, app.Dir)
	if err != nil {
		return nil, nil, err
	}
	st, err := ws.LoadStore(ctx)
	if err != nil {
		_ = ws.Close()
		return nil, nil, err
	}
	return ws, dispatch.New(st, dispatch.Options{Journal: ws, Logger: logger}), nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
