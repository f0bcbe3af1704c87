package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"todolist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the serialized store (tasks and UI state)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var raw string
			if app.PrettyJSON {
				raw, err = store.SerializeIndent(s)
			} else {
				raw, err = store.Serialize(s)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
			return err
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the store with a previously exported one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if strings.TrimSpace(args[0]) == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := store.Deserialize(strings.TrimSpace(string(b)))
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx := cmd.Context()
			ws, err := store.OpenWorkspace(ctx, app.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ws.Close()
			if err := ws.SaveStore(ctx, s); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tasks": len(s.Tasks)}})
		},
	}
}
