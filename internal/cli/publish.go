package cli

import (
	"fmt"
	"strings"

	"todolist-cli/internal/model"
	"todolist-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		filter    string
		asHTML    bool
		to        string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the list as a Markdown checklist (or HTML)",
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

			content := publish.RenderMarkdown(s.Tasks, f)
			if asHTML {
				content, err = publish.RenderPage("todos", content)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			if strings.TrimSpace(to) == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			if err := publish.WriteFile(to, content, overwrite); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":  to,
				"bytes": len(content),
			}})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "Which tasks to include (all|active|completed)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render a standalone HTML page")
	cmd.Flags().StringVar(&to, "to", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing --to file")
	return cmd
}
