package cli

import (
	"encoding/json"
	"time"

	"todolist-cli/internal/action"
	"todolist-cli/internal/store"

	"github.com/spf13/cobra"
)

type logEntry struct {
	Seq       int64           `json:"seq"`
	SessionID string          `json:"sessionId"`
	Type      string          `json:"type"`
	IssuedAt  time.Time       `json:"issuedAt"`
	Action    json.RawMessage `json:"action"`
}

func newLogCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the action journal, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := store.OpenWorkspace(ctx, app.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ws.Close()

			entries, err := ws.ReadActions(ctx, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]logEntry, 0, len(entries))
			for _, e := range entries {
				b, err := action.Marshal(e.Action)
				if err != nil {
					return writeErr(cmd, err)
				}
				out = append(out, logEntry{
					Seq:       e.Seq,
					SessionID: e.SessionID,
					Type:      e.Type,
					IssuedAt:  e.IssuedAt,
					Action:    b,
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"workspaceId": ws.ID()},
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many entries (0 = all)")
	return cmd
}
