package tui

import (
	"fmt"
	"io"
	"strings"

	"todolist-cli/internal/view"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

type taskItem struct {
	row view.Row
	// edit is the rendered edit field while the row is editing.
	edit string
	// active is set while the list zone has focus.
	active bool
}

func (i taskItem) FilterValue() string { return i.row.Task.Title }

// taskDelegate draws one line per task: cursor, checkbox, title.
type taskDelegate struct{}

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(taskItem)
	if !ok || contentW < 4 {
		return
	}
	t := it.row.Task
	selected := it.active && index == m.Index()

	cur := "  "
	if selected || t.Mode == view.Editing {
		cur = glyphCursor() + " "
	}

	var body string
	if t.Mode == view.Editing && it.edit != "" {
		body = it.edit
	} else {
		title := strings.Join(strings.Fields(t.Title), " ")
		if t.Completed {
			title = styleDone().Render(title)
		}
		body = glyphCheckbox(t.Completed) + " " + title
	}

	line := cur + body
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Truncate(line, contentW, "…")
	}
	if selected && t.Mode != view.Editing {
		line = styleSelectedRow().Render(line)
	}
	fmt.Fprint(w, line)
}
