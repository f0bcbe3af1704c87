package publish

import (
	"bytes"
	"fmt"
	"strings"

	"todolist-cli/internal/model"
	"todolist-cli/internal/view"
)

// RenderMarkdown writes the tasks visible under filter as a GFM task list.
func RenderMarkdown(tasks []model.Task, filter model.Filter) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + view.Heading)
	writeLn("")

	visible := model.FilterTasks(tasks, filter)
	if len(visible) == 0 {
		writeLn("_Nothing to show._")
	}
	for _, t := range visible {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		writeLn("- " + box + " " + inline(t.Title))
	}

	active, completed := model.Counts(tasks)
	writeLn("")
	line := view.ItemsLeft(active)
	if completed > 0 {
		line += fmt.Sprintf(", %d completed", completed)
	}
	if filter != model.FilterAll {
		line += " (showing " + filter.String() + ")"
	}
	writeLn(line)
	return buf.String()
}

// inline keeps a title on one list line and stops it from reading as a
// nested checkbox or heading.
func inline(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return "_(untitled)_"
	}
	switch title[0] {
	case '#', '[', '>', '-', '*', '+':
		title = `\` + title
	}
	return title
}
