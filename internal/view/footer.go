package view

import (
	"fmt"

	"todolist-cli/internal/model"
)

// FilterHandler is the single handler behind every filter link.
type FilterHandler func(f model.Filter, d Dispatcher) error

type FilterLink struct {
	Filter   model.Filter
	Label    string
	Selected bool
}

type FooterOutput struct {
	ActiveCount        int
	CompletedCount     int
	CountLabel         string
	Links              []FilterLink
	ShowClearCompleted bool

	OnFilter         FilterHandler
	OnClearCompleted Handler
}

func Footer(active, completed int, filter model.Filter, onFilter FilterHandler, onClearCompleted Handler) FooterOutput {
	out := FooterOutput{
		ActiveCount:        active,
		CompletedCount:     completed,
		CountLabel:         ItemsLeft(active),
		ShowClearCompleted: completed > 0,
		OnFilter:           onFilter,
		OnClearCompleted:   onClearCompleted,
	}
	for _, f := range model.Filters {
		out.Links = append(out.Links, FilterLink{
			Filter:   f,
			Label:    f.Label(),
			Selected: f == filter,
		})
	}
	return out
}

func ItemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

// Select runs the shared filter handler for f.
func (o FooterOutput) Select(f model.Filter, d Dispatcher) error {
	if o.OnFilter == nil {
		return nil
	}
	return o.OnFilter(f, d)
}
