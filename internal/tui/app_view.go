package tui

import (
	"strings"

	"todolist-cli/internal/view"
)

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.contentWidth()
	var b strings.Builder

	b.WriteString(styleHeading().Render(view.Heading))
	b.WriteString("\n\n")

	toggle := " "
	if m.out.List != nil {
		toggle = styleMuted().Render(glyphToggleAll())
		if m.out.AllCompleted {
			toggle = styleHeading().Render(glyphToggleAll())
		}
	}
	b.WriteString(toggle + " " + m.newInput.View() + "\n")

	if m.out.List != nil {
		rule := styleMuted().Render(strings.Repeat(glyphHRule(), w))
		b.WriteString(rule + "\n")
		if len(m.out.List.Rows) == 0 {
			b.WriteString(styleMuted().Render("  Nothing to show.") + "\n")
		} else {
			b.WriteString(m.list.View() + "\n")
		}
		b.WriteString(rule + "\n")
	}
	if m.out.Footer != nil {
		b.WriteString(footerView(*m.out.Footer) + "\n")
	}
	if m.flash != "" {
		b.WriteString(styleFlash().Render(m.flash) + "\n")
	}

	_, _, editing := m.editingRow()
	b.WriteString("\n" + m.help.View(m.keys.helpFor(m.zone, editing)))
	return b.String()
}

func footerView(f view.FooterOutput) string {
	sep := " " + styleMuted().Render(glyphSep()) + " "
	parts := []string{f.CountLabel}
	for _, l := range f.Links {
		if l.Selected {
			parts = append(parts, styleFilterSelected().Render(l.Label))
		} else {
			parts = append(parts, styleMuted().Render(l.Label))
		}
	}
	out := strings.Join(parts, sep)
	if f.ShowClearCompleted {
		out += sep + "Clear completed"
	}
	return out
}
