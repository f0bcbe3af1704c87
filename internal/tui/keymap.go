package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	ForceQuit  key.Binding
	Quit       key.Binding
	SwitchZone key.Binding

	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	ToggleAll       key.Binding
	Destroy         key.Binding
	Edit            key.Binding
	ClearCompleted  key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	CycleFilter     key.Binding

	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		SwitchZone: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "new/list")),

		Up:              key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:            key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Toggle:          key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		ToggleAll:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
		Destroy:         key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Edit:            key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("e", "edit")),
		ClearCompleted:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		FilterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		CycleFilter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// zoneHelp is the help.KeyMap for whichever zone has focus.
type zoneHelp struct {
	short []key.Binding
}

func (z zoneHelp) ShortHelp() []key.Binding  { return z.short }
func (z zoneHelp) FullHelp() [][]key.Binding { return [][]key.Binding{z.short} }

func (k keyMap) helpFor(z zone, editing bool) zoneHelp {
	switch {
	case editing:
		return zoneHelp{short: []key.Binding{k.Submit, k.Cancel, k.ForceQuit}}
	case z == zoneNew:
		return zoneHelp{short: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
			k.SwitchZone, k.ForceQuit,
		}}
	default:
		return zoneHelp{short: []key.Binding{
			k.Toggle, k.Edit, k.Destroy, k.ToggleAll, k.CycleFilter, k.ClearCompleted, k.SwitchZone, k.Quit,
		}}
	}
}
