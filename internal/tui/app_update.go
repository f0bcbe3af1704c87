package tui

import (
	"context"

	"todolist-cli/internal/model"
	"todolist-cli/internal/view"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case autosaveTickMsg:
		if err := m.saveIfDirty(context.Background()); err != nil {
			cmd = m.setFlash("autosave: " + err.Error())
		}
		return m, tea.Batch(cmd, m.tickAutosave())
	case flashClearMsg:
		if msg.id == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
	default:
		return m, nil
	}
	renderCmd := m.render()
	return m, tea.Batch(cmd, renderCmd)
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return nil
	}
	if row, ti, ok := m.editingRow(); ok {
		return m.handleEditKey(msg, row, ti)
	}
	if m.zone == zoneNew {
		return m.handleNewItemKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *appModel) handleEditKey(msg tea.KeyMsg, row view.Row, ti textinput.Model) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.run(row.Task.OnCommit)
	case tea.KeyEsc:
		return m.run(row.Task.OnCancel)
	case tea.KeyUp, tea.KeyDown, tea.KeyTab, tea.KeyShiftTab:
		// Leaving the field commits, the same as losing focus.
		if err := row.Task.OnCommit.Run(m.disp); err != nil {
			return m.setFlash(err.Error())
		}
		switch msg.Type {
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		default:
			m.zone = zoneNew
		}
		return nil
	}

	before := ti.Value()
	ti, cmd := ti.Update(msg)
	m.edits[row.Key] = ti
	if v := ti.Value(); v != before {
		if err := row.Task.OnEditInput.Run(v, m.disp); err != nil {
			return m.setFlash(err.Error())
		}
	}
	return cmd
}

func (m *appModel) handleNewItemKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEnter:
		return m.run(m.out.OnNewItemSubmit)
	case key.Matches(msg, m.keys.SwitchZone), msg.Type == tea.KeyDown, msg.Type == tea.KeyEsc:
		if m.out.List != nil {
			m.zone = zoneList
		}
		return nil
	}

	before := m.newInput.Value()
	var cmd tea.Cmd
	m.newInput, cmd = m.newInput.Update(msg)
	if v := m.newInput.Value(); v != before {
		if err := m.out.OnNewItemInput.Run(v, m.disp); err != nil {
			return m.setFlash(err.Error())
		}
	}
	return cmd
}

func (m *appModel) handleListKey(msg tea.KeyMsg) tea.Cmd {
	row, hasRow := m.selectedRow()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.SwitchZone):
		m.zone = zoneNew
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Toggle):
		if hasRow {
			return m.run(row.Task.OnToggle)
		}
	case key.Matches(msg, m.keys.ToggleAll):
		return m.run(m.out.OnToggleAll)
	case key.Matches(msg, m.keys.Destroy):
		if hasRow {
			return m.run(row.Task.OnDestroy)
		}
	case key.Matches(msg, m.keys.Edit):
		if hasRow {
			return m.run(row.Task.OnBeginEdit)
		}
	case key.Matches(msg, m.keys.ClearCompleted):
		if m.out.Footer != nil && m.out.Footer.ShowClearCompleted {
			return m.run(m.out.Footer.OnClearCompleted)
		}
	case key.Matches(msg, m.keys.FilterAll):
		return m.selectFilter(model.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		return m.selectFilter(model.FilterActive)
	case key.Matches(msg, m.keys.FilterCompleted):
		return m.selectFilter(model.FilterCompleted)
	case key.Matches(msg, m.keys.CycleFilter):
		return m.selectFilter(m.out.Filter.Next())
	}
	return nil
}

func (m *appModel) selectFilter(f model.Filter) tea.Cmd {
	if m.out.Footer == nil {
		return nil
	}
	if err := m.out.Footer.Select(f, m.disp); err != nil {
		return m.setFlash(err.Error())
	}
	return nil
}
