package tui

import (
	"context"
	"log"
	"strings"
	"time"

	"todolist-cli/internal/dispatch"
	"todolist-cli/internal/logutil"
	"todolist-cli/internal/store"
	"todolist-cli/internal/view"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type zone int

const (
	zoneNew zone = iota
	zoneList
)

func (z zone) String() string {
	if z == zoneList {
		return "list"
	}
	return "new"
}

func parseZone(s string) zone {
	if strings.TrimSpace(s) == "list" {
		return zoneList
	}
	return zoneNew
}

type autosaveTickMsg struct{}

type flashClearMsg struct{ id int }

const flashDuration = 3 * time.Second

// chromeHeight is every line of View that is not a list row.
const chromeHeight = 9

type appModel struct {
	ws       *store.Workspace
	disp     *dispatch.Dispatcher
	log      *log.Logger
	newID    func() string
	autosave time.Duration
	savedSeq uint64

	width  int
	height int

	zone zone
	keys keyMap
	help help.Model

	// out is the last render; its handlers are what key presses run.
	out         view.ContainerOutput
	shownKeys   []string
	selectedKey string

	list     list.Model
	newInput textinput.Model
	edits    map[string]textinput.Model
	effects  view.EffectRunner

	flash    string
	flashSeq int
	quitting bool
}

func newAppModel(opts Options) appModel {
	m := appModel{
		ws:       opts.Workspace,
		disp:     opts.Dispatcher,
		log:      logutil.OrDiscard(opts.Logger),
		newID:    opts.NewID,
		autosave: opts.Autosave,
		keys:     defaultKeyMap(),
		help:     help.New(),
		edits:    map[string]textinput.Model{},
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	m.newInput = newTextInput()
	m.newInput.Placeholder = view.Placeholder
	m.list = newTaskList()

	if m.ws != nil {
		if st, err := m.ws.LoadTUIState(); err == nil {
			m.zone = parseZone(st.Zone)
			m.selectedKey = st.SelectedKey
		} else {
			m.log.Printf("tui: load tui state: %v", err)
		}
	}
	m.savedSeq = m.disp.Seq()
	m.render()
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newTaskList() list.Model {
	l := list.New(nil, taskDelegate{}, 0, 0)
	// The model draws its own heading, footer and help.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	return l
}

func (m appModel) Init() tea.Cmd {
	return m.tickAutosave()
}

// render rebuilds the component tree from a fresh snapshot and brings the
// widgets in line with it: edit fields follow their task id, the selection
// survives deletions, and due effects move focus.
func (m *appModel) render() tea.Cmd {
	m.out = view.Container(m.disp.Snapshot(), m.newID)

	var rows []view.Row
	if m.out.List != nil {
		rows = m.out.List.Rows
	}
	nextKeys := make([]string, len(rows))
	for i, r := range rows {
		nextKeys[i] = r.Key
	}
	for _, k := range view.Reconcile(m.shownKeys, nextKeys).Removed {
		delete(m.edits, k)
	}
	if i := indexOf(nextKeys, m.selectedKey); i < 0 {
		m.selectedKey = keyAt(nextKeys, view.ResolveFocus(m.shownKeys, indexOf(m.shownKeys, m.selectedKey), nextKeys))
	}
	m.shownKeys = nextKeys

	var cmds []tea.Cmd
	var effects []view.Effect
	if m.out.List != nil {
		effects = m.out.List.Effects()
	}
	for _, e := range m.effects.Due(effects) {
		if e.Kind != view.FocusEdit {
			continue
		}
		if !view.FocusRequested(e) {
			delete(m.edits, e.Key)
			continue
		}
		row, ok := m.out.List.Row(e.Key)
		if !ok {
			continue
		}
		ti := newTextInput()
		ti.SetValue(row.Task.EditText)
		ti.CursorEnd()
		cmds = append(cmds, ti.Focus())
		m.edits[e.Key] = ti
		m.selectedKey = e.Key
		m.zone = zoneList
	}
	for _, r := range rows {
		ti, ok := m.edits[r.Key]
		if !ok || r.Task.Mode != view.Editing {
			continue
		}
		if ti.Value() != r.Task.EditText {
			ti.SetValue(r.Task.EditText)
			m.edits[r.Key] = ti
		}
	}

	if m.out.List == nil {
		m.zone = zoneNew
	}
	if m.zone == zoneNew {
		cmds = append(cmds, m.newInput.Focus())
	} else {
		m.newInput.Blur()
	}
	if m.newInput.Value() != m.out.NewItemText {
		m.newInput.SetValue(m.out.NewItemText)
	}

	items := make([]list.Item, len(rows))
	for i, r := range rows {
		it := taskItem{row: r, active: m.zone == zoneList}
		if ti, ok := m.edits[r.Key]; ok && r.Task.Mode == view.Editing {
			it.edit = ti.View()
		}
		items[i] = it
	}
	m.list.SetItems(items)
	m.list.SetSize(m.contentWidth(), m.listHeight(len(rows)))
	if i := indexOf(nextKeys, m.selectedKey); i >= 0 {
		m.list.Select(i)
	}
	return tea.Batch(cmds...)
}

// editingRow is the row whose edit field has focus, if any.
func (m *appModel) editingRow() (view.Row, textinput.Model, bool) {
	if m.out.List == nil || m.out.List.EditingID == "" {
		return view.Row{}, textinput.Model{}, false
	}
	row, ok := m.out.List.Row(m.out.List.EditingID)
	if !ok {
		return view.Row{}, textinput.Model{}, false
	}
	ti, ok := m.edits[row.Key]
	return row, ti, ok
}

func (m *appModel) selectedRow() (view.Row, bool) {
	if m.out.List == nil || m.selectedKey == "" {
		return view.Row{}, false
	}
	return m.out.List.Row(m.selectedKey)
}

// move shifts the selection; moving up past the first row goes back to the
// new item field.
func (m *appModel) move(delta int) {
	j := indexOf(m.shownKeys, m.selectedKey) + delta
	switch {
	case j < 0:
		m.zone = zoneNew
	case j < len(m.shownKeys):
		m.selectedKey = m.shownKeys[j]
		m.zone = zoneList
	}
}

func (m *appModel) run(h view.Handler) tea.Cmd {
	if err := h.Run(m.disp); err != nil {
		return m.setFlash(err.Error())
	}
	return nil
}

func (m *appModel) setFlash(msg string) tea.Cmd {
	m.flashSeq++
	id := m.flashSeq
	m.flash = msg
	m.log.Printf("tui: %s", msg)
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashClearMsg{id: id} })
}

func (m *appModel) tickAutosave() tea.Cmd {
	if m.ws == nil || m.autosave <= 0 {
		return nil
	}
	return tea.Tick(m.autosave, func(time.Time) tea.Msg { return autosaveTickMsg{} })
}

// saveIfDirty writes a snapshot when actions were applied since the last save.
func (m *appModel) saveIfDirty(ctx context.Context) error {
	if m.ws == nil {
		return nil
	}
	seq := m.disp.Seq()
	if seq == m.savedSeq {
		return nil
	}
	if err := m.ws.SaveStore(ctx, m.disp.Snapshot()); err != nil {
		return err
	}
	m.savedSeq = seq
	return nil
}

// persist runs once after the program exits.
func (m *appModel) persist(ctx context.Context) error {
	if m.ws == nil {
		return nil
	}
	if err := m.saveIfDirty(ctx); err != nil {
		return err
	}
	return m.ws.SaveTUIState(&store.TUIState{
		Zone:        m.zone.String(),
		SelectedKey: m.selectedKey,
	})
}

func (m *appModel) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *appModel) listHeight(rows int) int {
	if m.height <= 0 {
		return max(rows, 1)
	}
	return max(m.height-chromeHeight, 1)
}

func indexOf(keys []string, key string) int {
	if key == "" {
		return -1
	}
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

func keyAt(keys []string, i int) string {
	if i < 0 || i >= len(keys) {
		return ""
	}
	return keys[i]
}
