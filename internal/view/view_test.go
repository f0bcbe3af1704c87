package view

import (
	"errors"
	"fmt"
	"testing"

	"todolist-cli/internal/action"
	"todolist-cli/internal/dispatch"
	"todolist-cli/internal/model"
	"todolist-cli/internal/statetree"
	"todolist-cli/internal/store"

	"github.com/google/go-cmp/cmp"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func render(d *dispatch.Dispatcher, newID func() string) ContainerOutput {
	return Container(d.Snapshot(), newID)
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func newDispatcher(tasks ...model.Task) *dispatch.Dispatcher {
	st := store.New()
	st.Tasks = append(st.Tasks, tasks...)
	return dispatch.New(st, dispatch.Options{})
}

func TestContainer_NewItemFlow(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	ids := seqIDs()

	out := render(d, ids)
	if out.List != nil || out.Footer != nil {
		t.Fatalf("expected no list or footer for an empty store")
	}

	// Blank buffer: nothing happens.
	must(t, out.OnNewItemSubmit(d))
	if d.Seq() != 0 {
		t.Fatalf("blank submit dispatched %d actions", d.Seq())
	}

	must(t, out.OnNewItemInput("Buy milk", d))
	out = render(d, ids)
	if out.NewItemText != "Buy milk" {
		t.Fatalf("NewItemText: got %q", out.NewItemText)
	}
	must(t, out.OnNewItemSubmit(d))

	out = render(d, ids)
	if out.NewItemText != "" {
		t.Fatalf("expected buffer reset, got %q", out.NewItemText)
	}
	want := []model.Task{{ID: "id-1", Title: "Buy milk"}}
	if diff := cmp.Diff(want, d.Snapshot().Tasks); diff != "" {
		t.Fatalf("tasks (-want +got):\n%s", diff)
	}
	if out.List == nil || out.Footer == nil {
		t.Fatalf("expected list and footer once a task exists")
	}
	if out.Footer.CountLabel != "1 item left" {
		t.Fatalf("CountLabel: got %q", out.Footer.CountLabel)
	}
}

func TestContainer_SubmitKeepsFilter(t *testing.T) {
	t.Parallel()

	d := newDispatcher(model.Task{ID: "a", Title: "A"})
	ids := seqIDs()

	out := render(d, ids)
	must(t, out.Footer.Select(model.FilterCompleted, d))
	must(t, render(d, ids).OnNewItemInput("B", d))
	must(t, render(d, ids).OnNewItemSubmit(d))

	out = render(d, ids)
	if out.Filter != model.FilterCompleted {
		t.Fatalf("filter reset by submit: %v", out.Filter)
	}
	if len(out.List.Rows) != 0 {
		t.Fatalf("expected no completed rows, got %v", out.List.Keys())
	}
}

func TestContainer_ToggleAllAndCounts(t *testing.T) {
	t.Parallel()

	d := newDispatcher(model.Task{ID: "a"}, model.Task{ID: "b", Completed: true})
	out := render(d, nil)
	if out.ActiveCount != 1 || out.CompletedCount != 1 || out.AllCompleted {
		t.Fatalf("unexpected counts: %+v", out)
	}
	must(t, out.OnToggleAll(d))
	out = render(d, nil)
	if !out.AllCompleted || out.ActiveCount != 0 {
		t.Fatalf("expected all completed: %+v", out)
	}
	if !out.Footer.ShowClearCompleted {
		t.Fatalf("expected clear-completed to show")
	}
	must(t, out.Footer.OnClearCompleted(d))
	out = render(d, nil)
	if out.List != nil || out.Footer != nil {
		t.Fatalf("expected empty view after clearing")
	}
}

func TestTodolist_KeysAreTaskIDs(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	out := Todolist(statetree.At(statetree.Path{TodolistKey}), tasks)
	if diff := cmp.Diff([]string{"c", "a", "b"}, out.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	for _, r := range out.Rows {
		want := statetree.Path{TodolistKey, r.Key}
		if !r.Task.Path.Equal(want) {
			t.Fatalf("row %s mounted at %s, want %s", r.Key, r.Task.Path, want)
		}
	}
}

// Filtering [A,B,C] down to [B] and back must not lose B's edit buffer.
func TestKeyedReconciliation_FilterRoundTripKeepsBuffer(t *testing.T) {
	t.Parallel()

	d := newDispatcher(
		model.Task{ID: "A", Title: "a", Completed: true},
		model.Task{ID: "B", Title: "b"},
		model.Task{ID: "C", Title: "c", Completed: true},
	)

	out := render(d, nil)
	rowB, _ := out.List.Row("B")
	must(t, rowB.Task.OnBeginEdit(d))
	rowB, _ = render(d, nil).List.Row("B")
	must(t, rowB.Task.OnEditInput("b, half typed", d))

	before := render(d, nil)
	bufBefore, _ := before.List.Row("B")

	must(t, before.Footer.Select(model.FilterActive, d))
	filtered := render(d, nil)
	if diff := cmp.Diff([]string{"B"}, filtered.List.Keys()); diff != "" {
		t.Fatalf("filtered keys (-want +got):\n%s", diff)
	}
	diff := Reconcile(before.List.Keys(), filtered.List.Keys())
	if !cmp.Equal(diff.Retained, []string{"B"}) || !cmp.Equal(diff.Removed, []string{"A", "C"}) || len(diff.Added) != 0 {
		t.Fatalf("unexpected diff: %+v", diff)
	}

	must(t, filtered.Footer.Select(model.FilterAll, d))
	after := render(d, nil)
	bufAfter, _ := after.List.Row("B")

	if bufBefore.Task.EditText != "b, half typed" {
		t.Fatalf("precondition: buffer %q", bufBefore.Task.EditText)
	}
	if bufAfter.Task.EditText != bufBefore.Task.EditText || bufAfter.Task.Mode != Editing {
		t.Fatalf("B lost its local state: before=%+v after=%+v", bufBefore.Task, bufAfter.Task)
	}
}

func TestTask_EditStateMachine(t *testing.T) {
	t.Parallel()

	d := newDispatcher(model.Task{ID: "a", Title: "Buy milk"}, model.Task{ID: "b", Title: "Walk dog"})

	row := func(key string) TaskOutput {
		t.Helper()
		r, ok := render(d, nil).List.Row(key)
		if !ok {
			t.Fatalf("row %s not rendered", key)
		}
		return r.Task
	}

	if row("a").Mode != Viewing {
		t.Fatalf("initial mode should be viewing")
	}

	// Begin: parent records the id, buffer starts from the title.
	must(t, row("a").OnBeginEdit(d))
	a := row("a")
	if a.Mode != Editing || a.EditText != "Buy milk" {
		t.Fatalf("after begin: %+v", a)
	}
	if row("b").Mode != Viewing {
		t.Fatalf("only one row may edit at a time")
	}

	// Cancel: no Save, buffer edits discarded from the domain.
	must(t, a.OnEditInput("Buy oat milk", d))
	seq := d.Seq()
	must(t, row("a").OnCancel(d))
	if row("a").Mode != Viewing {
		t.Fatalf("cancel should leave editing")
	}
	if got := d.Snapshot().Tasks[0].Title; got != "Buy milk" {
		t.Fatalf("cancel saved the buffer: %q", got)
	}
	if got := d.Seq() - seq; got != 1 {
		t.Fatalf("cancel dispatched %d actions, want only the state patch", got)
	}

	// Commit: Save then leave editing.
	must(t, row("a").OnBeginEdit(d))
	must(t, row("a").OnEditInput("Buy oat milk", d))
	must(t, row("a").OnCommit(d))
	if row("a").Mode != Viewing {
		t.Fatalf("commit should leave editing")
	}
	if got := d.Snapshot().Tasks[0].Title; got != "Buy oat milk" {
		t.Fatalf("commit did not save: %q", got)
	}

	// Commit while viewing (a stray blur) does nothing.
	seq = d.Seq()
	must(t, row("b").OnCommit(d))
	if d.Seq() != seq {
		t.Fatalf("commit while viewing dispatched")
	}
}

func TestTask_CommitOfDeletedTaskKeepsEditing(t *testing.T) {
	t.Parallel()

	d := newDispatcher(model.Task{ID: "a", Title: "A"})
	r, _ := render(d, nil).List.Row("a")
	must(t, r.Task.OnBeginEdit(d))
	r, _ = render(d, nil).List.Row("a")
	stale := r.Task

	must(t, d.Submit(action.Destroy{ID: "a"}))

	err := stale.OnCommit(d)
	var nf *store.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "a" {
		t.Fatalf("expected not found for a, got %v", err)
	}
	st := statetree.Read[TodolistState](d.Snapshot().Cursor().Pick(TodolistKey))
	if !st.Editing("a") {
		t.Fatalf("failed commit should keep the editing id")
	}
}

func TestTask_ToggleAndDestroy(t *testing.T) {
	t.Parallel()

	d := newDispatcher(model.Task{ID: "a"}, model.Task{ID: "b"})
	r, _ := render(d, nil).List.Row("a")
	must(t, r.Task.OnToggle(d))
	r, _ = render(d, nil).List.Row("b")
	must(t, r.Task.OnDestroy(d))

	want := []model.Task{{ID: "a", Completed: true}}
	if diff := cmp.Diff(want, d.Snapshot().Tasks); diff != "" {
		t.Fatalf("tasks (-want +got):\n%s", diff)
	}
}

func TestFooter_LabelsAndSharedHandler(t *testing.T) {
	t.Parallel()

	var picked []model.Filter
	onFilter := func(f model.Filter, _ Dispatcher) error {
		picked = append(picked, f)
		return nil
	}
	out := Footer(3, 2, model.FilterActive, onFilter, nil)

	if out.CountLabel != "3 items left" {
		t.Fatalf("CountLabel: %q", out.CountLabel)
	}
	if ItemsLeft(0) != "0 items left" || ItemsLeft(1) != "1 item left" {
		t.Fatalf("unexpected pluralisation")
	}
	wantLinks := []FilterLink{
		{Filter: model.FilterAll, Label: "All"},
		{Filter: model.FilterActive, Label: "Active", Selected: true},
		{Filter: model.FilterCompleted, Label: "Completed"},
	}
	if diff := cmp.Diff(wantLinks, out.Links); diff != "" {
		t.Fatalf("links (-want +got):\n%s", diff)
	}
	for _, l := range out.Links {
		must(t, out.Select(l.Filter, nil))
	}
	if diff := cmp.Diff(model.Filters, picked); diff != "" {
		t.Fatalf("shared handler calls (-want +got):\n%s", diff)
	}
	if !out.ShowClearCompleted {
		t.Fatalf("expected clear completed with 2 completed")
	}
	if Footer(1, 0, model.FilterAll, nil, nil).ShowClearCompleted {
		t.Fatalf("clear completed shown with nothing completed")
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	got := Reconcile([]string{"a", "b", "c"}, []string{"c", "d", "a"})
	want := Diff{Retained: []string{"c", "a"}, Added: []string{"d"}, Removed: []string{"b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diff (-want +got):\n%s", diff)
	}
}

func TestResolveFocus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prev      []string
		prevIndex int
		next      []string
		want      int
	}{
		{name: "same key moves", prev: []string{"a", "b", "c"}, prevIndex: 1, next: []string{"b", "c"}, want: 0},
		{name: "gone picks following", prev: []string{"a", "b", "c"}, prevIndex: 1, next: []string{"a", "c"}, want: 1},
		{name: "gone at end picks preceding", prev: []string{"a", "b", "c"}, prevIndex: 2, next: []string{"a", "b"}, want: 1},
		{name: "empty next", prev: []string{"a"}, prevIndex: 0, next: nil, want: -1},
		{name: "no previous selection", prev: nil, prevIndex: -1, next: []string{"a"}, want: 0},
		{name: "nothing survives", prev: []string{"a", "b"}, prevIndex: 1, next: []string{"x", "y", "z"}, want: 1},
	}
	for _, tt := range tests {
		if got := ResolveFocus(tt.prev, tt.prevIndex, tt.next); got != tt.want {
			t.Fatalf("%s: got %d want %d", tt.name, got, tt.want)
		}
	}
}

func TestEffectRunner_FiresOnTransitionsOnly(t *testing.T) {
	t.Parallel()

	var r EffectRunner
	focus := func(editing bool) []Effect {
		return []Effect{{Key: "a", Kind: FocusEdit, Deps: []any{editing}}}
	}
	countFocus := func(es []Effect) int {
		n := 0
		for _, e := range es {
			if FocusRequested(e) {
				n++
			}
		}
		return n
	}

	if due := r.Due(focus(false)); len(due) != 1 || countFocus(due) != 0 {
		t.Fatalf("first mount: due=%v", due)
	}
	if due := r.Due(focus(false)); len(due) != 0 {
		t.Fatalf("unchanged deps fired: %v", due)
	}
	if due := r.Due(focus(true)); countFocus(due) != 1 {
		t.Fatalf("entering edit should request focus: %v", due)
	}
	if due := r.Due(focus(true)); len(due) != 0 {
		t.Fatalf("re-render while editing fired again: %v", due)
	}
	if due := r.Due(focus(false)); len(due) != 1 || countFocus(due) != 0 {
		t.Fatalf("leaving edit should fire without focus: %v", due)
	}

	// The row disappears, then comes back while editing: a fresh mount.
	if due := r.Due(nil); len(due) != 0 {
		t.Fatalf("unexpected due for empty render: %v", due)
	}
	if due := r.Due(focus(true)); countFocus(due) != 1 {
		t.Fatalf("remount while editing should request focus: %v", due)
	}
}

func TestDepsChanged(t *testing.T) {
	t.Parallel()

	if DepsChanged([]any{true}, []any{true}) {
		t.Fatalf("equal deps reported changed")
	}
	if !DepsChanged([]any{true}, []any{false}) || !DepsChanged(nil, []any{false}) {
		t.Fatalf("changed deps not reported")
	}
}
