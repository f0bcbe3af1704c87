package model

import (
	"encoding/json"
	"testing"
)

func TestFilterTasks_KeepsOrderAndNeverReindexes(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "a", Title: "A", Completed: true},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C", Completed: true},
	}

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"a", "b", "c"}},
		{FilterActive, []string{"b"}},
		{FilterCompleted, []string{"a", "c"}},
	}
	for _, tt := range tests {
		got := FilterTasks(tasks, tt.filter)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %d tasks; want %d", tt.filter, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Fatalf("%s: row %d id=%q; want %q", tt.filter, i, got[i].ID, tt.want[i])
			}
		}
	}
}

func TestFilter_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(FilterCompleted)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"completed"` {
		t.Fatalf("got %s", b)
	}

	var f Filter
	if err := json.Unmarshal([]byte(`"Active"`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f != FilterActive {
		t.Fatalf("got %v; want active", f)
	}
	if err := json.Unmarshal([]byte(`"someday"`), &f); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}

func TestFilter_NextCycles(t *testing.T) {
	t.Parallel()

	f := FilterAll
	seen := []Filter{}
	for i := 0; i < 4; i++ {
		seen = append(seen, f)
		f = f.Next()
	}
	want := []Filter{FilterAll, FilterActive, FilterCompleted, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("step %d: got %v; want %v", i, seen[i], want[i])
		}
	}
}
