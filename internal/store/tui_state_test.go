package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := OpenWorkspace(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("OpenWorkspace: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	ws := openTestWorkspace(t)

	// Missing file => default state.
	st0, err := ws.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{Version: 1, Zone: "list", SelectedKey: "task-b"}
	if err := ws.SaveTUIState(want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	got, err := ws.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestTUIState_CorruptFileFallsBackToDefault(t *testing.T) {
	t.Parallel()

	ws := openTestWorkspace(t)
	if err := os.WriteFile(filepath.Join(ws.Dir(), tuiStateFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ws.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if got.Version != 1 || got.Zone != "" || got.SelectedKey != "" {
		t.Fatalf("expected default state, got %#v", got)
	}
}
