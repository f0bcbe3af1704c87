package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const tuiStateFileName = "tui_state.json"

// TUIState is terminal chrome that is not part of the store: which zone had
// focus and which row was selected. It is best effort; callers tolerate
// missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Zone is one of: new|list
	Zone string `json:"zone,omitempty"`

	// SelectedKey is the task id under the list cursor.
	SelectedKey string `json:"selectedKey,omitempty"`
}

func (w *Workspace) tuiStatePath() string {
	return filepath.Join(w.dir, tuiStateFileName)
}

func (w *Workspace) LoadTUIState() (*TUIState, error) {
	b, err := os.ReadFile(w.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (w *Workspace) SaveTUIState(st *TUIState) error {
	if st == nil {
		return nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := w.tuiStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
