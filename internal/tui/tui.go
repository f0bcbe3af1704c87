package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"todolist-cli/internal/dispatch"
	"todolist-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	// Workspace is optional. Without one nothing is saved.
	Workspace  *store.Workspace
	Dispatcher *dispatch.Dispatcher

	Autosave  time.Duration
	Glyphs    string
	AltScreen bool
	Logger    *log.Logger

	// NewID mints task ids; defaults to uuid.NewString.
	NewID func() string
}

func Run(opts Options) error {
	if opts.Dispatcher == nil {
		return errors.New("tui: missing dispatcher")
	}
	gs, ok := parseGlyphSet(opts.Glyphs)
	if !ok {
		return fmt.Errorf("tui: unknown glyph set %q (want unicode|ascii)", opts.Glyphs)
	}
	setGlyphs(gs)
	applyThemePreference()
	applyColorProfilePreference()

	var progOpts []tea.ProgramOption
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	final, err := tea.NewProgram(newAppModel(opts), progOpts...).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(appModel); ok {
		return m.persist(context.Background())
	}
	return nil
}
