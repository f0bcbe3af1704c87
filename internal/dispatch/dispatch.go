// Package dispatch owns the store. Every mutation goes through a Dispatcher,
// one action at a time; everything else reads snapshots.
package dispatch

import (
	"fmt"
	"log"
	"sync"

	"todolist-cli/internal/action"
	"todolist-cli/internal/logutil"
	"todolist-cli/internal/statetree"
	"todolist-cli/internal/store"
)

// Journal receives every action after the reducer accepted it.
type Journal interface {
	Append(a action.Action) error
}

type Options struct {
	Journal Journal
	Logger  *log.Logger
}

type Dispatcher struct {
	mu      sync.Mutex
	st      *store.Store
	seq     uint64
	journal Journal
	log     *log.Logger
}

// New takes ownership of st. Callers must not touch st afterwards.
func New(st *store.Store, opts Options) *Dispatcher {
	if st == nil {
		st = store.New()
	}
	return &Dispatcher{
		st:      st,
		journal: opts.Journal,
		log:     logutil.OrDiscard(opts.Logger),
	}
}

// Submit runs a through the reducer and returns its error, if any. A rejected
// action is neither journaled nor counted.
func (d *Dispatcher) Submit(a action.Action) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.st.Update(a); err != nil {
		d.log.Printf("dispatch: rejected %s: %v", typeOf(a), err)
		return err
	}
	d.seq++
	if d.journal != nil {
		if err := d.journal.Append(a); err != nil {
			d.log.Printf("dispatch: journal %s (seq=%d): %v", a.Type(), d.seq, err)
		}
	}
	return nil
}

func (d *Dispatcher) SubmitStateAt(path statetree.Path, v statetree.Value) error {
	p, err := action.SetState(path, v)
	if err != nil {
		return fmt.Errorf("state at %s: %w", path, err)
	}
	return d.Submit(p)
}

func (d *Dispatcher) ClearStateAt(path statetree.Path) error {
	return d.Submit(action.ClearState(path))
}

// Snapshot returns a deep copy of the store for a render pass.
func (d *Dispatcher) Snapshot() *store.Store {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st.Clone()
}

// Seq is the number of actions applied so far.
func (d *Dispatcher) Seq() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}

func typeOf(a action.Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.Type()
}
