package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"todolist-cli/internal/action"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteFileName = "todos.sqlite"

// Workspace is a directory holding the SQLite database: the latest store
// snapshot plus an append-only journal of every applied action.
type Workspace struct {
	dir         string
	db          *sql.DB
	workspaceID string
	sessionID   string

	mu sync.Mutex
}

// JournalEntry is one row of the action journal.
type JournalEntry struct {
	Seq       int64         `json:"seq"`
	SessionID string        `json:"sessionId"`
	Type      string        `json:"type"`
	IssuedAt  time.Time     `json:"issuedAt"`
	Action    action.Action `json:"-"`
}

func OpenWorkspace(ctx context.Context, dir string) (*Workspace, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("open workspace: empty dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, sqliteFileName))
	if err != nil {
		return nil, err
	}
	// One connection keeps the pragmas below in effect for every statement.
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateWorkspace(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	wsID, err := ensureMetaUUID(ctx, db, "workspace_id")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Workspace{
		dir:         dir,
		db:          db,
		workspaceID: wsID,
		sessionID:   uuid.NewString(),
	}, nil
}

func migrateWorkspace(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			store_json TEXT NOT NULL,
			saved_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS actions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			type TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_actions_session ON actions(session_id, seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func ensureMetaUUID(ctx context.Context, db *sql.DB, key string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id := uuid.NewString()
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, id); err != nil {
		return "", err
	}
	return id, nil
}

func (w *Workspace) Dir() string       { return w.dir }
func (w *Workspace) ID() string        { return w.workspaceID }
func (w *Workspace) SessionID() string { return w.sessionID }
func (w *Workspace) DBPath() string    { return filepath.Join(w.dir, sqliteFileName) }
func (w *Workspace) Close() error      { return w.db.Close() }

// LoadStore returns the saved snapshot, or an empty store for a fresh
// workspace. A snapshot that does not parse is an error.
func (w *Workspace) LoadStore(ctx context.Context) (*Store, error) {
	var raw string
	err := w.db.QueryRowContext(ctx, `SELECT store_json FROM snapshot WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	s, err := Deserialize(raw)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", w.DBPath(), err)
	}
	return s, nil
}

func (w *Workspace) SaveStore(ctx context.Context, s *Store) error {
	raw, err := Serialize(s)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshot(id, store_json, saved_at_unixms) VALUES(1, ?, ?)`,
		raw, time.Now().UTC().UnixMilli())
	return err
}

// Append records one applied action. It satisfies dispatch.Journal.
func (w *Workspace) Append(a action.Action) error {
	b, err := action.Marshal(a)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.db.ExecContext(context.Background(),
		`INSERT INTO actions(session_id, type, payload_json, issued_at_unixms) VALUES(?, ?, ?, ?)`,
		w.sessionID, a.Type(), string(b), time.Now().UTC().UnixMilli())
	return err
}

// ReadActions returns journal entries oldest first. limit <= 0 means all.
func (w *Workspace) ReadActions(ctx context.Context, limit int) ([]JournalEntry, error) {
	q := `SELECT seq, session_id, type, payload_json, issued_at_unixms
	      FROM actions
	      ORDER BY seq ASC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = w.db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = w.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JournalEntry{}
	for rows.Next() {
		var (
			e       JournalEntry
			payload string
			tsMs    int64
		)
		if err := rows.Scan(&e.Seq, &e.SessionID, &e.Type, &payload, &tsMs); err != nil {
			return nil, err
		}
		a, err := action.Unmarshal([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("journal entry %d: %w", e.Seq, err)
		}
		e.Action = a
		e.IssuedAt = time.UnixMilli(tsMs).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
