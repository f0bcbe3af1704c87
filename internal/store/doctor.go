package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todolist-cli/internal/action"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

var ErrDoctorIssuesFound = errors.New("doctor: issues found")

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Seq     int64            `json:"seq,omitempty"`
	Type    string           `json:"type,omitempty"`
}

type DoctorReport struct {
	WorkspaceID    string        `json:"workspaceId"`
	JournalEntries int           `json:"journalEntries"`
	Issues         []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the database, the snapshot and the journal. Problems are
// reported as issues, never returned as errors.
//
// Replaying the journal onto an empty store should reproduce the snapshot.
// It does not after an import, or when a session ended before its last
// autosave; both are warnings.
func (w *Workspace) Doctor(ctx context.Context) DoctorReport {
	r := DoctorReport{WorkspaceID: w.workspaceID}
	add := func(it DoctorIssue) { r.Issues = append(r.Issues, it) }

	var integrity string
	if err := w.db.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&integrity); err != nil {
		add(DoctorIssue{Level: DoctorIssueLevelError, Code: "integrity_check_failed", Message: err.Error()})
	} else if strings.TrimSpace(integrity) != "ok" {
		add(DoctorIssue{Level: DoctorIssueLevelError, Code: "sqlite_corrupt", Message: integrity})
	}

	var snap *Store
	var raw string
	err := w.db.QueryRowContext(ctx, `SELECT store_json FROM snapshot WHERE id = 1`).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		snap = New()
	case err != nil:
		add(DoctorIssue{Level: DoctorIssueLevelError, Code: "snapshot_read_failed", Message: err.Error()})
	default:
		if snap, err = Deserialize(raw); err != nil {
			add(DoctorIssue{Level: DoctorIssueLevelError, Code: "snapshot_invalid", Message: err.Error()})
		}
	}

	replayed, ok := w.doctorJournal(ctx, &r)
	if snap != nil && ok && !snap.Equal(replayed) {
		add(DoctorIssue{
			Level:   DoctorIssueLevelWarn,
			Code:    "snapshot_journal_diverged",
			Message: fmt.Sprintf("replaying %d journal entries does not reproduce the snapshot", r.JournalEntries),
		})
	}

	if r.Issues == nil {
		r.Issues = []DoctorIssue{}
	}
	return r
}

// doctorJournal replays every journal entry onto an empty store. ok is false
// when an entry could not be read at all.
func (w *Workspace) doctorJournal(ctx context.Context, r *DoctorReport) (*Store, bool) {
	rows, err := w.db.QueryContext(ctx, `SELECT seq, type, payload_json FROM actions ORDER BY seq ASC`)
	if err != nil {
		r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "journal_read_failed", Message: err.Error()})
		return nil, false
	}
	defer rows.Close()

	replayed := New()
	ok := true
	for rows.Next() {
		var (
			seq     int64
			typ     string
			payload string
		)
		if err := rows.Scan(&seq, &typ, &payload); err != nil {
			r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "journal_read_failed", Message: err.Error()})
			return nil, false
		}
		r.JournalEntries++

		a, err := action.Unmarshal([]byte(payload))
		if err != nil {
			r.Issues = append(r.Issues, DoctorIssue{
				Level: DoctorIssueLevelError, Code: "journal_invalid", Message: err.Error(), Seq: seq, Type: typ,
			})
			ok = false
			continue
		}
		if a.Type() != typ {
			r.Issues = append(r.Issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "journal_type_mismatch",
				Message: fmt.Sprintf("column says %s, payload says %s", typ, a.Type()),
				Seq:     seq,
				Type:    typ,
			})
		}
		if err := replayed.Update(a); err != nil {
			r.Issues = append(r.Issues, DoctorIssue{
				Level: DoctorIssueLevelWarn, Code: "journal_rejected", Message: err.Error(), Seq: seq, Type: typ,
			})
		}
	}
	if err := rows.Err(); err != nil {
		r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "journal_read_failed", Message: err.Error()})
		return nil, false
	}
	return replayed, ok
}
