// Package history persists pipeline runs in a SQLite event log.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

// Event types written for every run.
const (
	EventTaskCompleted = "task_completed"
	EventRunCompleted  = "run_completed"
)

// Event is one row of the log.
type Event struct {
	ID        int64
	RunID     string
	Type      string
	Timestamp time.Time
	Payload   []byte
	Metadata  map[string]string
}

// RunSummary is the condensed view of a finished run.
type RunSummary struct {
	RunID       string
	Finished    time.Time
	Outcome     string
	BuildMode   string
	BuildTarget string
	Diagnostics string
}

// Store implements the run log on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the log at dbPath. Use ":memory:" in tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.FileSystemError("create history directory").WithCause(err).WithContext("path", dbPath).Build()
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "open history database").WithContext("path", dbPath).Build()
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "initialize history schema").WithContext("path", dbPath).Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		payload BLOB NOT NULL,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_run_id ON events(run_id);
	CREATE INDEX IF NOT EXISTS idx_event_type ON events(event_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds an event.
func (s *Store) Append(ctx context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(ctx, s.db, e)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) append(ctx context.Context, db execer, e Event) error {
	var metadata []byte
	if e.Metadata != nil {
		var err error
		if metadata, err = yaml.Marshal(e.Metadata); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "marshal event metadata").Build()
		}
	}
	if e.Payload == nil {
		e.Payload = []byte{}
	}
	_, err := db.ExecContext(ctx,
		"INSERT INTO events (run_id, event_type, timestamp, payload, metadata) VALUES (?, ?, ?, ?, ?)",
		e.RunID, e.Type, e.Timestamp.UnixMilli(), e.Payload, string(metadata),
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "append history event").Build()
	}
	return nil
}

// RecordRun writes one task_completed event per executed task followed by the
// run_completed event carrying the YAML report, in a single transaction.
func (s *Store) RecordRun(ctx context.Context, r *pipeline.Report) error {
	payload, err := yaml.Marshal(r)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal run report").Build()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "begin history transaction").Build()
	}
	defer func() { _ = tx.Rollback() }()

	at := r.Start
	for _, t := range r.Tasks {
		at = at.Add(t.Duration)
		meta := map[string]string{"task": string(t.Name), "result": string(t.Result), "duration_ms": formatMS(t.Duration)}
		if t.Error != "" {
			meta["error"] = t.Error
		}
		if err := s.append(ctx, tx, Event{RunID: r.RunID, Type: EventTaskCompleted, Timestamp: at, Metadata: meta}); err != nil {
			return err
		}
	}

	diags := 0
	for _, n := range r.Diagnostics {
		diags += n
	}
	meta := map[string]string{
		"outcome":      string(r.Outcome),
		"build_mode":   r.BuildMode,
		"build_target": r.BuildTarget,
		"diagnostics":  formatInt(diags),
	}
	if err := s.append(ctx, tx, Event{RunID: r.RunID, Type: EventRunCompleted, Timestamp: r.End, Payload: payload, Metadata: meta}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "commit history transaction").Build()
	}
	return nil
}

func formatMS(d time.Duration) string { return strconv.FormatInt(d.Milliseconds(), 10) }
func formatInt(n int) string          { return strconv.Itoa(n) }

// ByRun returns every event of a run in insertion order.
func (s *Store) ByRun(ctx context.Context, runID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, run_id, event_type, timestamp, payload, metadata FROM events WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "query history events").Build()
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Recent returns the latest finished runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, run_id, event_type, timestamp, payload, metadata FROM events WHERE event_type = ? ORDER BY id DESC LIMIT ?",
		EventRunCompleted, limit,
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "query recent runs").Build()
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	out := make([]RunSummary, 0, len(events))
	for _, e := range events {
		out = append(out, RunSummary{
			RunID:       e.RunID,
			Finished:    e.Timestamp,
			Outcome:     e.Metadata["outcome"],
			BuildMode:   e.Metadata["build_mode"],
			BuildTarget: e.Metadata["build_target"],
			Diagnostics: e.Metadata["diagnostics"],
		})
	}
	return out, nil
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var ts int64
		var metadata string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Type, &ts, &e.Payload, &metadata); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "scan history event").Build()
		}
		e.Timestamp = time.UnixMilli(ts)
		if metadata != "" {
			if err := yaml.Unmarshal([]byte(metadata), &e.Metadata); err != nil {
				return nil, errors.WrapError(err, errors.CategoryFileSystem, "decode event metadata").Build()
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "iterate history events").Build()
	}
	return events, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
