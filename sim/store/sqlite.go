// Package store exports finished runs to a SQLite database for later analysis.
// Nothing here is read back by the simulator: each run starts from its spec.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Yannngn/theboys/sim"
	"github.com/Yannngn/theboys/sim/trace"
)

// Run is everything exported for one simulation.
type Run struct {
	ID        string // assigned by SaveRun when empty
	Seed      int64
	CreatedAt time.Time
	Report    sim.Report
	Records   []trace.Record
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID                string
	Seed              int64
	Horizon           int64
	CompletedMissions int
	TotalMissions     int
	MeanAttempts      float64
	Events            int
	CreatedAt         string
}

// SQLiteStore writes runs to a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// OpenExistingSQLite opens a database previously written by OpenSQLite.
// Unlike OpenSQLite it never creates the file.
func OpenExistingSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no such database: %s", path)
		}
		return nil, err
	}
	return OpenSQLite(path)
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			horizon INTEGER NOT NULL,
			completed_missions INTEGER NOT NULL,
			total_missions INTEGER NOT NULL,
			total_attempts INTEGER NOT NULL,
			mean_attempts REAL NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS heroes (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			hero INTEGER NOT NULL,
			experience INTEGER NOT NULL,
			patience INTEGER NOT NULL,
			speed INTEGER NOT NULL,
			skills TEXT NOT NULL,
			PRIMARY KEY (run_id, hero)
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			hero TEXT,
			base TEXT,
			mission TEXT,
			outcome TEXT,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_run_kind ON events(run_id, kind);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// SaveRun writes run in a single transaction and returns its ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) (string, error) {
	w, err := s.BeginRun(ctx, run.ID, run.Seed, run.CreatedAt)
	if err != nil {
		return "", err
	}
	for _, rec := range run.Records {
		w.Record(rec)
	}
	return w.Finish(run.Report)
}

// RunWriter streams one run into an open transaction. It is a
// trace.Recorder, so events are written as the simulation emits them
// instead of being buffered until the end.
//
// Record cannot report failures; the first error is kept, later records are
// skipped, and Finish returns it after rolling back.
type RunWriter struct {
	ctx         context.Context
	id          string
	tx          *sql.Tx
	insertEvent *sql.Stmt
	seq         int
	err         error
	done        bool
}

// BeginRun opens a transaction and inserts a placeholder runs row that
// Finish completes. An empty id is replaced with a fresh UUID and a zero
// created time with the current time.
func (s *SQLiteStore) BeginRun(ctx context.Context, id string, seed int64, created time.Time) (*RunWriter, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if created.IsZero() {
		created = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(id,seed,horizon,completed_missions,total_missions,total_attempts,mean_attempts,created_at) VALUES(?,?,0,0,0,0,0,?)`,
		id, seed, created.UTC().Format(time.RFC3339Nano),
	); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	insertEvent, err := tx.PrepareContext(ctx, `INSERT INTO events(run_id,seq,tick,kind,hero,base,mission,outcome,raw_json) VALUES(?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return &RunWriter{ctx: ctx, id: id, tx: tx, insertEvent: insertEvent}, nil
}

// ID returns the run's identifier.
func (w *RunWriter) ID() string { return w.id }

// Record inserts rec as the next event row.
func (w *RunWriter) Record(rec trace.Record) {
	if w.err != nil || w.done {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		w.err = err
		return
	}
	if _, err := w.insertEvent.ExecContext(w.ctx, w.id, w.seq, rec.Tick, rec.Kind,
		nullable(rec.Hero), nullable(rec.Base), nullable(rec.Mission), nullable(rec.Outcome), string(raw)); err != nil {
		w.err = fmt.Errorf("inserting event %d: %w", w.seq, err)
		return
	}
	w.seq++
}

// Finish fills in the run's totals and hero rows and commits. On any error,
// including one held from Record, nothing of the run is kept.
func (w *RunWriter) Finish(rep sim.Report) (string, error) {
	if w.done {
		return "", fmt.Errorf("run %s already finished", w.id)
	}
	w.done = true
	defer func() { _ = w.tx.Rollback() }()
	defer w.insertEvent.Close()

	if w.err != nil {
		return "", w.err
	}
	if _, err := w.tx.ExecContext(w.ctx,
		`UPDATE runs SET horizon=?,completed_missions=?,total_missions=?,total_attempts=?,mean_attempts=? WHERE id=?`,
		rep.Horizon, rep.CompletedMissions, rep.TotalMissions, rep.TotalAttempts, rep.MeanAttempts, w.id,
	); err != nil {
		return "", fmt.Errorf("updating run: %w", err)
	}

	insertHero, err := w.tx.PrepareContext(w.ctx, `INSERT INTO heroes(run_id,hero,experience,patience,speed,skills) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return "", err
	}
	defer insertHero.Close()
	for _, h := range rep.Heroes {
		if _, err := insertHero.ExecContext(w.ctx, w.id, int(h.ID), h.Experience, h.Patience, h.Speed, joinInts(h.Skills)); err != nil {
			return "", fmt.Errorf("inserting hero %d: %w", h.ID, err)
		}
	}

	if err := w.tx.Commit(); err != nil {
		return "", err
	}
	return w.id, nil
}

// Abort rolls the run back. It is a no-op after Finish.
func (w *RunWriter) Abort() {
	if w.done {
		return
	}
	w.done = true
	_ = w.insertEvent.Close()
	_ = w.tx.Rollback()
}

// ListRuns returns every stored run, most recent first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.seed, r.horizon, r.completed_missions, r.total_missions, r.mean_attempts, r.created_at,
		       (SELECT COUNT(*) FROM events e WHERE e.run_id = r.id)
		FROM runs r ORDER BY r.created_at DESC, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Seed, &r.Horizon, &r.CompletedMissions, &r.TotalMissions, &r.MeanAttempts, &r.CreatedAt, &r.Events); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}
