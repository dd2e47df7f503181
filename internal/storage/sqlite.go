// Package storage persists parse-batch snapshots to SQLite so external
// tooling can query past scans. The analytics pipeline itself never reads
// from here; every analysis run recomputes from the files.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tickbook/tickbook/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store writes scan snapshots to a SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// New opens (or creates) the snapshot database at dbPath.
func New(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the snapshot schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TIMESTAMP NOT NULL,
			folder TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			total_hours REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
			path TEXT NOT NULL,
			hierarchy TEXT NOT NULL,
			project TEXT NOT NULL,
			subproject TEXT NOT NULL,
			subproject_full TEXT NOT NULL,
			duration REAL NOT NULL,
			date TEXT,
			start_recur TEXT,
			end_recur TEXT,
			days_of_week TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS parse_errors (
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
			file TEXT NOT NULL,
			path TEXT NOT NULL,
			reason TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_snapshot ON records(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_parse_errors_snapshot ON parse_errors(snapshot_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot writes one scan's records and parse errors as a snapshot and
// returns its id. The whole snapshot commits atomically.
func (s *Store) SaveSnapshot(ctx context.Context, folder string, records []model.Record, errs []model.ParseError, totalHours float64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (created_at, folder, record_count, error_count, total_hours)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC(), folder, len(records), len(errs), totalHours)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot id: %w", err)
	}

	recordStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (snapshot_id, path, hierarchy, project, subproject, subproject_full,
			duration, date, start_recur, end_recur, days_of_week)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer func() { _ = recordStmt.Close() }()

	for _, rec := range records {
		var date, startRecur, endRecur, days any
		if rec.Date != nil {
			date = rec.Date.Format("2006-01-02")
		}
		if rec.Recurrence != nil {
			startRecur = rec.Recurrence.StartRecur.Format("2006-01-02")
			if rec.Recurrence.EndRecur != nil {
				endRecur = rec.Recurrence.EndRecur.Format("2006-01-02")
			}
			days = rec.Recurrence.Days.String()
		}
		if _, err := recordStmt.ExecContext(ctx,
			id, rec.Path, rec.Hierarchy, rec.Project, rec.Subproject, rec.SubprojectFull,
			rec.Duration, date, startRecur, endRecur, days); err != nil {
			return 0, fmt.Errorf("failed to insert record %s: %w", rec.Path, err)
		}
	}

	for _, parseErr := range errs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO parse_errors (snapshot_id, file, path, reason) VALUES (?, ?, ?, ?)`,
			id, parseErr.File, parseErr.Path, parseErr.Reason); err != nil {
			return 0, fmt.Errorf("failed to insert parse error %s: %w", parseErr.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, nil
}

// SnapshotInfo summarizes one stored snapshot.
type SnapshotInfo struct {
	CreatedAt   time.Time
	Folder      string
	ID          int64
	RecordCount int
	ErrorCount  int
	TotalHours  float64
}

// ListSnapshots returns stored snapshots, newest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, folder, record_count, error_count, total_hours
		 FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.Folder,
			&info.RecordCount, &info.ErrorCount, &info.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snapshots = append(snapshots, info)
	}
	return snapshots, rows.Err()
}
