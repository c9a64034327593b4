// Package joblog keeps a per-document run ledger in a local SQLite file.
// The ledger is diagnostics only: writes are best-effort and never abort
// the pipeline.
package joblog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/research-tools/paperinator/constants"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS extract_jobs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	filename    TEXT NOT NULL,
	cache_key   TEXT NOT NULL,
	status      TEXT NOT NULL,
	method      TEXT,
	pages       INTEGER,
	duration_ms INTEGER,
	error       TEXT,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_extract_jobs_run ON extract_jobs (run_id);
`

// Entry is one terminal per-document outcome.
type Entry struct {
	RunID    string
	Filename string
	CacheKey string
	Status   constants.JobStatus
	Method   string
	Pages    int
	Duration time.Duration
	Error    string
}

type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the ledger database at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return &Ledger{db: db, logger: logger}, nil
}

// Record inserts one entry. A nil ledger (disabled) and insert failures are
// both no-ops beyond a log line.
func (l *Ledger) Record(ctx context.Context, e Entry) {
	if l == nil || l.db == nil {
		return
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO extract_jobs (run_id, filename, cache_key, status, method, pages, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Filename, e.CacheKey, string(e.Status), e.Method, e.Pages, e.Duration.Milliseconds(), e.Error,
	)
	if err != nil {
		l.logger.Warn("joblog.record.failed", "filename", e.Filename, "error", err)
	}
}

// Count returns the number of entries recorded for a run.
func (l *Ledger) Count(ctx context.Context, runID string) (int, error) {
	if l == nil || l.db == nil {
		return 0, nil
	}
	var n int
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM extract_jobs WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return n, nil
}

func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}
