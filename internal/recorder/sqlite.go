package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteRecorder keeps scan history in an in-memory SQLite database and
// prunes it to the newest keep runs.
type SQLiteRecorder struct {
	db     *sqlx.DB
	keep   int
	now    func() time.Time
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens the database and runs migrations.
func NewSQLiteRecorder(dsn string, keep int) (*SQLiteRecorder, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	r := &SQLiteRecorder{
		db:     db,
		keep:   keep,
		now:    time.Now,
		logger: log.With().Str("component", "recorder").Logger(),
	}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	r.logger.Info().Int("keep", keep).Msg("Scan history opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			origin          TEXT NOT NULL,
			markets         TEXT NOT NULL,
			min_drop        REAL,
			max_drop        REAL,
			provider        TEXT,
			tickers_scanned INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS scan_matches (
			run_id        INTEGER NOT NULL REFERENCES scan_runs(id) ON DELETE CASCADE,
			position      INTEGER NOT NULL,
			ticker        TEXT NOT NULL,
			name          TEXT,
			drop_pct      REAL,
			current_price REAL,
			safety_score  INTEGER,
			assessment    TEXT,
			is_safe       BOOLEAN
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_run ON scan_matches(run_id)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:20], err)
		}
	}
	return nil
}

// RecordScan stores the run and its matches and sets run.ID.
func (r *SQLiteRecorder) RecordScan(ctx context.Context, run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.At.IsZero() {
		run.At = r.now()
	}
	markets, err := json.Marshal(run.Markets)
	if err != nil {
		return fmt.Errorf("marshal markets: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO scan_runs
		(timestamp, origin, markets, min_drop, max_drop, provider, tickers_scanned)
		VALUES (?,?,?,?,?,?,?)`,
		run.At.Unix(), run.Origin, string(markets), run.MinDrop, run.MaxDrop, run.Provider, run.TickersScanned,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if run.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("run id: %w", err)
	}
	for i, m := range run.Matches {
		if _, err := tx.ExecContext(ctx, `INSERT INTO scan_matches
			(run_id, position, ticker, name, drop_pct, current_price, safety_score, assessment, is_safe)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			run.ID, i, m.Ticker, m.Name, m.DropPct, m.CurrentPrice, m.SafetyScore, m.Assessment, m.IsSafe,
		); err != nil {
			return fmt.Errorf("insert match %s: %w", m.Ticker, err)
		}
	}
	if r.keep > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM scan_runs WHERE id NOT IN
			(SELECT id FROM scan_runs ORDER BY id DESC LIMIT ?)`, r.keep); err != nil {
			return fmt.Errorf("prune: %w", err)
		}
	}
	return tx.Commit()
}

type runRow struct {
	ID             int64   `db:"id"`
	Timestamp      int64   `db:"timestamp"`
	Origin         string  `db:"origin"`
	Markets        string  `db:"markets"`
	MinDrop        float64 `db:"min_drop"`
	MaxDrop        float64 `db:"max_drop"`
	Provider       string  `db:"provider"`
	TickersScanned int     `db:"tickers_scanned"`
}

// Recent returns up to limit runs, newest first.
func (r *SQLiteRecorder) Recent(ctx context.Context, limit int) ([]ScanRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, timestamp, origin, markets, min_drop, max_drop,
		provider, tickers_scanned FROM scan_runs ORDER BY id DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}

	runs := make([]ScanRun, 0, len(rows))
	for _, row := range rows {
		run := ScanRun{
			ID:             row.ID,
			At:             time.Unix(row.Timestamp, 0).UTC(),
			Origin:         row.Origin,
			MinDrop:        row.MinDrop,
			MaxDrop:        row.MaxDrop,
			Provider:       row.Provider,
			TickersScanned: row.TickersScanned,
			Matches:        []MatchRecord{},
		}
		if err := json.Unmarshal([]byte(row.Markets), &run.Markets); err != nil {
			return nil, fmt.Errorf("decode markets of run %d: %w", row.ID, err)
		}
		if err := r.db.SelectContext(ctx, &run.Matches, `SELECT ticker, name, drop_pct, current_price,
			safety_score, assessment, is_safe FROM scan_matches WHERE run_id = ? ORDER BY position`, row.ID); err != nil {
			return nil, fmt.Errorf("select matches of run %d: %w", row.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("Closing scan history")
	return r.db.Close()
}
