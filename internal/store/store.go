// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists analysis runs in a local SQLite database, so
// engineers can compare model health across report revisions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hydro-engine/pkg/types"
)

const dbFile = "history.db"

// ErrRunNotFound marks a run ID with no matching record.
var ErrRunNotFound = errors.New("run not found")

// Store manages the analysis history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// cfg.HistoryDir/history.db, creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			report_file TEXT NOT NULL,
			model_file TEXT,
			analyzed_at TEXT NOT NULL,
			runoff_error REAL,
			routing_error REAL,
			flooded_count INTEGER NOT NULL,
			surcharged_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS flooded_nodes (
			run_id TEXT NOT NULL REFERENCES runs(id),
			rank INTEGER NOT NULL,
			node TEXT NOT NULL,
			max_rate REAL NOT NULL,
			total_volume REAL NOT NULL,
			PRIMARY KEY (run_id, rank)
		)`,
		`CREATE TABLE IF NOT EXISTS surcharged_conduits (
			run_id TEXT NOT NULL REFERENCES runs(id),
			rank INTEGER NOT NULL,
			link TEXT NOT NULL,
			hours_surcharged REAL NOT NULL,
			hours_above_normal REAL NOT NULL,
			PRIMARY KEY (run_id, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_analyzed_at ON runs(analyzed_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunMeta describes the inputs of one analysis run.
type RunMeta struct {
	// ReportFile is the path of the parsed report.
	ReportFile string

	// ModelFile is the companion model-definition path, if any.
	ModelFile string

	// AnalyzedAt is the run timestamp. Zero means "now".
	AnalyzedAt time.Time
}

// Record inserts one analysis run and its ranked rows in a single
// transaction and returns the generated run ID.
func (s *Store) Record(ctx context.Context, meta RunMeta, res *types.AnalysisResult) (string, error) {
	id := uuid.NewString()
	at := meta.AnalyzedAt
	if at.IsZero() {
		at = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, report_file, model_file, analyzed_at,
			runoff_error, routing_error, flooded_count, surcharged_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, meta.ReportFile, meta.ModelFile, at.UTC().Format(time.RFC3339Nano),
		nullable(res.Continuity.Runoff), nullable(res.Continuity.Routing),
		len(res.TopFloodedNodes), len(res.TopSurchargedConduits),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for i, n := range res.TopFloodedNodes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO flooded_nodes (run_id, rank, node, max_rate, total_volume)
			 VALUES (?, ?, ?, ?, ?)`,
			id, i+1, n.Node, n.MaxRate, n.TotalVolume,
		)
		if err != nil {
			return "", fmt.Errorf("inserting flooded node %s: %w", n.Node, err)
		}
	}

	for i, c := range res.TopSurchargedConduits {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO surcharged_conduits (run_id, rank, link, hours_surcharged, hours_above_normal)
			 VALUES (?, ?, ?, ?, ?)`,
			id, i+1, c.Link, c.HoursSurcharged, c.HoursAboveNormal,
		)
		if err != nil {
			return "", fmt.Errorf("inserting surcharged conduit %s: %w", c.Link, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// nullable converts an optional float into a driver-friendly value.
func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
