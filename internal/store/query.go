// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hydro-engine/pkg/types"
)

// RunSummary is the listing view of one analysis run.
type RunSummary struct {
	ID              string    `json:"id" yaml:"id"`
	ReportFile      string    `json:"report_file" yaml:"report_file"`
	AnalyzedAt      time.Time `json:"analyzed_at" yaml:"analyzed_at"`
	RunoffError     *float64  `json:"runoff_error" yaml:"runoff_error"`
	RoutingError    *float64  `json:"routing_error" yaml:"routing_error"`
	FloodedCount    int       `json:"flooded_count" yaml:"flooded_count"`
	SurchargedCount int       `json:"surcharged_count" yaml:"surcharged_count"`
}

// Run is one analysis run with its full extracted result.
type Run struct {
	RunSummary `yaml:",inline"`
	ModelFile  string               `json:"model_file,omitempty" yaml:"model_file,omitempty"`
	Result     types.AnalysisResult `json:"result" yaml:"result"`
}

// List returns run summaries, newest first. A limit of zero uses the store
// default.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, report_file, analyzed_at, runoff_error, routing_error,
			flooded_count, surcharged_count
		 FROM runs ORDER BY analyzed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		rs, err := scanRunSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Show returns the full run for an ID, including its ranked rows.
func (s *Store) Show(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, report_file, analyzed_at, runoff_error, routing_error,
			flooded_count, surcharged_count, model_file
		 FROM runs WHERE id = ?`, id)

	var (
		run       Run
		at        string
		runoff    sql.NullFloat64
		routing   sql.NullFloat64
		modelFile sql.NullString
	)
	err := row.Scan(&run.ID, &run.ReportFile, &at, &runoff, &routing,
		&run.FloodedCount, &run.SurchargedCount, &modelFile)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("looking up run: %w", err)
	}

	run.AnalyzedAt, _ = time.Parse(time.RFC3339Nano, at)
	run.RunoffError = floatPtr(runoff)
	run.RoutingError = floatPtr(routing)
	if modelFile.Valid {
		run.ModelFile = modelFile.String
	}
	run.Result.Continuity = types.ContinuityFigures{
		Runoff:  run.RunoffError,
		Routing: run.RoutingError,
	}

	run.Result.TopFloodedNodes = []types.FloodRecord{}
	frows, err := s.db.QueryContext(ctx,
		`SELECT node, max_rate, total_volume FROM flooded_nodes
		 WHERE run_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("querying flooded nodes: %w", err)
	}
	defer frows.Close()
	for frows.Next() {
		var n types.FloodRecord
		if err := frows.Scan(&n.Node, &n.MaxRate, &n.TotalVolume); err != nil {
			return nil, fmt.Errorf("scanning flooded node: %w", err)
		}
		run.Result.TopFloodedNodes = append(run.Result.TopFloodedNodes, n)
	}
	if err := frows.Err(); err != nil {
		return nil, err
	}

	run.Result.TopSurchargedConduits = []types.SurchargeRecord{}
	srows, err := s.db.QueryContext(ctx,
		`SELECT link, hours_surcharged, hours_above_normal FROM surcharged_conduits
		 WHERE run_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("querying surcharged conduits: %w", err)
	}
	defer srows.Close()
	for srows.Next() {
		var c types.SurchargeRecord
		if err := srows.Scan(&c.Link, &c.HoursSurcharged, &c.HoursAboveNormal); err != nil {
			return nil, fmt.Errorf("scanning surcharged conduit: %w", err)
		}
		run.Result.TopSurchargedConduits = append(run.Result.TopSurchargedConduits, c)
	}
	return &run, srows.Err()
}

// ExportYAML writes every recorded run, newest first, to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	summaries, err := s.List(ctx, 1<<30)
	if err != nil {
		return err
	}

	runs := make([]Run, 0, len(summaries))
	for _, rs := range summaries {
		run, err := s.Show(ctx, rs.ID)
		if err != nil {
			return err
		}
		runs = append(runs, *run)
	}

	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func scanRunSummary(rows *sql.Rows) (RunSummary, error) {
	var (
		rs      RunSummary
		at      string
		runoff  sql.NullFloat64
		routing sql.NullFloat64
	)
	err := rows.Scan(&rs.ID, &rs.ReportFile, &at, &runoff, &routing,
		&rs.FloodedCount, &rs.SurchargedCount)
	if err != nil {
		return RunSummary{}, fmt.Errorf("scanning run: %w", err)
	}
	rs.AnalyzedAt, _ = time.Parse(time.RFC3339Nano, at)
	rs.RunoffError = floatPtr(runoff)
	rs.RoutingError = floatPtr(routing)
	return rs, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
