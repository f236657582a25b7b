package project

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordRun stores one bake run's outcome and fills in the row ID.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO bake_runs (
            run_id, started_at, finished_at, mode, digits, cyclic,
            events, curves_marked, seam_issues, summary_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		nullableTime(run.FinishedAt),
		run.Mode,
		run.Digits,
		boolToInt(run.Cyclic),
		run.Events,
		run.CurvesMarked,
		run.SeamIssues,
		nullableString(run.SummaryJSON),
	)
	if err != nil {
		return fmt.Errorf("insert bake run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("bake run id: %w", err)
	}
	run.ID = id
	return nil
}

// Runs returns recorded bake runs, newest first. A non-positive limit
// returns everything.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, run_id, started_at, finished_at, mode, digits, cyclic,
        events, curves_marked, seam_issues, summary_json
        FROM bake_runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bake runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bake runs: %w", err)
	}
	return runs, nil
}

// LastRun returns the most recent bake run, or nil when none are recorded.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	runs, err := s.Runs(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
		cyclic      int
		summary     sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&startedRaw,
		&finishedRaw,
		&run.Mode,
		&run.Digits,
		&cyclic,
		&run.Events,
		&run.CurvesMarked,
		&run.SeamIssues,
		&summary,
	); err != nil {
		return nil, fmt.Errorf("scan bake run: %w", err)
	}
	if t, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = t
	}
	if finishedRaw.Valid {
		if t, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &t
		}
	}
	run.Cyclic = cyclic != 0
	if summary.Valid {
		run.SummaryJSON = summary.String
	}
	return &run, nil
}
