package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/harness"
)

// ErrRunNotFound is returned when a run ID is not in the ledger.
var ErrRunNotFound = errors.New("run not found")

// Run is the stored header of one conformance run.
type Run struct {
	ID         string          `json:"id"`
	Seq        int64           `json:"seq"`
	Suite      string          `json:"suite"`
	Backend    backend.ID      `json:"backend"`
	StartedAt  time.Time       `json:"started_at"`
	Incomplete bool            `json:"incomplete,omitempty"`
	Summary    harness.Summary `json:"summary"`
}

// RunFilter narrows ListRuns. Empty fields match everything.
type RunFilter struct {
	Suite   string
	Backend backend.ID
}

// SaveReport records a report as a new run and returns its ID. The run and
// its verdicts are written in one transaction.
func (s *Store) SaveReport(ctx context.Context, r *harness.Report) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save report: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return "", fmt.Errorf("save report: next seq: %w", err)
	}

	id := s.ids.Generate()
	sum := r.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, suite, backend, started_at, incomplete, total, pass, fail, known_failure, gap, declined, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id, seq, r.Suite, string(r.Backend),
		s.clock.Now().UTC().Format(time.RFC3339Nano),
		r.Incomplete,
		sum.Total, sum.Pass, sum.Fail, sum.KnownFailure, sum.Gap, sum.Declined, sum.Error,
	)
	if err != nil {
		return "", fmt.Errorf("save report: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO verdicts (run_id, seq, scenario, op, status, diagnostic, gaps)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("save report: prepare verdicts: %w", err)
	}
	defer stmt.Close()

	for i, v := range r.Verdicts {
		gaps, err := marshalGaps(v.Gaps)
		if err != nil {
			return "", fmt.Errorf("save report: verdict %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, v.Scenario, string(v.Op), string(v.Status), v.Diagnostic, gaps); err != nil {
			return "", fmt.Errorf("save report: insert verdict %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save report: commit: %w", err)
	}
	return id, nil
}

const runColumns = `id, seq, suite, backend, started_at, incomplete, total, pass, fail, known_failure, gap, declined, error`

// ReadRun returns the header of one run.
// Returns ErrRunNotFound if the ID is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// ListRuns returns matching runs ordered by seq ascending.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, f RunFilter) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE (? = '' OR suite = ?) AND (? = '' OR backend = ?)
		ORDER BY seq ASC
	`, f.Suite, f.Suite, string(f.Backend), string(f.Backend))
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadVerdicts returns a run's verdicts in the order they were recorded.
func (s *Store) ReadVerdicts(ctx context.Context, runID string) ([]harness.Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario, op, status, diagnostic, gaps
		FROM verdicts
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	verdicts := []harness.Verdict{}
	for rows.Next() {
		var (
			v          harness.Verdict
			op, status string
			gaps       string
		)
		if err := rows.Scan(&v.Scenario, &op, &status, &v.Diagnostic, &gaps); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.Op = backend.Op(op)
		v.Status = harness.Status(status)
		if v.Gaps, err = unmarshalGaps(gaps); err != nil {
			return nil, fmt.Errorf("scan verdict %s: %w", v.Scenario, err)
		}
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return verdicts, nil
}

// ReadReport rebuilds the report a run was saved from.
func (s *Store) ReadReport(ctx context.Context, id string) (*harness.Report, error) {
	run, err := s.ReadRun(ctx, id)
	if err != nil {
		return nil, err
	}
	verdicts, err := s.ReadVerdicts(ctx, id)
	if err != nil {
		return nil, err
	}
	return &harness.Report{
		Suite:      run.Suite,
		Backend:    run.Backend,
		Verdicts:   verdicts,
		Summary:    run.Summary,
		Incomplete: run.Incomplete,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		backendID string
		started   string
	)
	sum := &run.Summary
	err := row.Scan(&run.ID, &run.Seq, &run.Suite, &backendID, &started, &run.Incomplete,
		&sum.Total, &sum.Pass, &sum.Fail, &sum.KnownFailure, &sum.Gap, &sum.Declined, &sum.Error)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Backend = backend.ID(backendID)
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("scan run %s: started_at: %w", run.ID, err)
	}
	return run, nil
}

// Gaps are stored as a JSON array so an empty list round-trips as nil.
func marshalGaps(gaps []string) (string, error) {
	if len(gaps) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(gaps)
	if err != nil {
		return "", fmt.Errorf("marshal gaps: %w", err)
	}
	return string(data), nil
}

func unmarshalGaps(s string) ([]string, error) {
	var gaps []string
	if err := json.Unmarshal([]byte(s), &gaps); err != nil {
		return nil, fmt.Errorf("unmarshal gaps: %w", err)
	}
	if len(gaps) == 0 {
		return nil, nil
	}
	return gaps, nil
}
