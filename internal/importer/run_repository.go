package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRepository persists import run reports so the status command and
// the report API can read them after the process exits.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository creates a new run repository.
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Save writes a completed run report.
func (r *RunRepository) Save(ctx context.Context, report *Report) error {
	importedJSON, err := json.Marshal(report.Imported)
	if err != nil {
		return fmt.Errorf("marshal imported: %w", err)
	}
	unmatchedJSON, err := json.Marshal(report.Unmatched)
	if err != nil {
		return fmt.Errorf("marshal unmatched: %w", err)
	}

	query := `
		INSERT INTO import_runs (
			id,
			started_at,
			finished_at,
			securities_imported,
			bars_imported,
			imported,
			unmatched,
			derivation_faults
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		report.ID,
		report.StartedAt,
		report.FinishedAt,
		len(report.Imported),
		report.TotalBars(),
		importedJSON,
		unmatchedJSON,
		report.DerivationFaults,
	)
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

// GetLatest returns the most recent run report, or nil when no run has
// been recorded yet.
func (r *RunRepository) GetLatest(ctx context.Context) (*Report, error) {
	query := `
		SELECT id, started_at, finished_at, imported, unmatched, derivation_faults
		FROM import_runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	return r.scanReport(r.pool.QueryRow(ctx, query))
}

// GetByID returns the run report with the given id, or nil when absent.
func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `
		SELECT id, started_at, finished_at, imported, unmatched, derivation_faults
		FROM import_runs
		WHERE id = $1
	`

	return r.scanReport(r.pool.QueryRow(ctx, query, id))
}

func (r *RunRepository) scanReport(row pgx.Row) (*Report, error) {
	var report Report
	var importedJSON, unmatchedJSON []byte

	err := row.Scan(
		&report.ID,
		&report.StartedAt,
		&report.FinishedAt,
		&importedJSON,
		&unmatchedJSON,
		&report.DerivationFaults,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan import run: %w", err)
	}

	if err := json.Unmarshal(importedJSON, &report.Imported); err != nil {
		return nil, fmt.Errorf("unmarshal imported: %w", err)
	}
	if err := json.Unmarshal(unmatchedJSON, &report.Unmatched); err != nil {
		return nil, fmt.Errorf("unmarshal unmatched: %w", err)
	}

	return &report, nil
}
