package model

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haritlabs/chf/internal/contracts"
)

// Repository mirrors trained model artifacts into Postgres. The CSV
// artifacts remain the system of record; the database copy serves the
// API and downstream reporting.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new model repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveModel replaces the stored model with m in one transaction.
func (r *Repository) SaveModel(ctx context.Context, m *contracts.Model) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM chf.strata_weights"); err != nil {
		return fmt.Errorf("failed to delete old weights: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM chf.scaling_factors"); err != nil {
		return fmt.Errorf("failed to delete old scaling factors: %w", err)
	}

	weightsQuery := `
		INSERT INTO chf.strata_weights (strata_id, indicator, weight)
		VALUES ($1, $2, $3)
	`
	scalingQuery := `
		INSERT INTO chf.scaling_factors (strata_id, indicator, min_value, max_value)
		VALUES ($1, $2, $3, $4)
	`

	for _, stratumID := range m.Strata() {
		for indicator, w := range m.Weights[stratumID].Weights {
			if _, err := tx.Exec(ctx, weightsQuery, stratumID, indicator, w); err != nil {
				return fmt.Errorf("failed to insert weight for stratum %s: %w", stratumID, err)
			}
		}
		for _, sf := range m.Scaling[stratumID] {
			if _, err := tx.Exec(ctx, scalingQuery, sf.StratumID, sf.Indicator, sf.Min, sf.Max); err != nil {
				return fmt.Errorf("failed to insert scaling factor for stratum %s: %w", stratumID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetModel reads the stored model back. Returns
// contracts.ErrModelMissing when no weights rows exist.
func (r *Repository) GetModel(ctx context.Context) (*contracts.Model, error) {
	m := contracts.NewModel()

	rows, err := r.pool.Query(ctx, "SELECT strata_id, indicator, weight FROM chf.strata_weights")
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stratumID, indicator string
		var weight float64
		if err := rows.Scan(&stratumID, &indicator, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan weight row: %w", err)
		}
		w, ok := m.Weights[stratumID]
		if !ok {
			w = contracts.StratumWeights{StratumID: stratumID, Weights: make(map[string]float64)}
		}
		w.Weights[indicator] = weight
		m.Weights[stratumID] = w
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weight rows: %w", err)
	}

	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("%w: no weights stored", contracts.ErrModelMissing)
	}

	scalingRows, err := r.pool.Query(ctx, "SELECT strata_id, indicator, min_value, max_value FROM chf.scaling_factors")
	if err != nil {
		return nil, fmt.Errorf("failed to query scaling factors: %w", err)
	}
	defer scalingRows.Close()

	for scalingRows.Next() {
		var sf contracts.ScalingFactor
		if err := scalingRows.Scan(&sf.StratumID, &sf.Indicator, &sf.Min, &sf.Max); err != nil {
			return nil, fmt.Errorf("failed to scan scaling row: %w", err)
		}
		if m.Scaling[sf.StratumID] == nil {
			m.Scaling[sf.StratumID] = make(map[string]contracts.ScalingFactor)
		}
		m.Scaling[sf.StratumID][sf.Indicator] = sf
	}
	if err := scalingRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scaling rows: %w", err)
	}

	return m, nil
}
