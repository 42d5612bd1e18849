package scoring

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haritlabs/chf/internal/contracts"
)

// Repository mirrors computed scores into Postgres. The CSV artifact
// remains the system of record; the database copy serves the API.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new scoring repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveScores replaces the stored scores for every year present in
// records, in one transaction.
func (r *Repository) SaveScores(ctx context.Context, records []contracts.ScoreRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	years := make(map[int]struct{})
	for _, rec := range records {
		years[rec.Year] = struct{}{}
	}
	for year := range years {
		if _, err := tx.Exec(ctx, "DELETE FROM chf.scores WHERE year = $1", year); err != nil {
			return fmt.Errorf("failed to delete old scores for year %d: %w", year, err)
		}
	}

	query := `
		INSERT INTO chf.scores (year, unit_id, strata_id, chf_score)
		VALUES ($1, $2, $3, $4)
	`

	for _, rec := range records {
		if _, err := tx.Exec(ctx, query, rec.Year, rec.UnitID, rec.StratumID, rec.Score); err != nil {
			return fmt.Errorf("failed to insert score for unit %s: %w", rec.UnitID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetScores retrieves one year's scores ordered by stratum and unit.
func (r *Repository) GetScores(ctx context.Context, year int) ([]contracts.ScoreRecord, error) {
	query := `
		SELECT year, unit_id, strata_id, chf_score
		FROM chf.scores
		WHERE year = $1
		ORDER BY strata_id, unit_id
	`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	results := make([]contracts.ScoreRecord, 0)

	for rows.Next() {
		var rec contracts.ScoreRecord
		if err := rows.Scan(&rec.Year, &rec.UnitID, &rec.StratumID, &rec.Score); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score rows: %w", err)
	}

	return results, nil
}
