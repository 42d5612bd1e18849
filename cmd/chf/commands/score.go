package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/internal/dataset"
	"github.com/haritlabs/chf/internal/model"
	"github.com/haritlabs/chf/internal/scoring"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute composite scores",
	Long: `Applies the trained model to per-year indicator tables and writes
one composite score per administrative unit.

The scoring years come from the campaign file unless --years is
given. Years whose indicator table is missing are skipped with a
warning, as are units whose stratum has no trained model. Requires a
prior train run; fails when the model artifacts are absent.

Example:
  go run ./cmd/chf score
  go run ./cmd/chf score --years 2023,2024`,
	RunE: runScore,
}

var scoreYears []int

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().IntSliceVar(&scoreYears, "years", nil, "scoring years (default from campaign file)")
}

func runScore(cmd *cobra.Command, args []string) error {
	fmt.Println("=== CHF Scoring ===")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	years := scoreYears
	if len(years) == 0 {
		sc, err := loadSeason(cfg)
		if err != nil {
			return err
		}
		years = sc.Scoring.Years
	}

	log.WithField("years", years).Info("Starting scoring")

	catalog := contracts.DefaultCatalog()
	store := model.NewStore(cfg.ModelDir, catalog)

	m, err := store.Load()
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	reader := dataset.NewReader(cfg.DataDir, catalog)
	calculator := scoring.NewCalculator(catalog, reader, log)

	ctx := context.Background()

	records, err := calculator.Score(ctx, m, years)
	if err != nil {
		return fmt.Errorf("score years: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("\nNo units scored, no output written")
		return nil
	}

	path := filepath.Join(cfg.ResultsDir, dataset.ScoresFileName)
	if err := dataset.WriteScores(path, records); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := scoring.NewRepository(db.Pool).SaveScores(ctx, records); err != nil {
			return fmt.Errorf("mirror scores to database: %w", err)
		}
		log.Info("Scores mirrored to database")
	}

	fmt.Printf("\nScored %d units\n", len(records))
	fmt.Printf("  %s\n", path)
	return nil
}
