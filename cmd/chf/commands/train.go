package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/internal/dataset"
	"github.com/haritlabs/chf/internal/model"
	"github.com/haritlabs/chf/internal/training"
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the entropy weight model",
	Long: `Trains per-stratum indicator weights and scaling factors from
historical indicator tables.

The training years come from the campaign file unless --years is
given. Years whose indicator table is missing are skipped with a
warning; training fails only when no year can be loaded.

Artifacts written to the model directory:
  strata_weights.csv   - one weight per stratum and indicator
  scaling_factors.csv  - training min/max per stratum and indicator

Example:
  go run ./cmd/chf train
  go run ./cmd/chf train --years 2018,2019,2020,2021,2022`,
	RunE: runTrain,
}

var trainYears []int

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().IntSliceVar(&trainYears, "years", nil, "training years (default from campaign file)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	fmt.Println("=== CHF Model Training ===")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	years := trainYears
	if len(years) == 0 {
		sc, err := loadSeason(cfg)
		if err != nil {
			return err
		}
		years = sc.Training.Years
	}

	log.WithField("years", years).Info("Starting training")

	catalog := contracts.DefaultCatalog()
	reader := dataset.NewReader(cfg.DataDir, catalog)
	learner := training.NewLearner(catalog, reader, log)

	ctx := context.Background()

	m, err := learner.Learn(ctx, years)
	if err != nil {
		return fmt.Errorf("train model: %w", err)
	}

	store := model.NewStore(cfg.ModelDir, catalog)
	if err := store.Save(m); err != nil {
		return fmt.Errorf("save model: %w", err)
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := model.NewRepository(db.Pool).SaveModel(ctx, m); err != nil {
			return fmt.Errorf("mirror model to database: %w", err)
		}
		log.Info("Model mirrored to database")
	}

	fmt.Printf("\nTrained %d strata\n", len(m.Weights))
	fmt.Printf("  %s\n", store.WeightsPath())
	fmt.Printf("  %s\n", store.ScalingPath())
	return nil
}
