package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/internal/dataset"
	"github.com/haritlabs/chf/internal/model"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline status",
	Long: `Shows the current campaign, trained model, and scores artifacts.

Example:
  go run ./cmd/chf status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== CHF Status ===")

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	// Campaign
	sc, err := loadSeason(cfg)
	if err != nil {
		fmt.Printf("\nCampaign:  unavailable (%v)\n", err)
	} else {
		fmt.Printf("\nCampaign:  %s (%s)\n", sc.Meta.CampaignID, sc.Meta.Crop)
		fmt.Printf("  training years: %v\n", sc.Training.Years)
		fmt.Printf("  scoring years:  %v\n", sc.Scoring.Years)
	}

	// Model
	catalog := contracts.DefaultCatalog()
	store := model.NewStore(cfg.ModelDir, catalog)

	m, err := store.Load()
	switch {
	case errors.Is(err, contracts.ErrModelMissing):
		fmt.Println("\nModel:     not trained")
	case err != nil:
		fmt.Printf("\nModel:     unreadable (%v)\n", err)
	default:
		fmt.Printf("\nModel:     %d strata, %d indicators\n", len(m.Weights), len(catalog))
		fmt.Printf("  %s\n", store.WeightsPath())
		fmt.Printf("  %s\n", store.ScalingPath())
	}

	// Scores
	path := filepath.Join(cfg.ResultsDir, dataset.ScoresFileName)
	records, err := dataset.ReadScores(path)
	if err != nil {
		fmt.Println("\nScores:    none")
		return nil
	}

	years := make(map[int]int)
	for _, rec := range records {
		years[rec.Year]++
	}
	fmt.Printf("\nScores:    %d units across %d years\n", len(records), len(years))
	fmt.Printf("  %s\n", path)

	return nil
}
