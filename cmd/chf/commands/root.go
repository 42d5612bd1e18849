package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	seasonFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chf",
	Short: "CHF - crop health factor scoring engine",
	Long: `CHF Unified CLI

Entropy-weighted composite crop condition scoring. Trains per-stratum
indicator weights from historical seasons and applies them to produce
a single CHF score per administrative unit.

Usage:
  go run ./cmd/chf [command]

Examples:
  go run ./cmd/chf train
  go run ./cmd/chf score --years 2023,2024
  go run ./cmd/chf api
  go run ./cmd/chf scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&seasonFile, "season", "", "campaign file (default from CHF_SEASON_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
