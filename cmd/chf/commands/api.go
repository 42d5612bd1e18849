package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haritlabs/chf/internal/api"
	"github.com/haritlabs/chf/internal/api/handlers"
	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/internal/model"
	"github.com/haritlabs/chf/internal/scoring"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server over the trained model and scores.

Endpoints:
  GET  /health               - Health check
  GET  /api/model/weights    - Entropy weights per stratum
  GET  /api/model/scaling    - Scaling factors per stratum
  GET  /api/scores/{year}    - Composite scores for a year

Example:
  go run ./cmd/chf api
  go run ./cmd/chf api --port 8087`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== CHF API Server ===")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	catalog := contracts.DefaultCatalog()
	store := model.NewStore(cfg.ModelDir, catalog)

	var scoresRepo *scoring.Repository
	if db != nil {
		scoresRepo = scoring.NewRepository(db.Pool)
	}

	router := api.NewRouter(
		handlers.NewModelHandler(store, log),
		handlers.NewScoresHandler(cfg.ResultsDir, scoresRepo, log),
		log,
	)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
