package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/internal/dataset"
	"github.com/haritlabs/chf/internal/model"
	"github.com/haritlabs/chf/internal/scheduler"
	"github.com/haritlabs/chf/internal/scheduler/jobs"
	"github.com/haritlabs/chf/internal/scoring"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the scoring scheduler",
	Long: `Runs the in-process scheduler that recomputes composite scores on
a cron schedule, picking up freshly delivered indicator tables.

The schedule comes from SCHEDULER_SCORE_CRON (seconds-precision cron,
default "0 30 2 * * *" for 02:30 daily).

Example:
  go run ./cmd/chf scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== CHF Scheduler ===")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.Scheduler.Enabled {
		return fmt.Errorf("scheduler is disabled (set SCHEDULER_ENABLED=true)")
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
	reader := dataset.NewReader(cfg.DataDir, catalog)
	calculator := scoring.NewCalculator(catalog, reader, log)

	var scoresRepo *scoring.Repository
	if db != nil {
		scoresRepo = scoring.NewRepository(db.Pool)
	}

	s := scheduler.New(log)

	scoringJob := jobs.NewScoringJob(
		cfg.SeasonFile,
		cfg.Scheduler.ScoreSchedule,
		store,
		calculator,
		cfg.ResultsDir,
		scoresRepo,
		log,
	)
	if err := s.AddJob(scoringJob); err != nil {
		return fmt.Errorf("register scoring job: %w", err)
	}

	s.Start()

	fmt.Printf("\nScheduler running (%s)\n", cfg.Scheduler.ScoreSchedule)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	s.Stop()
	return nil
}
