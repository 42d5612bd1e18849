package jobs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/haritlabs/chf/internal/dataset"
	"github.com/haritlabs/chf/internal/model"
	"github.com/haritlabs/chf/internal/scoring"
	"github.com/haritlabs/chf/internal/season"
	"github.com/haritlabs/chf/pkg/logger"
)

// ScoringJob recomputes composite scores for the campaign's scoring
// years on a schedule, picking up freshly delivered indicator tables.
type ScoringJob struct {
	seasonFile string
	schedule   string
	store      *model.Store
	calculator *scoring.Calculator
	resultsDir string
	repo       *scoring.Repository // nil without a database
	logger     *logger.Logger
}

// NewScoringJob creates a new scoring job
func NewScoringJob(seasonFile, schedule string, store *model.Store, calculator *scoring.Calculator, resultsDir string, repo *scoring.Repository, log *logger.Logger) *ScoringJob {
	return &ScoringJob{
		seasonFile: seasonFile,
		schedule:   schedule,
		store:      store,
		calculator: calculator,
		resultsDir: resultsDir,
		repo:       repo,
		logger:     log,
	}
}

// Name returns the job name
func (j *ScoringJob) Name() string {
	return "seasonal_scoring"
}

// Schedule returns the cron schedule
func (j *ScoringJob) Schedule() string {
	return j.schedule
}

// Run executes the scoring pass. The campaign file is re-read on
// every run so year changes take effect without a restart.
func (j *ScoringJob) Run(ctx context.Context) error {
	cfg, _, err := season.Load(j.seasonFile)
	if err != nil {
		return fmt.Errorf("load campaign file: %w", err)
	}

	hash, err := season.Hash(cfg)
	if err != nil {
		return fmt.Errorf("hash campaign config: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"campaign":    cfg.Meta.CampaignID,
		"config_hash": hash,
		"years":       cfg.Scoring.Years,
	}).Info("Starting scheduled scoring")

	m, err := j.store.Load()
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	records, err := j.calculator.Score(ctx, m, cfg.Scoring.Years)
	if err != nil {
		return fmt.Errorf("score years: %w", err)
	}

	if len(records) == 0 {
		j.logger.Warn("No units scored, keeping previous results")
		return nil
	}

	path := filepath.Join(j.resultsDir, dataset.ScoresFileName)
	if err := dataset.WriteScores(path, records); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}

	if j.repo != nil {
		if err := j.repo.SaveScores(ctx, records); err != nil {
			return fmt.Errorf("mirror scores to database: %w", err)
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"scored": len(records),
		"output": path,
	}).Info("Scheduled scoring completed")

	return nil
}
