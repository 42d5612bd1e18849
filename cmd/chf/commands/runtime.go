package commands

import (
	"fmt"

	"github.com/haritlabs/chf/internal/season"
	"github.com/haritlabs/chf/pkg/config"
	"github.com/haritlabs/chf/pkg/database"
	"github.com/haritlabs/chf/pkg/logger"
)

// loadConfig loads environment config, applying global flag overrides.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if seasonFile != "" {
		cfg.SeasonFile = seasonFile
	}

	return cfg, logger.New(cfg), nil
}

// loadSeason reads and validates the campaign file.
func loadSeason(cfg *config.Config) (*season.Config, error) {
	sc, _, err := season.Load(cfg.SeasonFile)
	if err != nil {
		return nil, fmt.Errorf("load campaign file %s: %w", cfg.SeasonFile, err)
	}
	return sc, nil
}

// openDatabase connects to the optional Postgres mirror. Returns nil
// without error when no DATABASE_URL is configured.
func openDatabase(cfg *config.Config, log *logger.Logger) (*database.DB, error) {
	if !cfg.HasDatabase() {
		log.Debug("No database configured, CSV artifacts only")
		return nil, nil
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Info("Connected to database")
	return db, nil
}
