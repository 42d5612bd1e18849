package training

import (
	"context"
	"errors"
	"fmt"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/pkg/logger"
)

// Learner trains one model version from historical indicator tables
// using the entropy weighting method. Each stratum is trained
// independently from its own pooled records.
type Learner struct {
	catalog contracts.Catalog
	source  contracts.TableSource
	logger  *logger.Logger
}

// NewLearner creates a learner over the given table source.
func NewLearner(catalog contracts.Catalog, source contracts.TableSource, log *logger.Logger) *Learner {
	return &Learner{
		catalog: catalog,
		source:  source,
		logger:  log,
	}
}

// Learn pools the requested training years per stratum and derives
// scaling factors and entropy weights for every stratum observed.
// Years whose table is unavailable are skipped with a warning; if no
// year loads at all, Learn fails with contracts.ErrNoTrainingData.
func (l *Learner) Learn(ctx context.Context, years []int) (*contracts.Model, error) {
	pooled := make(map[string][]contracts.ObservationRecord)
	loaded := 0

	for _, year := range years {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		table, err := l.source.LoadYear(year)
		if err != nil {
			if errors.Is(err, contracts.ErrYearUnavailable) {
				l.logger.WithField("year", year).Warn("Training year skipped: indicator table not found")
				continue
			}
			return nil, fmt.Errorf("failed to load training year %d: %w", year, err)
		}

		loaded++
		for _, rec := range table.Records {
			pooled[rec.StratumID] = append(pooled[rec.StratumID], rec)
		}
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w: none of the requested years %v could be loaded", contracts.ErrNoTrainingData, years)
	}

	strata := make([]string, 0, len(pooled))
	for id := range pooled {
		strata = append(strata, id)
	}
	contracts.SortStrataIDs(strata)

	l.logger.WithFields(map[string]interface{}{
		"years_loaded": loaded,
		"strata":       len(strata),
	}).Info("Training pool assembled")

	model := contracts.NewModel()

	for _, stratumID := range strata {
		res := learnStratum(l.catalog, stratumID, pooled[stratumID])

		for _, ind := range res.warns {
			l.logger.WithFields(map[string]interface{}{
				"stratum":   stratumID,
				"indicator": ind,
			}).Warn("Indicator has no observed values in training pool, weight forced to zero")
		}

		model.Weights[stratumID] = res.weights

		factors := make(map[string]contracts.ScalingFactor, len(res.scaling))
		for _, sf := range res.scaling {
			factors[sf.Indicator] = sf
		}
		model.Scaling[stratumID] = factors

		l.logger.WithFields(map[string]interface{}{
			"stratum":      stratumID,
			"pooled_rows":  res.pooledN,
			"weight_total": res.weights.Sum(),
		}).Debug("Stratum trained")
	}

	return model, nil
}
