package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/internal/dataset"
	"github.com/haritlabs/chf/internal/scoring"
	"github.com/haritlabs/chf/pkg/logger"
)

// ScoresHandler serves computed composite scores. When a database
// mirror is available it is preferred; otherwise the CSV artifact is
// read directly.
type ScoresHandler struct {
	resultsDir string
	repo       *scoring.Repository // nil without a database
	logger     *logger.Logger
}

// NewScoresHandler creates a new scores handler
func NewScoresHandler(resultsDir string, repo *scoring.Repository, log *logger.Logger) *ScoresHandler {
	return &ScoresHandler{
		resultsDir: resultsDir,
		repo:       repo,
		logger:     log,
	}
}

// ScoresResponse is one year's scores.
type ScoresResponse struct {
	Year   int                     `json:"year"`
	Count  int                     `json:"count"`
	Scores []contracts.ScoreRecord `json:"scores"`
}

// GetScores returns one year's composite scores
// GET /api/scores/{year}
func (h *ScoresHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	records, err := h.loadScores(r, year)
	if err != nil {
		h.logger.WithError(err).WithField("year", year).Error("Failed to load scores")
		respondError(w, http.StatusInternalServerError, "Failed to load scores")
		return
	}

	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "No scores for year")
		return
	}

	respondJSON(w, http.StatusOK, ScoresResponse{
		Year:   year,
		Count:  len(records),
		Scores: records,
	})
}

func (h *ScoresHandler) loadScores(r *http.Request, year int) ([]contracts.ScoreRecord, error) {
	if h.repo != nil {
		return h.repo.GetScores(r.Context(), year)
	}

	path := filepath.Join(h.resultsDir, dataset.ScoresFileName)
	all, err := dataset.ReadScores(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	records := make([]contracts.ScoreRecord, 0)
	for _, rec := range all {
		if rec.Year == year {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
