package handlers

import (
	"errors"
	"net/http"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/internal/model"
	"github.com/haritlabs/chf/pkg/logger"
)

// ModelHandler serves the trained model artifacts.
type ModelHandler struct {
	store  *model.Store
	logger *logger.Logger
}

// NewModelHandler creates a new model handler
func NewModelHandler(store *model.Store, log *logger.Logger) *ModelHandler {
	return &ModelHandler{store: store, logger: log}
}

// WeightsResponse maps stratum -> indicator -> weight.
type WeightsResponse struct {
	Strata map[string]map[string]float64 `json:"strata"`
}

// GetWeights returns the entropy weights of the current model
// GET /api/model/weights
func (h *ModelHandler) GetWeights(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.Load()
	if err != nil {
		if errors.Is(err, contracts.ErrModelMissing) {
			respondError(w, http.StatusNotFound, "No trained model available")
			return
		}
		h.logger.WithError(err).Error("Failed to load model")
		respondError(w, http.StatusInternalServerError, "Failed to load model")
		return
	}

	resp := WeightsResponse{Strata: make(map[string]map[string]float64, len(m.Weights))}
	for stratumID, weights := range m.Weights {
		resp.Strata[stratumID] = weights.Weights
	}

	respondJSON(w, http.StatusOK, resp)
}

// ScalingEntry is one scaling factor row.
type ScalingEntry struct {
	Indicator string  `json:"indicator"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// ScalingResponse maps stratum -> scaling rows.
type ScalingResponse struct {
	Strata map[string][]ScalingEntry `json:"strata"`
}

// GetScaling returns the scaling factors of the current model
// GET /api/model/scaling
func (h *ModelHandler) GetScaling(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.Load()
	if err != nil {
		if errors.Is(err, contracts.ErrModelMissing) {
			respondError(w, http.StatusNotFound, "No trained model available")
			return
		}
		h.logger.WithError(err).Error("Failed to load model")
		respondError(w, http.StatusInternalServerError, "Failed to load model")
		return
	}

	resp := ScalingResponse{Strata: make(map[string][]ScalingEntry, len(m.Scaling))}
	for stratumID, factors := range m.Scaling {
		entries := make([]ScalingEntry, 0, len(factors))
		for _, sf := range factors {
			entries = append(entries, ScalingEntry{Indicator: sf.Indicator, Min: sf.Min, Max: sf.Max})
		}
		resp.Strata[stratumID] = entries
	}

	respondJSON(w, http.StatusOK, resp)
}
