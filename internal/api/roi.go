package api

import (
	"net/http"

	"github.com/eumatoliveira/leanhealth-websit/internal/calculator"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/metrics"
)

// handleROI evaluates the impact calculator for the posted slider values,
// clamped to the configured ranges.
func (s *Server) handleROI(w http.ResponseWriter, r *http.Request) {
	var in calculator.Inputs
	if stdErr := s.decode(w, r, s.roiSchema, &in); stdErr != nil {
		respondError(w, stdErr)
		return
	}

	snap := calculator.New(s.config.CalculatorLimits, in).Snapshot()
	metrics.ROIEstimates.Inc()

	respondJSON(w, http.StatusOK, snap)
}
