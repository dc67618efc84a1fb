package api

import (
	"context"
	"net/http"
	"sort"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady pings every configured backend.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.deps.Checks))
	for name := range s.deps.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), s.config.ReadyTimeout)
		err := s.deps.Checks[name].Ping(ctx)
		cancel()

		if err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			s.logger.Warn("readiness check failed", map[string]interface{}{
				"check": name,
				"error": err,
			})
			continue
		}
		results[name] = "ok"
	}

	overall := "ready"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	respondJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": results,
	})
}
