package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/olukareem/portfolio/internal/resume"
)

// handleHealth reports liveness. Kept dependency-free so probes succeed even
// when backing services are down.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleResume serves the structured resume content for the frontend.
func (s *Server) handleResume(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, s.logger, http.StatusOK, resume.Data())
}

// handleTestRedis verifies the Redis connection with a set/get/del round trip.
// Diagnostic endpoint.
func (s *Server) handleTestRedis(w http.ResponseWriter, r *http.Request) {
	if s.kv == nil {
		writeError(w, s.logger, http.StatusServiceUnavailable, "redis not configured")
		return
	}

	const key = "test:connection"
	value := fmt.Sprintf("ok-%d", time.Now().UnixNano())

	if err := s.kv.Set(r.Context(), key, value, time.Minute); err != nil {
		writeError(w, s.logger, http.StatusBadGateway, "redis set failed: "+err.Error())
		return
	}
	got, err := s.kv.Get(r.Context(), key)
	if err != nil {
		writeError(w, s.logger, http.StatusBadGateway, "redis get failed: "+err.Error())
		return
	}
	if got != value {
		writeError(w, s.logger, http.StatusBadGateway, "redis round trip mismatch")
		return
	}
	if err := s.kv.Del(r.Context(), key); err != nil {
		writeError(w, s.logger, http.StatusBadGateway, "redis del failed: "+err.Error())
		return
	}

	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "connected"})
}
