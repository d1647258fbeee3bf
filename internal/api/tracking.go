package api

import (
	"net/http"

	"github.com/olukareem/portfolio/internal/analytics"
)

type trackResponse struct {
	Success bool `json:"success"`
	Skipped bool `json:"skipped,omitempty"`
}

// handleTrackView counts a page view. The frontend fires this once per page
// load; filtering decides whether the visit actually lands in the counters.
func (s *Server) handleTrackView(w http.ResponseWriter, r *http.Request) {
	visit := analytics.Visit{
		IP:        clientIP(r, s.trustProxy),
		UserAgent: r.Header.Get("User-Agent"),
		Referer:   r.Header.Get("Referer"),
	}

	recorded, err := s.tracker.RecordView(r.Context(), visit)
	if err != nil {
		s.logger.Error("failed to record view", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, s.logger, http.StatusInternalServerError, "failed to record view")
		return
	}

	writeJSON(w, s.logger, http.StatusOK, trackResponse{Success: true, Skipped: !recorded})
}

type reportResponse struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// handleSendDailyReport emails today's stats to the owner. Quiet days below
// the view threshold are skipped.
func (s *Server) handleSendDailyReport(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.Today(r.Context())
	if err != nil {
		s.logger.Error("failed to read today's stats", "error", err)
		writeError(w, s.logger, http.StatusInternalServerError, "failed to read stats")
		return
	}

	report, ok := analytics.BuildReport(stats, s.reportMinViews)
	if !ok {
		writeJSON(w, s.logger, http.StatusOK, reportResponse{Success: true, Skipped: true, Reason: "below view threshold"})
		return
	}

	if err := s.mailer.SendReport(r.Context(), report.Subject, report.Text, report.HTML); err != nil {
		s.logger.Error("failed to send daily report", "error", err)
		writeError(w, s.logger, http.StatusInternalServerError, "failed to send report")
		return
	}

	writeJSON(w, s.logger, http.StatusOK, reportResponse{Success: true})
}

// handleTestAnalytics lists per-day stats, newest first. Diagnostic endpoint.
func (s *Server) handleTestAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.AllDays(r.Context())
	if err != nil {
		s.logger.Error("failed to list analytics", "error", err)
		writeError(w, s.logger, http.StatusInternalServerError, "failed to read analytics")
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{"days": stats})
}
