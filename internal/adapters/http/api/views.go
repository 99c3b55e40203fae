package api

import (
	"net/http"
	"strings"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.deps.Summary(r.Context())
	if err != nil {
		s.fail(w, r, Wrap("api.get_summary", err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleLeaks serves GET /leaks?limit=N. Without limit every cell is returned.
func (s *Server) handleLeaks(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaks"
	limit, err := queryLimit(op, r, 0, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cells, err := s.deps.Leaks(r.Context())
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	if limit > 0 && limit < len(cells) {
		cells = cells[:limit]
	}
	writeJSON(w, http.StatusOK, cells)
}

func (s *Server) handleChurn(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_churn"
	limit, err := queryLimit(op, r, s.defaultChurnLimit, s.maxLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	preds, err := s.deps.ChurnPredictions(r.Context(), limit)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, preds)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	companyID := strings.TrimSpace(r.URL.Query().Get("company_id"))
	points, err := s.deps.Trend(r.Context(), companyID)
	if err != nil {
		s.fail(w, r, Wrap("api.get_trend", err))
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.deps.Distribution(r.Context())
	if err != nil {
		s.fail(w, r, Wrap("api.get_distribution", err))
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleCompetitive(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.deps.Competitive(r.Context())
	if err != nil {
		s.fail(w, r, Wrap("api.get_competitive", err))
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
