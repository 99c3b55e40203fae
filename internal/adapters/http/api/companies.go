package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/pie/internal/domain/analytics"
)

// Company list views accepted by GET /companies?view=.
const (
	viewTopLeaks = "top_leaks"
	viewHighRisk = "high_risk"
)

// handleCompanies serves GET /companies?view=top_leaks|high_risk.
func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_companies"
	view := strings.TrimSpace(r.URL.Query().Get("view"))

	switch view {
	case "", viewTopLeaks:
		limit, err := queryLimit(op, r, s.defaultTopLeaks, s.maxLimit)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		companies, err := s.deps.TopLeaks(r.Context(), limit)
		if err != nil {
			s.fail(w, r, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, companies)
	case viewHighRisk:
		companies, err := s.deps.HighRiskCompanies(r.Context())
		if err != nil {
			s.fail(w, r, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, companies)
	default:
		s.fail(w, r, NewKind(op, ErrBadRequest, fmt.Sprintf("view must be %s or %s", viewTopLeaks, viewHighRisk)))
	}
}

// handleCompany serves GET /companies/{id}.
func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_company"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		s.fail(w, r, NewKind(op, ErrBadRequest, "missing company id"))
		return
	}
	company, err := s.deps.Company(r.Context(), id)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// handleCompanyUsage serves GET /companies/{id}/usage?days=N.
func (s *Server) handleCompanyUsage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_company_usage"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		s.fail(w, r, NewKind(op, ErrBadRequest, "missing company id"))
		return
	}

	days := analytics.DefaultUsageDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(w, r, NewKind(op, ErrBadRequest, "days must be an integer"))
			return
		}
		days = n
	}
	if err := s.validate.Var(days, fmt.Sprintf("min=1,max=%d", s.deps.HistoryDays())); err != nil {
		s.fail(w, r, NewKind(op, ErrBadRequest, "days: "+validationMessage(err)))
		return
	}

	events, err := s.deps.CompanyUsage(r.Context(), id, days)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}
