// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/okian/pie/internal/domain/analytics"
	"github.com/okian/pie/internal/domain/model"
	"github.com/okian/pie/pkg/logger"
)

// Error codes written in the JSON error body.
const (
	codeBadRequest    = "bad_request"
	codeLimitExceeded = "limit_exceeded"
	codeNotFound      = "not_found"
	codeRateLimited   = "rate_limited"
	codeInternal      = "internal_error"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Summary(ctx context.Context) (analytics.Summary, error)
	Leaks(ctx context.Context) ([]analytics.LeakCell, error)
	ChurnPredictions(ctx context.Context, limit int) ([]analytics.ChurnPrediction, error)
	Simulate(ctx context.Context, companyID string, newPrice float64) (analytics.PricingSimulation, error)
	Trend(ctx context.Context, companyID string) ([]analytics.TrendPoint, error)
	Distribution(ctx context.Context) ([]analytics.DistributionBucket, error)
	Competitive(ctx context.Context) (analytics.CompetitiveAnalysis, error)

	Company(ctx context.Context, id string) (model.Company, error)
	CompanyUsage(ctx context.Context, id string, days int) ([]model.UsageEvent, error)
	TopLeaks(ctx context.Context, limit int) ([]model.Company, error)
	HighRiskCompanies(ctx context.Context) ([]model.Company, error)

	// HistoryDays bounds /companies/{id}/usage?days.
	HistoryDays() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps     Dependencies
	validate *validator.Validate
	limiter  *RateLimiter
	logger   logger.Logger

	defaultChurnLimit int
	maxLimit          int
	defaultTopLeaks   int

	ops *ops
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithChurnLimits sets the default and maximum /churn limit.
func WithChurnLimits(def, maxLimit int) Option {
	return func(s *Server) {
		if def > 0 && maxLimit >= def {
			s.defaultChurnLimit = def
			s.maxLimit = maxLimit
		}
	}
}

// WithDefaultTopLeaks sets the default limit of the top_leaks company view.
func WithDefaultTopLeaks(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.defaultTopLeaks = n
		}
	}
}

// WithRateLimiter guards every API route with rl.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.limiter = rl
	}
}

// WithLogger sets the logger used for internal errors.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:              deps,
		validate:          newValidator(),
		defaultChurnLimit: analytics.DefaultChurnLimit,
		maxLimit:          500,
		defaultTopLeaks:   analytics.DefaultTopLeaks,
		ops:               newOps(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.ops.handleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.ops.handleStats, "stats"))

	s.route(mux, "GET /summary", "summary", s.handleSummary)
	s.route(mux, "GET /leaks", "leaks", s.handleLeaks)
	s.route(mux, "GET /churn", "churn", s.handleChurn)
	s.route(mux, "POST /simulate", "simulate", s.handleSimulate)
	s.route(mux, "GET /trend", "trend", s.handleTrend)
	s.route(mux, "GET /distribution", "distribution", s.handleDistribution)
	s.route(mux, "GET /competitive", "competitive", s.handleCompetitive)
	s.route(mux, "GET /companies", "companies", s.handleCompanies)
	s.route(mux, "GET /companies/{id}", "company", s.handleCompany)
	s.route(mux, "GET /companies/{id}/usage", "company_usage", s.handleCompanyUsage)
	s.route(mux, "GET /export/leaks", "export_leaks", s.handleExportLeaks)
}

func (s *Server) route(mux *http.ServeMux, pattern, endpoint string, h http.HandlerFunc) {
	if s.limiter != nil {
		h = s.limiter.Middleware(h, endpoint)
	}
	mux.HandleFunc(pattern, MetricsMiddleware(h, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrLimitExceeded):
		writeError(w, http.StatusBadRequest, codeLimitExceeded, err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
	case errors.Is(err, model.ErrCompanyNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err)
	case errors.Is(err, ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, codeRateLimited, err)
	default:
		if s.logger != nil {
			s.logger.Error(r.Context(), "request failed",
				logger.String("path", r.URL.Path),
				logger.Error(err),
			)
		}
		writeError(w, http.StatusInternalServerError, codeInternal, errors.New(http.StatusText(http.StatusInternalServerError)))
	}
}

// queryLimit parses ?limit. Absent yields def; non-positive or malformed is a
// bad request; above maxLimit (when positive) is limit_exceeded.
func queryLimit(op string, r *http.Request, def, maxLimit int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, NewKind(op, ErrBadRequest, "limit must be a positive integer")
	}
	if maxLimit > 0 && n > maxLimit {
		return 0, NewKind(op, ErrLimitExceeded, "limit must be at most "+strconv.Itoa(maxLimit))
	}
	return n, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage turns validator failures into one readable line.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		if field == "" {
			field = "value"
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "gt":
			parts = append(parts, field+" must be greater than "+fe.Param())
		case "min":
			parts = append(parts, field+" must be at least "+fe.Param())
		case "max":
			parts = append(parts, field+" must be at most "+fe.Param())
		default:
			parts = append(parts, field+" failed "+fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}
