// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/okian/pie/internal/adapters/repository"
	"github.com/okian/pie/internal/domain/analytics"
	"github.com/okian/pie/internal/domain/generator"
	"github.com/okian/pie/internal/domain/model"
	"github.com/okian/pie/pkg/logger"
	"github.com/okian/pie/pkg/metrics"
)

// View names used for latency metrics.
const (
	ViewSummary      = "summary"
	ViewLeaks        = "leaks"
	ViewChurn        = "churn"
	ViewSimulation   = "simulation"
	ViewTrend        = "trend"
	ViewDistribution = "distribution"
	ViewCompetitive  = "competitive"
	ViewCompany      = "company"
	ViewUsage        = "usage"
	ViewTopLeaks     = "top_leaks"
	ViewHighRisk     = "high_risk"
)

const nanosPerMilli = 1e6

// Service implements the API dependencies for the pricing dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	provided repository.Store

	// Configuration
	seed         int64
	companyCount int
	historyDays  int
	anchor       time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed sets the dataset seed.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithCompanyCount sets the number of generated companies.
func WithCompanyCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.companyCount = n
		}
	}
}

// WithHistoryDays sets the days of usage history per company.
func WithHistoryDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.historyDays = days
		}
	}
}

// WithStore serves an already built store instead of generating a dataset on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.provided = store
	}
}

// WithAnchor pins the generation clock so runs are reproducible.
func WithAnchor(t time.Time) Option {
	return func(s *Service) {
		s.anchor = t
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed:         generator.DefaultSeed,
		companyCount: generator.DefaultCompanyCount,
		historyDays:  generator.DefaultHistoryDays,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start generates the dataset, or adopts the store given by WithStore.
// Calling it again after success is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting pricing service...")

	start := time.Now()
	store := s.provided
	if store == nil {
		snapshot := repository.NewSnapshotStore(
			repository.WithSeed(s.seed),
			repository.WithCompanyCount(s.companyCount),
			repository.WithHistoryDays(s.historyDays),
			repository.WithAnchor(s.anchor),
		)
		if err := snapshot.Build(ctx); err != nil {
			s.logger.Error(ctx, "dataset generation failed", logger.Error(err))
			return err
		}
		store = snapshot
	}
	ds, err := store.Dataset(ctx)
	if err != nil {
		s.logger.Error(ctx, "dataset unavailable", logger.Error(err))
		return err
	}

	s.store = store
	s.started = true
	s.logger.Info(ctx, "pricing service started",
		logger.Int("companies", len(ds.Companies)),
		logger.Int("usageEvents", len(ds.UsageEvents)),
		logger.Int("competitors", len(ds.Competitors)),
		logger.Any("seed", s.seed),
		logger.String("generatedAt", ds.GeneratedAt.Format(time.RFC3339)),
		logger.Duration("took", time.Since(start)),
	)

	return nil
}

// Stop marks the service stopped. The snapshot is released.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.store = nil
	s.started = false
	s.logger.Info(context.Background(), "pricing service stopped")
}

// HistoryDays is the length of the generated usage history.
func (s *Service) HistoryDays() int {
	return s.historyDays
}

func (s *Service) snapshotStore() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// derive runs fn over the published dataset and records its latency under name.
func derive[T any](ctx context.Context, s *Service, name string, fn func(*model.Dataset) (T, error)) (T, error) {
	var zero T
	start := time.Now()
	defer func() {
		metrics.RecordViewLatency(name, float64(time.Since(start).Nanoseconds())/nanosPerMilli)
	}()

	store, err := s.snapshotStore()
	if err != nil {
		return zero, err
	}
	ds, err := store.Dataset(ctx)
	if err != nil {
		return zero, err
	}
	return fn(ds)
}

// Summary returns the dashboard stats and optimization score.
func (s *Service) Summary(ctx context.Context) (analytics.Summary, error) {
	return derive(ctx, s, ViewSummary, func(ds *model.Dataset) (analytics.Summary, error) {
		return analytics.Summarize(ds), nil
	})
}

// Leaks returns the revenue leak heatmap, largest leak first.
func (s *Service) Leaks(ctx context.Context) ([]analytics.LeakCell, error) {
	return derive(ctx, s, ViewLeaks, func(ds *model.Dataset) ([]analytics.LeakCell, error) {
		return analytics.RevenueLeakHeatmap(ds), nil
	})
}

// ChurnPredictions returns the top limit companies by churn probability.
func (s *Service) ChurnPredictions(ctx context.Context, limit int) ([]analytics.ChurnPrediction, error) {
	return derive(ctx, s, ViewChurn, func(ds *model.Dataset) ([]analytics.ChurnPrediction, error) {
		return analytics.ChurnPredictions(ds, limit), nil
	})
}

// Simulate projects the effect of moving one company to newPrice.
func (s *Service) Simulate(ctx context.Context, companyID string, newPrice float64) (analytics.PricingSimulation, error) {
	return derive(ctx, s, ViewSimulation, func(ds *model.Dataset) (analytics.PricingSimulation, error) {
		sim, err := analytics.SimulatePricingChange(ds, companyID, newPrice)
		if err != nil {
			metrics.RecordSimulation("not_found")
			return sim, err
		}
		metrics.RecordSimulation("ok")
		return sim, nil
	})
}

// Trend returns daily revenue for one company, or all when companyID is empty.
func (s *Service) Trend(ctx context.Context, companyID string) ([]analytics.TrendPoint, error) {
	return derive(ctx, s, ViewTrend, func(ds *model.Dataset) ([]analytics.TrendPoint, error) {
		return analytics.RevenueTrend(ds, companyID), nil
	})
}

// Distribution groups companies by pricing model.
func (s *Service) Distribution(ctx context.Context) ([]analytics.DistributionBucket, error) {
	return derive(ctx, s, ViewDistribution, func(ds *model.Dataset) ([]analytics.DistributionBucket, error) {
		return analytics.PricingDistribution(ds), nil
	})
}

// Competitive compares the average price with the competitor average.
func (s *Service) Competitive(ctx context.Context) (analytics.CompetitiveAnalysis, error) {
	return derive(ctx, s, ViewCompetitive, func(ds *model.Dataset) (analytics.CompetitiveAnalysis, error) {
		return analytics.GetCompetitiveAnalysis(ds), nil
	})
}

// Company returns one company by id.
func (s *Service) Company(ctx context.Context, id string) (model.Company, error) {
	start := time.Now()
	defer func() {
		metrics.RecordViewLatency(ViewCompany, float64(time.Since(start).Nanoseconds())/nanosPerMilli)
	}()

	store, err := s.snapshotStore()
	if err != nil {
		return model.Company{}, err
	}
	return store.Company(ctx, id)
}

// CompanyUsage returns a company's usage events of the last days days, oldest first.
func (s *Service) CompanyUsage(ctx context.Context, id string, days int) ([]model.UsageEvent, error) {
	if _, err := s.Company(ctx, id); err != nil {
		return nil, err
	}
	return derive(ctx, s, ViewUsage, func(ds *model.Dataset) ([]model.UsageEvent, error) {
		return analytics.UsageByCompany(ds, id, days), nil
	})
}

// TopLeaks returns the limit companies with the largest revenue leak.
func (s *Service) TopLeaks(ctx context.Context, limit int) ([]model.Company, error) {
	return derive(ctx, s, ViewTopLeaks, func(ds *model.Dataset) ([]model.Company, error) {
		return analytics.TopRevenueLeaks(ds, limit), nil
	})
}

// HighRiskCompanies returns every company in the high churn bucket.
func (s *Service) HighRiskCompanies(ctx context.Context) ([]model.Company, error) {
	return derive(ctx, s, ViewHighRisk, func(ds *model.Dataset) ([]model.Company, error) {
		return analytics.HighChurnRiskCompanies(ds), nil
	})
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"seed":          s.seed,
		"company_count": s.companyCount,
		"history_days":  s.historyDays,
	}

	if s.started {
		ds, err := s.store.Dataset(context.Background())
		if err == nil {
			stats["companies"] = len(ds.Companies)
			stats["usage_events"] = len(ds.UsageEvents)
			stats["competitors"] = len(ds.Competitors)
			stats["generated_at"] = ds.GeneratedAt.Format(time.RFC3339)

			metrics.UpdateDatasetSize(len(ds.Companies), len(ds.UsageEvents), len(ds.Competitors))
		}
	}

	return stats
}
