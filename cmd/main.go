package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/pie/internal/adapters/http/api"
	"github.com/okian/pie/internal/adapters/http/site"
	"github.com/okian/pie/internal/adapters/http/swagger"
	service "github.com/okian/pie/internal/app"
	"github.com/okian/pie/internal/config"
	"github.com/okian/pie/pkg/logger"
	"github.com/okian/pie/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Our own system metrics replace the default Go collectors.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitWithFormat(os.Stdout, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc, log)

	mux := newMux(ctx, cfg, svc, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newService wires configuration into the analytics service.
func newService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	anchor, err := cfg.Anchor()
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(log),
		service.WithSeed(cfg.Seed),
		service.WithCompanyCount(cfg.CompanyCount),
		service.WithHistoryDays(cfg.HistoryDays),
		service.WithAnchor(anchor),
	), nil
}

// newMux registers docs, API and dashboard routes. A positive rate limit
// starts the limiter's cleanup loop bound to ctx.
func newMux(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	opts := []api.Option{
		api.WithLogger(log),
		api.WithChurnLimits(cfg.DefaultChurnLimit, cfg.MaxChurnLimit),
		api.WithDefaultTopLeaks(cfg.DefaultTopLeaks),
	}
	if cfg.RateLimitRPS > 0 {
		rl := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go rl.Run(ctx)
		opts = append(opts, api.WithRateLimiter(rl))
	}
	api.NewServer(svc, svc, opts...).Register(ctx, mux)

	site.Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater periodically refreshes dataset gauges from the service stats.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service, log logger.Logger) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(ctx, svc, log)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics refreshes the dataset gauges; GetStats records them.
func updateServiceMetrics(ctx context.Context, svc *service.Service, log logger.Logger) {
	stats := svc.GetStats()
	started, _ := stats["started"].(bool)
	if !started {
		log.Warn(ctx, "service metrics skipped: service not started")
		return
	}
	companies, _ := stats["companies"].(int)
	events, _ := stats["usage_events"].(int)
	log.Debug(ctx, "service stats refreshed", logger.Int("companies", companies), logger.Int("usage_events", events))
}
