package smoke

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/okian/pie/internal/domain/analytics"
	"github.com/okian/pie/internal/domain/format"
	"github.com/okian/pie/pkg/logger"
)

// statsResponse mirrors the fields of /stats the checks depend on.
type statsResponse struct {
	Started     bool `json:"started"`
	Companies   int  `json:"companies"`
	HistoryDays int  `json:"history_days"`
}

// Run probes the service, runs every check and writes a report to out.
// It returns ErrChecksFailed when any check fails.
func Run(ctx context.Context, cfg *Config, out io.Writer) (*Report, error) {
	report := &Report{StartTime: time.Now()}
	log := logger.Get().Named("smoke")

	log.Info(ctx, "starting pie smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	c := newClient(cfg.BaseURL, cfg.Timeout)

	if err := checkServiceHealth(ctx, c); err != nil {
		return nil, err
	}

	var stats statsResponse
	if err := c.getJSON(ctx, "/stats", &stats); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if !stats.Started {
		return nil, fmt.Errorf("%w: service reports not started", ErrUnhealthy)
	}
	report.Companies = stats.Companies
	report.HistoryDays = stats.HistoryDays

	var sum analytics.Summary
	if err := c.getJSON(ctx, "/summary", &sum); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	report.TotalLeak = sum.TotalRevenueLeak
	report.LeakPercent = sum.TotalRevenueLeakPercent
	report.HighRisk = sum.HighRiskCustomers
	report.MonthlyRevenue = sum.MonthlyRevenue

	report.Results = runChecks(ctx, cfg, c, env{companies: stats.Companies, historyDays: stats.HistoryDays})
	report.Duration = time.Since(report.StartTime)

	if err := writeReport(out, report); err != nil {
		return report, fmt.Errorf("write report: %w", err)
	}

	if n := report.Failed(); n > 0 {
		log.Warn(ctx, "smoke run failed", logger.Int("failed", n), logger.Int("checks", len(report.Results)))
		return report, fmt.Errorf("%w: %d of %d", ErrChecksFailed, n, len(report.Results))
	}
	log.Info(ctx, "smoke run passed", logger.Int("checks", len(report.Results)), logger.Duration("duration", report.Duration))
	return report, nil
}

// runChecks fans the checks out over a worker pool and keeps their order in the result.
func runChecks(ctx context.Context, cfg *Config, c *client, e env) []Result {
	all := checks()
	results := make([]Result, len(all))

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan int, len(all))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				start := time.Now()
				err := ctx.Err()
				if err == nil {
					err = all[i].run(ctx, c, e)
				}
				results[i] = Result{Name: all[i].name, Err: err, Duration: time.Since(start)}
				if cfg.Verbose {
					logger.Get().Info(ctx, "check finished",
						logger.String("check", all[i].name),
						logger.Bool("passed", err == nil),
						logger.Duration("duration", results[i].Duration))
				}
			}
		}()
	}
	for i := range all {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// checkServiceHealth verifies the service answers its metrics endpoint.
func checkServiceHealth(ctx context.Context, c *client) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: /healthz returned %d", ErrUnhealthy, status)
	}
	return nil
}

func writeReport(out io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "PIE smoke report\n")
	fmt.Fprintf(tw, "Companies:\t%d\n", r.Companies)
	fmt.Fprintf(tw, "History:\t%d days\n", r.HistoryDays)
	fmt.Fprintf(tw, "Monthly revenue:\t%s\n", format.Currency(r.MonthlyRevenue))
	fmt.Fprintf(tw, "Revenue leak:\t%s (%s)\n", format.Currency(r.TotalLeak), format.Percent(r.LeakPercent))
	fmt.Fprintf(tw, "High-risk customers:\t%d\n\n", r.HighRisk)

	fmt.Fprintf(tw, "CHECK\tRESULT\tTIME\tDETAIL\n")
	for _, res := range r.Results {
		result, detail := "PASS", ""
		if !res.Passed() {
			result, detail = "FAIL", res.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Name, result, res.Duration.Round(time.Microsecond), detail)
	}
	fmt.Fprintf(tw, "\n%d/%d checks passed in %s\n", len(r.Results)-r.Failed(), len(r.Results), r.Duration.Round(time.Millisecond))

	return tw.Flush()
}
