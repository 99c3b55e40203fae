package smoke

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/okian/pie/internal/domain/analytics"
	"github.com/okian/pie/internal/domain/model"
)

// Response bounds the service guarantees.
const (
	churnProbeLimit   = 5
	oversizedLimit    = 1_000_000
	leakTolerance     = 0.01
	unknownCompanyID  = "smoke-unknown-company"
	simulatePriceStep = 2
)

// env carries what the checks learn from /stats.
type env struct {
	companies   int
	historyDays int
}

type check struct {
	name string
	run  func(ctx context.Context, c *client, e env) error
}

func checks() []check {
	return []check{
		{"leaks sorted by amount", checkLeaks},
		{"churn limit honoured", checkChurn},
		{"summary matches detail views", checkSummary},
		{"simulate known company", checkSimulate},
		{"simulate rejects bad input", checkSimulateErrors},
		{"usage window bounds", checkUsage},
		{"trend window", checkTrend},
		{"competitive sample", checkCompetitive},
		{"distribution covers companies", checkDistribution},
	}
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrViolation, fmt.Sprintf(format, args...))
}

func checkLeaks(ctx context.Context, c *client, e env) error {
	var cells []analytics.LeakCell
	if err := c.getJSON(ctx, "/leaks", &cells); err != nil {
		return err
	}
	if len(cells) != e.companies {
		return violation("heatmap has %d cells for %d companies", len(cells), e.companies)
	}
	for i, cell := range cells {
		if i > 0 && cell.LeakAmount > cells[i-1].LeakAmount {
			return violation("cell %d (%s) leaks more than cell %d", i, cell.CompanyID, i-1)
		}
		if want := model.SeverityFor(cell.LeakPercent); cell.Severity != want {
			return violation("%s severity %s, want %s", cell.CompanyID, cell.Severity, want)
		}
	}
	return nil
}

func checkChurn(ctx context.Context, c *client, _ env) error {
	var preds []analytics.ChurnPrediction
	if err := c.getJSON(ctx, fmt.Sprintf("/churn?limit=%d", churnProbeLimit), &preds); err != nil {
		return err
	}
	if len(preds) > churnProbeLimit {
		return violation("%d predictions for limit %d", len(preds), churnProbeLimit)
	}
	for i := 1; i < len(preds); i++ {
		if preds[i].Probability > preds[i-1].Probability {
			return violation("prediction %d has higher probability than %d", i, i-1)
		}
	}
	return c.expectError(ctx, http.MethodGet, fmt.Sprintf("/churn?limit=%d", oversizedLimit), nil,
		http.StatusBadRequest, "limit_exceeded")
}

func checkSummary(ctx context.Context, c *client, _ env) error {
	var sum analytics.Summary
	if err := c.getJSON(ctx, "/summary", &sum); err != nil {
		return err
	}
	var cells []analytics.LeakCell
	if err := c.getJSON(ctx, "/leaks", &cells); err != nil {
		return err
	}
	var total float64
	for _, cell := range cells {
		total += cell.LeakAmount
	}
	if math.Abs(total-sum.TotalRevenueLeak) > leakTolerance {
		return violation("summary leak %.2f, heatmap sums to %.2f", sum.TotalRevenueLeak, total)
	}

	var risky []model.Company
	if err := c.getJSON(ctx, "/companies?view=high_risk", &risky); err != nil {
		return err
	}
	if len(risky) != sum.HighRiskCustomers {
		return violation("summary counts %d high-risk customers, list has %d", sum.HighRiskCustomers, len(risky))
	}
	if sum.OptimizationScore < 0 || sum.OptimizationScore > 100 {
		return violation("optimization score %.2f out of range", sum.OptimizationScore)
	}
	return nil
}

func checkSimulate(ctx context.Context, c *client, _ env) error {
	var top []model.Company
	if err := c.getJSON(ctx, "/companies?view=top_leaks&limit=1", &top); err != nil {
		return err
	}
	if len(top) == 0 {
		return violation("no companies to simulate")
	}
	co := top[0]

	status, body, err := c.do(ctx, http.MethodPost, "/simulate", map[string]any{
		"company_id": co.ID,
		"new_price":  co.CurrentPrice * simulatePriceStep,
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: POST /simulate returned %d", ErrUnexpectedStatus, status)
	}
	var sim analytics.PricingSimulation
	if err := decode(body, &sim); err != nil {
		return err
	}
	if math.Abs(sim.CurrentRevenue-co.MonthlyRevenue) > leakTolerance {
		return violation("current revenue %.2f, company reports %.2f", sim.CurrentRevenue, co.MonthlyRevenue)
	}
	if sim.ChurnImpact <= 0 {
		return violation("price increase reported churn impact %.2f", sim.ChurnImpact)
	}
	want := sim.ProjectedRevenue * (1 - sim.ChurnImpact/100)
	if math.Abs(sim.NetRevenue-want) > leakTolerance {
		return violation("net revenue %.2f, want %.2f", sim.NetRevenue, want)
	}
	return nil
}

func checkSimulateErrors(ctx context.Context, c *client, _ env) error {
	if err := c.expectError(ctx, http.MethodPost, "/simulate",
		map[string]any{"company_id": unknownCompanyID, "new_price": 1},
		http.StatusNotFound, "not_found"); err != nil {
		return err
	}
	return c.expectError(ctx, http.MethodPost, "/simulate",
		map[string]any{"company_id": unknownCompanyID, "new_price": 0},
		http.StatusBadRequest, "bad_request")
}

func checkUsage(ctx context.Context, c *client, e env) error {
	var top []model.Company
	if err := c.getJSON(ctx, "/companies?view=top_leaks&limit=1", &top); err != nil {
		return err
	}
	if len(top) == 0 {
		return violation("no companies to inspect")
	}
	base := "/companies/" + url.PathEscape(top[0].ID) + "/usage"

	var events []model.UsageEvent
	if err := c.getJSON(ctx, base+"?days=1", &events); err != nil {
		return err
	}
	if len(events) != 1 {
		return violation("days=1 returned %d events", len(events))
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s?days=%d", base, e.historyDays), &events); err != nil {
		return err
	}
	if len(events) != e.historyDays {
		return violation("days=%d returned %d events", e.historyDays, len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date) {
			return violation("usage event %d precedes event %d", i, i-1)
		}
	}
	if err := c.expectError(ctx, http.MethodGet, fmt.Sprintf("%s?days=%d", base, e.historyDays+1), nil,
		http.StatusBadRequest, "bad_request"); err != nil {
		return err
	}
	return c.expectError(ctx, http.MethodGet, "/companies/"+unknownCompanyID, nil,
		http.StatusNotFound, "not_found")
}

func checkTrend(ctx context.Context, c *client, _ env) error {
	var points []analytics.TrendPoint
	if err := c.getJSON(ctx, "/trend", &points); err != nil {
		return err
	}
	if len(points) > analytics.TrendWindowDays {
		return violation("trend has %d points", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Date <= points[i-1].Date {
			return violation("trend date %s does not follow %s", points[i].Date, points[i-1].Date)
		}
	}
	return nil
}

func checkCompetitive(ctx context.Context, c *client, _ env) error {
	var ca analytics.CompetitiveAnalysis
	if err := c.getJSON(ctx, "/competitive", &ca); err != nil {
		return err
	}
	if len(ca.Competitors) > analytics.CompetitorSampleSize {
		return violation("%d competitors sampled", len(ca.Competitors))
	}
	want := analytics.PositionBelow
	if ca.YourAvgPrice > ca.MarketAvgPrice {
		want = analytics.PositionAbove
	}
	if ca.Position != want {
		return violation("position %s, want %s", ca.Position, want)
	}
	if ca.DifferencePercent < 0 {
		return violation("negative difference %.2f", ca.DifferencePercent)
	}
	return nil
}

func checkDistribution(ctx context.Context, c *client, e env) error {
	var buckets []analytics.DistributionBucket
	if err := c.getJSON(ctx, "/distribution", &buckets); err != nil {
		return err
	}
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	if n != e.companies {
		return violation("distribution counts %d companies, want %d", n, e.companies)
	}
	return nil
}
