// Package analytics derives dashboard views from a generated dataset.
//
// Every function is pure: it reads the dataset, never mutates it, and returns
// freshly allocated results. Percentages and averages over an empty input are
// reported as zero.
package analytics

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/okian/pie/internal/domain/model"
)

// View tuning.
const (
	DefaultChurnLimit     = 20
	DefaultTopLeaks       = 10
	DefaultUsageDays      = 30
	TrendWindowDays       = 90
	CompetitorSampleSize  = 5
	churnCandidateFloor   = 30
	pricingReasonCutoff   = 40.0
	volatilityChurnCutoff = 60
	churnImpactPerPercent = 0.5
	percent               = 100.0
	trendDateLayout       = "2006-01-02"
)

// GetDashboardStats sums leak and revenue and summarises churn across all companies.
func GetDashboardStats(ds *model.Dataset) DashboardStats {
	var out DashboardStats
	var churnTotal int
	for _, c := range ds.Companies {
		out.TotalRevenueLeak += c.RevenueLeak
		out.MonthlyRevenue += c.MonthlyRevenue
		churnTotal += c.ChurnProbability
		if c.ChurnRisk == model.ChurnHigh {
			out.HighRiskCustomers++
		}
	}
	out.PotentialRevenue = out.MonthlyRevenue + out.TotalRevenueLeak
	out.TotalRevenueLeakPercent = ratio(out.TotalRevenueLeak, out.MonthlyRevenue) * percent
	out.AvgChurnProbability = ratio(float64(churnTotal), float64(len(ds.Companies)))
	return out
}

// OptimizationScore is the share of potential pricing efficiency already captured.
func OptimizationScore(stats DashboardStats) float64 {
	return percent - stats.TotalRevenueLeakPercent
}

// Summarize combines DashboardStats with its OptimizationScore.
func Summarize(ds *model.Dataset) Summary {
	stats := GetDashboardStats(ds)
	return Summary{DashboardStats: stats, OptimizationScore: OptimizationScore(stats)}
}

// RevenueLeakHeatmap returns one cell per company ordered by leak amount,
// largest first. Ties keep generation order.
func RevenueLeakHeatmap(ds *model.Dataset) []LeakCell {
	cells := make([]LeakCell, 0, len(ds.Companies))
	for _, c := range ds.Companies {
		cells = append(cells, LeakCell{
			CompanyID:   c.ID,
			CompanyName: c.Name,
			Industry:    c.Industry,
			LeakAmount:  c.RevenueLeak,
			LeakPercent: c.RevenueLeakPercent,
			Severity:    model.SeverityFor(c.RevenueLeakPercent),
		})
	}
	slices.SortStableFunc(cells, func(a, b LeakCell) int {
		return cmp.Compare(b.LeakAmount, a.LeakAmount)
	})
	return cells
}

// ChurnPredictions lists up to limit companies with churn probability above
// 30, most likely first, each with exactly one explanation template.
func ChurnPredictions(ds *model.Dataset, limit int) []ChurnPrediction {
	if limit <= 0 {
		return []ChurnPrediction{}
	}
	candidates := make([]model.Company, 0, len(ds.Companies))
	for _, c := range ds.Companies {
		if c.ChurnProbability > churnCandidateFloor {
			candidates = append(candidates, c)
		}
	}
	slices.SortStableFunc(candidates, func(a, b model.Company) int {
		return cmp.Compare(b.ChurnProbability, a.ChurnProbability)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]ChurnPrediction, 0, len(candidates))
	for _, c := range candidates {
		reason, recommendation := explainChurn(c)
		out = append(out, ChurnPrediction{
			CompanyID:      c.ID,
			CompanyName:    c.Name,
			Probability:    c.ChurnProbability,
			Risk:           c.ChurnRisk,
			Reason:         reason,
			Recommendation: recommendation,
		})
	}
	return out
}

// explainChurn picks the first matching template: under-pricing, then
// volatility, then declining usage.
func explainChurn(c model.Company) (reason, recommendation string) {
	switch {
	case c.RevenueLeakPercent > pricingReasonCutoff:
		return fmt.Sprintf("Pricing %.0f%% below market average", c.RevenueLeakPercent),
			fmt.Sprintf("Increase price to $%.4f/unit", c.RecommendedPrice)
	case c.ChurnProbability > volatilityChurnCutoff:
		return "High usage volatility detected", "Consider switching to outcome-based pricing"
	default:
		return "Usage declining over last 30 days", "Offer volume discount or usage credits"
	}
}

// SimulatePricingChange projects revenue for companyID at newPrice. Churn
// impact is half the percent price increase and never negative.
func SimulatePricingChange(ds *model.Dataset, companyID string, newPrice float64) (PricingSimulation, error) {
	c, err := CompanyByID(ds, companyID)
	if err != nil {
		return PricingSimulation{}, err
	}

	currentRevenue := c.MonthlyRevenue
	projectedRevenue := float64(c.MonthlyUsage) * newPrice
	priceChangePercent := ratio(newPrice-c.CurrentPrice, c.CurrentPrice) * percent
	churnImpact := math.Max(0, priceChangePercent*churnImpactPerPercent)
	retention := 1 - churnImpact/percent
	netRevenue := projectedRevenue * retention
	revenueChange := netRevenue - currentRevenue

	return PricingSimulation{
		CurrentRevenue:       currentRevenue,
		ProjectedRevenue:     projectedRevenue,
		RevenueChange:        revenueChange,
		RevenueChangePercent: ratio(revenueChange, currentRevenue) * percent,
		ChurnImpact:          churnImpact,
		NetRevenue:           netRevenue,
	}, nil
}

// RevenueTrend sums event revenue per UTC calendar day, optionally for a
// single company, and returns the latest TrendWindowDays days in ascending order.
func RevenueTrend(ds *model.Dataset, companyID string) []TrendPoint {
	daily := make(map[string]float64)
	for _, e := range ds.UsageEvents {
		if companyID != "" && e.CompanyID != companyID {
			continue
		}
		daily[e.Date.UTC().Format(trendDateLayout)] += e.Revenue
	}

	points := make([]TrendPoint, 0, len(daily))
	for date, revenue := range daily {
		points = append(points, TrendPoint{Date: date, Revenue: revenue})
	}
	// ISO dates order lexically.
	slices.SortFunc(points, func(a, b TrendPoint) int {
		return cmp.Compare(a.Date, b.Date)
	})
	if len(points) > TrendWindowDays {
		points = points[len(points)-TrendWindowDays:]
	}
	return points
}

// PricingDistribution groups companies by pricing model in first-seen order.
func PricingDistribution(ds *model.Dataset) []DistributionBucket {
	type acc struct {
		count   int
		revenue float64
	}
	groups := make(map[model.PricingModel]*acc)
	order := make([]model.PricingModel, 0, len(model.PricingModels))
	for _, c := range ds.Companies {
		g, ok := groups[c.PricingModel]
		if !ok {
			g = &acc{}
			groups[c.PricingModel] = g
			order = append(order, c.PricingModel)
		}
		g.count++
		g.revenue += c.MonthlyRevenue
	}

	out := make([]DistributionBucket, 0, len(order))
	for _, m := range order {
		g := groups[m]
		out = append(out, DistributionBucket{
			Model:      m,
			Count:      g.count,
			AvgRevenue: g.revenue / float64(g.count),
		})
	}
	return out
}

// GetCompetitiveAnalysis compares the average current price with the competitor
// average and samples the first competitors verbatim.
func GetCompetitiveAnalysis(ds *model.Dataset) CompetitiveAnalysis {
	var own, market float64
	for _, c := range ds.Companies {
		own += c.CurrentPrice
	}
	for _, c := range ds.Competitors {
		market += c.PricePerUnit
	}
	avgPrice := ratio(own, float64(len(ds.Companies)))
	competitorAvg := ratio(market, float64(len(ds.Competitors)))

	position := PositionBelow
	if avgPrice > competitorAvg {
		position = PositionAbove
	}

	sample := ds.Competitors[:min(CompetitorSampleSize, len(ds.Competitors))]
	return CompetitiveAnalysis{
		YourAvgPrice:      avgPrice,
		MarketAvgPrice:    competitorAvg,
		Position:          position,
		DifferencePercent: math.Abs(ratio(avgPrice-competitorAvg, competitorAvg) * percent),
		Competitors:       slices.Clone(sample),
	}
}

// ratio divides a by b, reporting zero for an empty denominator.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
