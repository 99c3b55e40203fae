// Package generator builds the synthetic company population, its daily usage
// history and the competitor pricing list from a seeded Source.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/pie/internal/domain/model"
)

// Defaults for a generation run.
const (
	DefaultSeed         = 12345
	DefaultCompanyCount = 50
	DefaultHistoryDays  = 180
)

// Draw ranges. Prices and multipliers are drawn as integers and scaled so the
// result lands on a fixed grid.
const (
	minMonthlyUsage = 1_000
	maxMonthlyUsage = 1_000_000

	priceScale      = 1000.0 // 0.001 granularity
	minPriceMilli   = 1      // 0.001
	maxPriceMilli   = 50     // 0.050
	multiplierScale = 10.0   // 0.1 granularity
	minMultiplier   = 11     // 1.1
	maxMultiplier   = 18     // 1.8

	minChurnDraw          = 5
	maxChurnDraw          = 95
	highLeakChurnMin      = 60
	highLeakChurnMax      = 90
	lowLeakChurnMin       = 5
	lowLeakChurnMax       = 40
	highLeakPercentCutoff = 40.0

	customerSinceYears = 2
	lastActiveDays     = 7

	daysPerMonth   = 30.0
	varianceScale  = 100.0 // 0.01 granularity
	minVariancePct = 70
	maxVariancePct = 130

	minCompetitorPriceMilli = 2  // 0.002
	maxCompetitorPriceMilli = 80 // 0.080

	percent = 100.0
)

// Generate produces the full dataset in a fixed draw order: companies,
// competitors, then usage events.
func Generate(ctx context.Context, src Source, opts ...Option) (*model.Dataset, error) {
	s := settings{
		companyCount: DefaultCompanyCount,
		historyDays:  DefaultHistoryDays,
		now:          time.Now(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.companyCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, s.companyCount)
	}
	if s.historyDays <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDays, s.historyDays)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	companies := GenerateCompanies(src, s.companyCount, s.now)
	competitors := GenerateCompetitorPricing(src)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	events := GenerateUsageEvents(src, companies, s.historyDays, s.now)

	return &model.Dataset{
		Companies:   companies,
		UsageEvents: events,
		Competitors: competitors,
		GeneratedAt: s.now,
	}, nil
}

// GenerateCompanies draws count companies.
func GenerateCompanies(src Source, count int, now time.Time) []model.Company {
	companies := make([]model.Company, 0, count)
	for i := 0; i < count; i++ {
		companies = append(companies, generateCompany(src, now))
	}
	return companies
}

func generateCompany(src Source, now time.Time) model.Company {
	industry := model.Industry(src.RandomString(industryNames))
	pricingModel := model.PricingModel(src.RandomString(pricingModelNames))

	monthlyUsage := src.IntRange(minMonthlyUsage, maxMonthlyUsage)
	currentPrice := float64(src.IntRange(minPriceMilli, maxPriceMilli)) / priceScale
	monthlyRevenue := float64(monthlyUsage) * currentPrice

	multiplier := float64(src.IntRange(minMultiplier, maxMultiplier)) / multiplierScale
	recommendedPrice := currentPrice * multiplier

	potentialRevenue := float64(monthlyUsage) * recommendedPrice
	revenueLeak := potentialRevenue - monthlyRevenue
	revenueLeakPercent := revenueLeak / monthlyRevenue * percent

	// The outer draw caps a leak-dependent draw; both are always taken.
	outer := src.IntRange(minChurnDraw, maxChurnDraw)
	var inner int
	if revenueLeakPercent > highLeakPercentCutoff {
		inner = src.IntRange(highLeakChurnMin, highLeakChurnMax)
	} else {
		inner = src.IntRange(lowLeakChurnMin, lowLeakChurnMax)
	}
	churnProbability := min(outer, inner)

	return model.Company{
		ID:                 src.ID(),
		Name:               src.Company(),
		Industry:           industry,
		PricingModel:       pricingModel,
		CurrentPrice:       currentPrice,
		RecommendedPrice:   recommendedPrice,
		MonthlyRevenue:     monthlyRevenue,
		MonthlyUsage:       monthlyUsage,
		ChurnRisk:          model.ChurnRiskFor(churnProbability),
		ChurnProbability:   churnProbability,
		RevenueLeak:        revenueLeak,
		RevenueLeakPercent: revenueLeakPercent,
		CustomerSince:      src.DateRange(now.AddDate(-customerSinceYears, 0, 0), now),
		LastActive:         src.DateRange(now.AddDate(0, 0, -lastActiveDays), now),
	}
}

// GenerateUsageEvents emits days events per company, company-major and
// day-minor, with day 0 being the UTC calendar day of now.
func GenerateUsageEvents(src Source, companies []model.Company, days int, now time.Time) []model.UsageEvent {
	if days <= 0 {
		return nil
	}
	today := StartOfDay(now)
	events := make([]model.UsageEvent, 0, len(companies)*days)
	for _, c := range companies {
		for i := 0; i < days; i++ {
			variance := float64(src.IntRange(minVariancePct, maxVariancePct)) / varianceScale
			usage := float64(c.MonthlyUsage) / daysPerMonth * variance
			events = append(events, model.UsageEvent{
				CompanyID: c.ID,
				Date:      today.AddDate(0, 0, -i),
				Usage:     usage,
				Revenue:   usage * c.CurrentPrice,
			})
		}
	}
	return events
}

// GenerateCompetitorPricing labels each fixed competitor with a segment,
// pricing model, unit price and market position.
func GenerateCompetitorPricing(src Source) []model.CompetitorPricing {
	out := make([]model.CompetitorPricing, 0, len(model.CompetitorNames))
	for _, name := range model.CompetitorNames {
		out = append(out, model.CompetitorPricing{
			Competitor:     name,
			Industry:       src.RandomString(model.CompetitorIndustries),
			PricingModel:   src.RandomString(model.CompetitorPricingLabels),
			PricePerUnit:   float64(src.IntRange(minCompetitorPriceMilli, maxCompetitorPriceMilli)) / priceScale,
			MarketPosition: model.MarketPosition(src.RandomString(marketPositionNames)),
		})
	}
	return out
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

var (
	industryNames       = names(model.Industries)
	pricingModelNames   = names(model.PricingModels)
	marketPositionNames = names(model.MarketPositions)
)

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
