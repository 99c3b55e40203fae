package analytics

import (
	"cmp"
	"slices"

	"github.com/okian/pie/internal/domain/generator"
	"github.com/okian/pie/internal/domain/model"
)

// CompanyByID finds a company by id.
func CompanyByID(ds *model.Dataset, id string) (model.Company, error) {
	for _, c := range ds.Companies {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Company{}, &model.NotFoundError{CompanyID: id}
}

// TopRevenueLeaks returns up to limit companies with the largest leak.
func TopRevenueLeaks(ds *model.Dataset, limit int) []model.Company {
	out := slices.Clone(ds.Companies)
	slices.SortStableFunc(out, func(a, b model.Company) int {
		return cmp.Compare(b.RevenueLeak, a.RevenueLeak)
	})
	return out[:max(0, min(limit, len(out)))]
}

// HighChurnRiskCompanies returns every company in the high churn bucket.
func HighChurnRiskCompanies(ds *model.Dataset) []model.Company {
	out := make([]model.Company, 0)
	for _, c := range ds.Companies {
		if c.ChurnRisk == model.ChurnHigh {
			out = append(out, c)
		}
	}
	return out
}

// TotalRevenueLeak sums the leak of every company.
func TotalRevenueLeak(ds *model.Dataset) float64 {
	var total float64
	for _, c := range ds.Companies {
		total += c.RevenueLeak
	}
	return total
}

// UsageByCompany returns a company's events from the last days calendar
// days, counting the generation day, oldest first.
func UsageByCompany(ds *model.Dataset, companyID string, days int) []model.UsageEvent {
	cutoff := generator.StartOfDay(ds.GeneratedAt).AddDate(0, 0, -days)
	out := make([]model.UsageEvent, 0, max(days, 0))
	for _, e := range ds.UsageEvents {
		if e.CompanyID == companyID && e.Date.After(cutoff) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.UsageEvent) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
