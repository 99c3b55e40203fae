package analytics

import (
	"github.com/okian/pie/internal/domain/model"
)

// DashboardStats is the headline summary of the population.
type DashboardStats struct {
	TotalRevenueLeak        float64 `json:"total_revenue_leak"`
	TotalRevenueLeakPercent float64 `json:"total_revenue_leak_percent"`
	HighRiskCustomers       int     `json:"high_risk_customers"`
	AvgChurnProbability     float64 `json:"avg_churn_probability"`
	MonthlyRevenue          float64 `json:"monthly_revenue"`
	PotentialRevenue        float64 `json:"potential_revenue"`
}

// Summary is the dashboard headline: aggregate stats plus the optimization score.
type Summary struct {
	DashboardStats
	OptimizationScore float64 `json:"optimization_score"`
}

// LeakCell is one heatmap entry.
type LeakCell struct {
	CompanyID   string         `json:"company_id"`
	CompanyName string         `json:"company_name"`
	Industry    model.Industry `json:"industry"`
	LeakAmount  float64        `json:"leak_amount"`
	LeakPercent float64        `json:"leak_percent"`
	Severity    model.Severity `json:"severity"`
}

// ChurnPrediction explains one at-risk company.
type ChurnPrediction struct {
	CompanyID      string          `json:"company_id"`
	CompanyName    string          `json:"company_name"`
	Probability    int             `json:"probability"`
	Risk           model.ChurnRisk `json:"risk"`
	Reason         string          `json:"reason"`
	Recommendation string          `json:"recommendation"`
}

// PricingSimulation is the projected effect of a unit price change.
type PricingSimulation struct {
	CurrentRevenue       float64 `json:"current_revenue"`
	ProjectedRevenue     float64 `json:"projected_revenue"`
	RevenueChange        float64 `json:"revenue_change"`
	RevenueChangePercent float64 `json:"revenue_change_percent"`
	ChurnImpact          float64 `json:"churn_impact"`
	NetRevenue           float64 `json:"net_revenue"`
}

// TrendPoint is revenue summed over one calendar day.
type TrendPoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
}

// DistributionBucket summarises companies on one pricing model.
type DistributionBucket struct {
	Model      model.PricingModel `json:"model"`
	Count      int                `json:"count"`
	AvgRevenue float64            `json:"avg_revenue"`
}

// Position says where the population's average price sits against the market.
type Position string

// Positions.
const (
	PositionAbove Position = "above"
	PositionBelow Position = "below"
)

// CompetitiveAnalysis compares average unit prices with the competitor set.
type CompetitiveAnalysis struct {
	YourAvgPrice      float64                   `json:"your_avg_price"`
	MarketAvgPrice    float64                   `json:"market_avg_price"`
	Position          Position                  `json:"position"`
	DifferencePercent float64                   `json:"difference_percent"`
	Competitors       []model.CompetitorPricing `json:"competitors"`
}
