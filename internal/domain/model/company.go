// Package model contains domain models passed between layers.
package model

import "time"

// Industry is the market segment a company sells into.
type Industry string

// Industries known to the generator.
const (
	IndustryLLMAPI         Industry = "LLM API"
	IndustryAIAgent        Industry = "AI Agent"
	IndustryComputerVision Industry = "Computer Vision"
	IndustryAudioAI        Industry = "Audio AI"
	IndustryCodeGeneration Industry = "Code Generation"
)

// Industries lists every industry in generation order.
var Industries = []Industry{
	IndustryLLMAPI,
	IndustryAIAgent,
	IndustryComputerVision,
	IndustryAudioAI,
	IndustryCodeGeneration,
}

// PricingModel is the billing approach a company uses.
type PricingModel string

// Pricing models known to the generator.
const (
	PricingUsage        PricingModel = "usage"
	PricingOutcome      PricingModel = "outcome"
	PricingHybrid       PricingModel = "hybrid"
	PricingSubscription PricingModel = "subscription"
)

// PricingModels lists every pricing model in generation order.
var PricingModels = []PricingModel{
	PricingUsage,
	PricingOutcome,
	PricingHybrid,
	PricingSubscription,
}

// Company is one synthetic customer account.
type Company struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Industry           Industry     `json:"industry"`
	PricingModel       PricingModel `json:"pricing_model"`
	CurrentPrice       float64      `json:"current_price"`     // per unit
	RecommendedPrice   float64      `json:"recommended_price"` // current price times market multiplier
	MonthlyRevenue     float64      `json:"monthly_revenue"`
	MonthlyUsage       int          `json:"monthly_usage"`
	ChurnRisk          ChurnRisk    `json:"churn_risk"`
	ChurnProbability   int          `json:"churn_probability"` // 0-100
	RevenueLeak        float64      `json:"revenue_leak"`
	RevenueLeakPercent float64      `json:"revenue_leak_percent"`
	CustomerSince      time.Time    `json:"customer_since"`
	LastActive         time.Time    `json:"last_active"`
}

// UsageEvent is one company's usage and revenue for one calendar day.
type UsageEvent struct {
	CompanyID string    `json:"company_id"`
	Date      time.Time `json:"date"` // UTC midnight
	Usage     float64   `json:"usage"`
	Revenue   float64   `json:"revenue"`
}

// Dataset is the generated population. It is never mutated after generation.
type Dataset struct {
	Companies   []Company           `json:"companies"`
	UsageEvents []UsageEvent        `json:"usage_events"`
	Competitors []CompetitorPricing `json:"competitors"`
	GeneratedAt time.Time           `json:"generated_at"`
}
