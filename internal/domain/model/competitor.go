package model

// MarketPosition buckets a competitor by price tier.
type MarketPosition string

// Market positions.
const (
	PositionPremium   MarketPosition = "premium"
	PositionMidMarket MarketPosition = "mid-market"
	PositionBudget    MarketPosition = "budget"
)

// MarketPositions lists every market position in generation order.
var MarketPositions = []MarketPosition{PositionPremium, PositionMidMarket, PositionBudget}

// CompetitorNames is the fixed competitor list.
var CompetitorNames = []string{
	"Stripe Billing",
	"Chargebee",
	"Recurly",
	"Lago",
	"Metronome",
	"Orb",
	"Octane",
	"Stigg",
}

// CompetitorIndustries are the segments competitors are labelled with.
var CompetitorIndustries = []string{
	string(IndustryLLMAPI),
	string(IndustryAIAgent),
	string(IndustryComputerVision),
}

// CompetitorPricingLabels are the pricing-model labels competitors advertise.
var CompetitorPricingLabels = []string{"usage-based", "outcome-based", "hybrid"}

// CompetitorPricing is one competitor's pricing snapshot.
type CompetitorPricing struct {
	Competitor     string         `json:"competitor"`
	Industry       string         `json:"industry"`
	PricingModel   string         `json:"pricing_model"`
	PricePerUnit   float64        `json:"price_per_unit"`
	MarketPosition MarketPosition `json:"market_position"`
}
