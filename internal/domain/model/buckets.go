package model

// ChurnRisk is the three-level churn classification.
type ChurnRisk string

// Churn risk buckets.
const (
	ChurnLow    ChurnRisk = "low"
	ChurnMedium ChurnRisk = "medium"
	ChurnHigh   ChurnRisk = "high"
)

// Severity is the four-level revenue-leak classification.
type Severity string

// Severity buckets.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Bucket thresholds. Every comparison is strictly greater-than.
const (
	ChurnHighThreshold   = 60
	ChurnMediumThreshold = 30

	SeverityCriticalThreshold = 50.0
	SeverityHighThreshold     = 30.0
	SeverityMediumThreshold   = 15.0
)

// ChurnRiskFor maps a churn probability to its bucket.
func ChurnRiskFor(probability int) ChurnRisk {
	switch {
	case probability > ChurnHighThreshold:
		return ChurnHigh
	case probability > ChurnMediumThreshold:
		return ChurnMedium
	default:
		return ChurnLow
	}
}

// SeverityFor maps a leak percent to its severity bucket.
func SeverityFor(leakPercent float64) Severity {
	switch {
	case leakPercent > SeverityCriticalThreshold:
		return SeverityCritical
	case leakPercent > SeverityHighThreshold:
		return SeverityHigh
	case leakPercent > SeverityMediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
