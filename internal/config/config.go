// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers an optional YAML file and PIE_ environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// AnchorLayout is the accepted format of anchor_date.
const AnchorLayout = "2006-01-02"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Seed drives every random draw of the synthetic dataset.
	Seed int64 `koanf:"seed"`

	// CompanyCount and HistoryDays size the generated population.
	CompanyCount int `koanf:"company_count"`
	HistoryDays  int `koanf:"history_days"`

	// AnchorDate pins "now" for generation (YYYY-MM-DD). Empty means wall clock.
	AnchorDate string `koanf:"anchor_date"`

	// DefaultChurnLimit is used when GET /churn has no limit.
	DefaultChurnLimit int `koanf:"default_churn_limit"`

	// MaxChurnLimit caps GET /churn?limit.
	MaxChurnLimit int `koanf:"max_churn_limit"`

	// DefaultTopLeaks is used when GET /companies?view=top_leaks has no limit.
	DefaultTopLeaks int `koanf:"default_top_leaks"`

	// RateLimitRPS and RateLimitBurst configure the per-client limiter. RPS 0 disables it.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		Seed:              12345,
		CompanyCount:      50,
		HistoryDays:       180,
		DefaultChurnLimit: 20,
		MaxChurnLimit:     500,
		DefaultTopLeaks:   10,
		RateLimitRPS:      50,
		RateLimitBurst:    100,
	}
}

// Anchor parses AnchorDate. The zero time is returned when it is empty.
func (c *Config) Anchor() (time.Time, error) {
	if strings.TrimSpace(c.AnchorDate) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(AnchorLayout, strings.TrimSpace(c.AnchorDate))
	if err != nil {
		return time.Time{}, invalid("anchor_date", fmt.Sprintf("%q is not %s: %v", c.AnchorDate, AnchorLayout, err))
	}
	return t.UTC(), nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr", "must not be empty")
	case c.CompanyCount <= 0:
		return invalid("company_count", "must be positive")
	case c.HistoryDays <= 0:
		return invalid("history_days", "must be positive")
	case c.DefaultChurnLimit <= 0:
		return invalid("default_churn_limit", "must be positive")
	case c.MaxChurnLimit < c.DefaultChurnLimit:
		return invalid("max_churn_limit", "must be >= default_churn_limit")
	case c.DefaultTopLeaks <= 0:
		return invalid("default_top_leaks", "must be positive")
	case c.RateLimitRPS < 0:
		return invalid("rate_limit_rps", "must not be negative")
	case c.RateLimitRPS > 0 && c.RateLimitBurst <= 0:
		return invalid("rate_limit_burst", "must be positive when rate limiting")
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return invalid("log_format", "must be text or json")
	}
	if _, err := c.Anchor(); err != nil {
		return err
	}
	return nil
}
