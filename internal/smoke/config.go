package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	Workers int           // Number of checks run concurrently
	Verbose bool          // Log each check as it finishes
}

// Result is the outcome of a single check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the check succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Report holds everything a run observed.
type Report struct {
	Companies      int
	HistoryDays    int
	TotalLeak      float64
	LeakPercent    float64
	HighRisk       int
	MonthlyRevenue float64
	Results        []Result
	StartTime      time.Time
	Duration       time.Duration
}

// Failed counts the checks that did not pass.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}
