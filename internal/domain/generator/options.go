package generator

import "time"

// Option applies a configuration option to a generation run.
type Option func(*settings)

type settings struct {
	companyCount int
	historyDays  int
	now          time.Time
}

// WithCompanyCount sets how many companies are generated.
func WithCompanyCount(n int) Option {
	return func(s *settings) {
		s.companyCount = n
	}
}

// WithHistoryDays sets how many trailing days of usage events each company gets.
func WithHistoryDays(days int) Option {
	return func(s *settings) {
		s.historyDays = days
	}
}

// WithNow anchors every generated date. Zero keeps the wall clock.
func WithNow(now time.Time) Option {
	return func(s *settings) {
		if !now.IsZero() {
			s.now = now
		}
	}
}
