package repository

import "time"

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithSeed sets the seed of the generation stream.
func WithSeed(seed int64) Option {
	return func(s *SnapshotStore) {
		s.seed = seed
	}
}

// WithCompanyCount sets the generated population size.
func WithCompanyCount(n int) Option {
	return func(s *SnapshotStore) {
		if n > 0 {
			s.companyCount = n
		}
	}
}

// WithHistoryDays sets how many days of usage each company gets.
func WithHistoryDays(days int) Option {
	return func(s *SnapshotStore) {
		if days > 0 {
			s.historyDays = days
		}
	}
}

// WithAnchor pins the generation clock. Zero keeps the wall clock.
func WithAnchor(now time.Time) Option {
	return func(s *SnapshotStore) {
		s.anchor = now
	}
}
