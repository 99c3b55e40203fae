package generator

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Source is the pseudo-random stream every draw goes through. Tests can
// substitute a scripted implementation.
type Source interface {
	// IntRange returns an integer in [min, max].
	IntRange(min, max int) int
	// RandomString returns one element of a.
	RandomString(a []string) string
	// Company returns a company display name.
	Company() string
	// DateRange returns a time in [start, end].
	DateRange(start, end time.Time) time.Time
	// ID returns an opaque unique identifier.
	ID() string
}

// fakerSource backs Source with a seeded gofakeit faker.
type fakerSource struct {
	*gofakeit.Faker
}

// NewSource returns a deterministic Source for seed.
func NewSource(seed int64) Source {
	return &fakerSource{Faker: gofakeit.New(seed)}
}

// ID reads a version 4 UUID from the seeded stream so ids are reproducible.
func (s *fakerSource) ID() string {
	id, err := uuid.NewRandomFromReader(s.Rand)
	if err != nil {
		return s.UUID()
	}
	return id.String()
}
