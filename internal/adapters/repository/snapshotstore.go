package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/pie/internal/domain/analytics"
	"github.com/okian/pie/internal/domain/generator"
	"github.com/okian/pie/internal/domain/model"
	"github.com/okian/pie/pkg/metrics"
)

// snapshot is the immutable published state: the dataset plus an id index.
type snapshot struct {
	dataset *model.Dataset
	byID    map[string]int
}

// SnapshotStore generates the dataset once and serves it read-only.
//
// Readers load the snapshot pointer without locking. Build publishes it
// exactly once; later calls return the first outcome.
type SnapshotStore struct {
	seed         int64
	companyCount int
	historyDays  int
	anchor       time.Time

	once     sync.Once
	buildErr error
	snapshot atomic.Pointer[snapshot]
}

// NewSnapshotStore constructs a store with configuration options.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		seed:         generator.DefaultSeed,
		companyCount: generator.DefaultCompanyCount,
		historyDays:  generator.DefaultHistoryDays,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Build generates and publishes the dataset. It is safe to call concurrently.
func (s *SnapshotStore) Build(ctx context.Context) error {
	s.once.Do(func() {
		s.buildErr = s.build(ctx)
	})
	return s.buildErr
}

func (s *SnapshotStore) build(ctx context.Context) error {
	start := time.Now()

	ds, err := generator.Generate(ctx, generator.NewSource(s.seed),
		generator.WithCompanyCount(s.companyCount),
		generator.WithHistoryDays(s.historyDays),
		generator.WithNow(s.anchor),
	)
	if err != nil {
		metrics.RecordErrorByType("generate", "critical")
		return fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	byID := make(map[string]int, len(ds.Companies))
	for i, c := range ds.Companies {
		byID[c.ID] = i
	}
	s.snapshot.Store(&snapshot{dataset: ds, byID: byID})

	metrics.RecordDatasetGeneration(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateDatasetSize(len(ds.Companies), len(ds.UsageEvents), len(ds.Competitors))
	metrics.UpdateDatasetGeneratedAt(ds.GeneratedAt.Unix())
	metrics.UpdateRevenueLeakTotal(analytics.TotalRevenueLeak(ds))
	metrics.UpdateHighRiskCustomers(len(analytics.HighChurnRiskCompanies(ds)))

	return nil
}

func (s *SnapshotStore) load() (*snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotBuilt
	}
	return snap, nil
}

// Dataset implements Store.Dataset.
func (s *SnapshotStore) Dataset(ctx context.Context) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	return snap.dataset, nil
}

// Company implements Store.Company in O(1).
func (s *SnapshotStore) Company(ctx context.Context, id string) (model.Company, error) {
	if err := ctx.Err(); err != nil {
		return model.Company{}, err
	}
	snap, err := s.load()
	if err != nil {
		return model.Company{}, err
	}
	i, ok := snap.byID[id]
	if !ok {
		metrics.RecordErrorByType("not_found", "low")
		return model.Company{}, &model.NotFoundError{CompanyID: id}
	}
	return snap.dataset.Companies[i], nil
}

// Count returns the number of companies, or 0 before Build.
func (s *SnapshotStore) Count(_ context.Context) int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.dataset.Companies)
}
