// Package repository holds the generated dataset and serves read access to it.
package repository

import (
	"context"

	"github.com/okian/pie/internal/domain/model"
)

// Store provides read access to the dataset snapshot.
type Store interface {
	// Dataset returns the published snapshot. The caller must not mutate it.
	Dataset(ctx context.Context) (*model.Dataset, error)

	// Company returns one company by id.
	// Returns an error matching ErrNotFound if the id is unknown.
	Company(ctx context.Context, id string) (model.Company, error)

	// Count returns the number of companies in the snapshot.
	Count(ctx context.Context) int
}
