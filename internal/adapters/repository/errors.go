package repository

import (
	"errors"

	"github.com/okian/pie/internal/domain/model"
)

// Sentinel kinds for dataset errors.
var (
	ErrNotFound = model.ErrCompanyNotFound
	ErrNotBuilt = errors.New("dataset not built")
	ErrGenerate = errors.New("dataset generation failed")
)
