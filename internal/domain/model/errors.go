package model

import (
	"errors"
	"fmt"
)

// ErrCompanyNotFound is matched by every lookup miss on a company id.
var ErrCompanyNotFound = errors.New("company not found")

// NotFoundError reports the company id that could not be resolved.
type NotFoundError struct {
	CompanyID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("company %q not found", e.CompanyID)
}

// Is lets callers match with errors.Is(err, ErrCompanyNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrCompanyNotFound
}
