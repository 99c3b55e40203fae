package service

import "errors"

// ErrNotStarted is returned by every read before Start has published the dataset.
var ErrNotStarted = errors.New("service not started")
