package smoke

import "errors"

var (
	// ErrUnhealthy is returned when the service does not answer its health probe.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrUnexpectedStatus is returned when an endpoint answers with an unexpected status code.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrChecksFailed is returned when at least one check failed.
	ErrChecksFailed = errors.New("smoke checks failed")
	// ErrViolation marks a response that breaks an expected property.
	ErrViolation = errors.New("property violated")
)
