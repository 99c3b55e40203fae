package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrRateLimited   = errors.New("rate limited")
)

// Error carries the failing operation and a kind that maps to a status code.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Kind != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind builds an Error of the given kind with an optional detail message.
func NewKind(op string, kind error, detail ...string) *Error {
	e := &Error{Op: op, Kind: kind}
	if len(detail) > 0 {
		e.Err = fmt.Errorf("%v: %s", kind, detail[0])
	}
	return e
}

// Wrap attaches op to an upstream error.
func Wrap(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}
