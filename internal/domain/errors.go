package domain

import (
	"errors"
	"strconv"
)

var (
	// ErrBackend is matched by every error that originates in the search backend.
	ErrBackend = errors.New("search backend failure")
	// ErrInvalidHit marks a hit that was returned but cannot be interpreted.
	ErrInvalidHit = errors.New("structurally invalid hit")
)

// SearchEngineError represents an error from the search engine layer.
type SearchEngineError struct {
	Op  string
	Err string
}

func (e *SearchEngineError) Error() string {
	return e.Op + ": " + e.Err
}

func (e *SearchEngineError) Unwrap() error {
	return ErrBackend
}

// InvalidHitError reports which hit failed and why.
type InvalidHitError struct {
	Index  int
	Reason string
}

func (e *InvalidHitError) Error() string {
	return "hit " + strconv.Itoa(e.Index) + ": " + e.Reason
}

func (e *InvalidHitError) Is(target error) bool {
	return target == ErrInvalidHit || target == ErrBackend
}
