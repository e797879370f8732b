package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "found", OutcomeFound.String())
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "backend_error", OutcomeBackendError.String())
	assert.Equal(t, "unknown", OutcomeKind(42).String())
}

func TestSearchEngineError_UnwrapsToErrBackend(t *testing.T) {
	err := error(&SearchEngineError{Op: "Search", Err: "connection refused"})

	assert.True(t, errors.Is(err, ErrBackend))
	assert.False(t, errors.Is(err, ErrInvalidHit))
	assert.Equal(t, "Search: connection refused", err.Error())
}

func TestInvalidHitError_MatchesBothSentinels(t *testing.T) {
	err := error(&InvalidHitError{Index: 0, Reason: "missing content field"})

	assert.True(t, errors.Is(err, ErrInvalidHit))
	assert.True(t, errors.Is(err, ErrBackend))
	assert.Equal(t, "hit 0: missing content field", err.Error())
}
