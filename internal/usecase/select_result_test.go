package usecase

import (
	"encoding/json"
	"errors"
	"testing"

	"code-assist/internal/domain"

	"github.com/stretchr/testify/assert"
)

func hitWith(fields map[string]string) domain.Hit {
	src := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		src[k] = json.RawMessage(v)
	}
	return domain.Hit{Source: src}
}

func TestSelectOutcome(t *testing.T) {
	backendErr := &domain.SearchEngineError{Op: "Search", Err: "connection refused"}

	tests := []struct {
		name        string
		result      *domain.SearchResult
		err         error
		wantKind    domain.OutcomeKind
		wantContent string
		wantInvalid bool
	}{
		{
			name:     "search error is backend error",
			err:      backendErr,
			wantKind: domain.OutcomeBackendError,
		},
		{
			name:     "error wins over partial result",
			result:   &domain.SearchResult{Hits: []domain.Hit{hitWith(map[string]string{"content": `"x"`})}},
			err:      backendErr,
			wantKind: domain.OutcomeBackendError,
		},
		{
			name:     "nil result is backend error",
			wantKind: domain.OutcomeBackendError,
		},
		{
			name:     "zero hits is not found",
			result:   &domain.SearchResult{Hits: []domain.Hit{}},
			wantKind: domain.OutcomeNotFound,
		},
		{
			name: "first hit content is returned",
			result: &domain.SearchResult{Hits: []domain.Hit{
				hitWith(map[string]string{"content": `"func add(a, b int) int { return a + b }"`}),
				hitWith(map[string]string{"content": `"func addAll(xs ...int) int"`}),
			}},
			wantKind:    domain.OutcomeFound,
			wantContent: "func add(a, b int) int { return a + b }",
		},
		{
			name:        "empty string content is found",
			result:      &domain.SearchResult{Hits: []domain.Hit{hitWith(map[string]string{"content": `""`})}},
			wantKind:    domain.OutcomeFound,
			wantContent: "",
		},
		{
			name:     "non-string content is invalid",
			result:   &domain.SearchResult{Hits: []domain.Hit{hitWith(map[string]string{"content": `42`})}},
			wantKind: domain.OutcomeBackendError, wantInvalid: true,
		},
		{
			name:     "null content is invalid",
			result:   &domain.SearchResult{Hits: []domain.Hit{hitWith(map[string]string{"content": `null`})}},
			wantKind: domain.OutcomeBackendError, wantInvalid: true,
		},
		{
			name: "missing content on first hit is invalid even if second has it",
			result: &domain.SearchResult{Hits: []domain.Hit{
				hitWith(map[string]string{"path": `"a.go"`}),
				hitWith(map[string]string{"content": `"second"`}),
			}},
			wantKind: domain.OutcomeBackendError, wantInvalid: true,
		},
		{
			name:     "nil source is invalid",
			result:   &domain.SearchResult{Hits: []domain.Hit{{}}},
			wantKind: domain.OutcomeBackendError, wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectOutcome(tt.result, tt.err)

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantContent, got.Content)
			if tt.wantKind == domain.OutcomeBackendError {
				assert.Error(t, got.Err)
				assert.True(t, errors.Is(got.Err, domain.ErrBackend))
				assert.Equal(t, tt.wantInvalid, errors.Is(got.Err, domain.ErrInvalidHit))
			} else {
				assert.NoError(t, got.Err)
			}
		})
	}
}

func TestSelectOutcome_Idempotent(t *testing.T) {
	result := &domain.SearchResult{Hits: []domain.Hit{hitWith(map[string]string{"content": `"same"`})}}

	first := SelectOutcome(result, nil)
	second := SelectOutcome(result, nil)

	assert.Equal(t, first, second)
}
