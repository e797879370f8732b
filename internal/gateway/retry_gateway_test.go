package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"code-assist/internal/domain"
	"code-assist/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func fastPolicy(attempts uint) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetryingSearchEngine_SingleAttemptByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockSearchEngine(ctrl)
	backendErr := &domain.SearchEngineError{Op: "Search", Err: "down"}

	next.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, backendErr).Times(1)

	r := NewRetryingSearchEngine(next, RetryPolicy{}, testLogger())
	_, err := r.Search(context.Background(), domain.Query{Snippet: "x"})

	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestRetryingSearchEngine_RetriesUpToMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockSearchEngine(ctrl)
	backendErr := &domain.SearchEngineError{Op: "Search", Err: "down"}

	next.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, backendErr).Times(3)

	r := NewRetryingSearchEngine(next, fastPolicy(3), testLogger())
	result, err := r.Search(context.Background(), domain.Query{Snippet: "x"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestRetryingSearchEngine_StopsOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockSearchEngine(ctrl)
	want := &domain.SearchResult{Hits: []domain.Hit{}}

	gomock.InOrder(
		next.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, &domain.SearchEngineError{Op: "Search", Err: "503"}),
		next.EXPECT().Search(gomock.Any(), gomock.Any()).Return(want, nil),
	)

	r := NewRetryingSearchEngine(next, fastPolicy(5), testLogger())
	result, err := r.Search(context.Background(), domain.Query{Snippet: "x"})

	require.NoError(t, err)
	assert.Same(t, want, result, "an empty result is an answer and is not retried")
}

func TestRetryingSearchEngine_StopsWhenContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockSearchEngine(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	next.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.Query) (*domain.SearchResult, error) {
			cancel()
			return nil, context.Canceled
		},
	).Times(1)

	r := NewRetryingSearchEngine(next, fastPolicy(5), testLogger())
	_, err := r.Search(ctx, domain.Query{Snippet: "x"})

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRetryingSearchEngine_PingDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockSearchEngine(ctrl)
	next.EXPECT().Ping(gomock.Any()).Return(nil)

	r := NewRetryingSearchEngine(next, fastPolicy(3), testLogger())
	assert.NoError(t, r.Ping(context.Background()))
}
