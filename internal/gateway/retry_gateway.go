package gateway

import (
	"context"
	"log/slog"
	"time"

	"code-assist/internal/domain"
	"code-assist/internal/port"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how often a failed search is re-issued.
// MaxAttempts counts the first call; 1 disables retrying.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RetryingSearchEngine wraps a SearchEngine with a bounded exponential backoff.
// Only errors are retried; an empty result is an answer.
type RetryingSearchEngine struct {
	next   port.SearchEngine
	policy RetryPolicy
	logger *slog.Logger
}

func NewRetryingSearchEngine(next port.SearchEngine, policy RetryPolicy, logger *slog.Logger) *RetryingSearchEngine {
	if policy.MaxAttempts == 0 {
		policy.MaxAttempts = 1
	}
	return &RetryingSearchEngine{
		next:   next,
		policy: policy,
		logger: logger,
	}
}

func (r *RetryingSearchEngine) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	if r.policy.InitialInterval > 0 {
		bo.InitialInterval = r.policy.InitialInterval
	}
	if r.policy.MaxInterval > 0 {
		bo.MaxInterval = r.policy.MaxInterval
	}
	bo.Multiplier = 2
	return bo
}

func (r *RetryingSearchEngine) Search(ctx context.Context, query domain.Query) (*domain.SearchResult, error) {
	if r.policy.MaxAttempts <= 1 {
		return r.next.Search(ctx, query)
	}

	attempt := 0
	operation := func() (*domain.SearchResult, error) {
		attempt++
		result, err := r.next.Search(ctx, query)
		if err != nil && ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return result, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(r.newBackOff()),
		backoff.WithMaxTries(r.policy.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.logger.WarnContext(ctx, "search failed, retrying",
				"attempt", attempt,
				"max_attempts", r.policy.MaxAttempts,
				"retry_in", next,
				"err", err,
			)
		}),
	)
}

func (r *RetryingSearchEngine) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}
