package port

import (
	"time"

	"code-assist/internal/domain"
)

//go:generate mockgen -source=metrics.go -destination=../mocks/mock_metrics.go -package=mocks

// RequestMetrics records per-request instrumentation. Implementations must be
// safe for concurrent use without external locking.
type RequestMetrics interface {
	IncRequests()
	ObserveRetrieval(kind domain.OutcomeKind, elapsed time.Duration)
}
