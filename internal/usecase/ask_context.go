package usecase

import (
	"context"
	"time"

	"code-assist/internal/domain"
	"code-assist/internal/infra/logger"
	"code-assist/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "code-assist/usecase"

// AskContextUsecase retrieves the most relevant indexed content for a snippet.
type AskContextUsecase interface {
	Execute(ctx context.Context, query domain.Query) domain.RetrievalOutcome
}

type askContextUsecase struct {
	engine  port.SearchEngine
	metrics port.RequestMetrics
	log     *logger.ContextLogger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewAskContextUsecase wires an engine and the metrics sink. The engine is
// shared by every request and is called without any lock.
func NewAskContextUsecase(engine port.SearchEngine, metrics port.RequestMetrics, log *logger.ContextLogger) AskContextUsecase {
	if log == nil {
		log = logger.NewContextLogger(nil)
	}
	return &askContextUsecase{
		engine:  engine,
		metrics: metrics,
		log:     log,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

func (u *askContextUsecase) Execute(ctx context.Context, query domain.Query) domain.RetrievalOutcome {
	ctx, span := u.tracer.Start(ctx, "AskContext",
		trace.WithAttributes(
			attribute.String("code.file_path", query.FilePath),
			attribute.Int("code.snippet_length", len(query.Snippet)),
		),
	)
	defer span.End()

	start := u.now()
	result, err := u.engine.Search(ctx, query)
	elapsed := u.now().Sub(start)

	outcome := SelectOutcome(result, err)
	u.metrics.ObserveRetrieval(outcome.Kind, elapsed)

	span.SetAttributes(attribute.String("retrieval.outcome", outcome.Kind.String()))

	// request_id and code.file_path come from ctx.
	log := u.log.WithContext(ctx)
	switch outcome.Kind {
	case domain.OutcomeFound:
		log.InfoContext(ctx, "context found",
			"content_length", len(outcome.Content),
			"elapsed_ms", elapsed.Milliseconds())
	case domain.OutcomeNotFound:
		log.InfoContext(ctx, "no relevant context",
			"elapsed_ms", elapsed.Milliseconds())
	default:
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, "retrieval failed")
		log.ErrorContext(ctx, "context retrieval failed",
			"error", outcome.Err,
			"elapsed_ms", elapsed.Milliseconds())
	}

	return outcome
}
