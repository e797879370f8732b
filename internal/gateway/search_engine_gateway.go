package gateway

import (
	"context"

	"code-assist/internal/domain"
	"code-assist/internal/driver"
)

type SearchDriver interface {
	Search(ctx context.Context, snippet string) ([]driver.SearchHitDriver, error)
	Ping(ctx context.Context) error
}

// SearchEngineGateway turns a Query into exactly one backend call. It never
// retries and never re-ranks.
type SearchEngineGateway struct {
	driver SearchDriver
}

func NewSearchEngineGateway(driver SearchDriver) *SearchEngineGateway {
	return &SearchEngineGateway{
		driver: driver,
	}
}

func (g *SearchEngineGateway) Search(ctx context.Context, query domain.Query) (*domain.SearchResult, error) {
	driverHits, err := g.driver.Search(ctx, query.Snippet)
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "Search",
			Err: err.Error(),
		}
	}

	hits := make([]domain.Hit, len(driverHits))
	for i, h := range driverHits {
		hits[i] = domain.Hit{Source: h.Source}
	}

	return &domain.SearchResult{Hits: hits}, nil
}

func (g *SearchEngineGateway) Ping(ctx context.Context) error {
	if err := g.driver.Ping(ctx); err != nil {
		return &domain.SearchEngineError{
			Op:  "Ping",
			Err: err.Error(),
		}
	}
	return nil
}
