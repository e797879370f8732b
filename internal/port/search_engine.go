package port

import (
	"context"

	"code-assist/internal/domain"
)

//go:generate mockgen -source=search_engine.go -destination=../mocks/mock_search_engine.go -package=mocks

// SearchEngine issues one content-match query per call.
type SearchEngine interface {
	Search(ctx context.Context, query domain.Query) (*domain.SearchResult, error)
	Ping(ctx context.Context) error
}
