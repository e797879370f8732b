package driver

import (
	"context"
	"encoding/json"
	"time"

	"code-assist/internal/domain"

	"github.com/meilisearch/meilisearch-go"
)

type MeilisearchDriver struct {
	client  meilisearch.ServiceManager
	index   meilisearch.IndexManager
	timeout time.Duration
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName string, timeout time.Duration) *MeilisearchDriver {
	return &MeilisearchDriver{
		client:  client,
		index:   client.Index(indexName),
		timeout: timeout,
	}
}

// Search restricts matching to the content attribute so both backends answer
// the same question.
func (d *MeilisearchDriver) Search(ctx context.Context, snippet string) ([]SearchHitDriver, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	result, err := d.index.SearchWithContext(ctx, snippet, &meilisearch.SearchRequest{
		AttributesToSearchOn: []string{domain.ContentField},
	})
	if err != nil {
		return nil, &DriverError{Op: "Search", Err: err.Error()}
	}

	hits := make([]SearchHitDriver, 0, len(result.Hits))
	for _, hit := range result.Hits {
		source := make(map[string]json.RawMessage, len(hit))
		for k, v := range hit {
			source[k] = v
		}
		hits = append(hits, SearchHitDriver{Source: source})
	}
	return hits, nil
}

func (d *MeilisearchDriver) Ping(ctx context.Context) error {
	if _, err := d.client.HealthWithContext(ctx); err != nil {
		return &DriverError{Op: "Ping", Err: err.Error()}
	}
	return nil
}
