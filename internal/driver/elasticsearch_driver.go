package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"code-assist/internal/domain"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchDriver queries a single index. The underlying client is safe
// for concurrent use, so one driver is shared by every request.
type ElasticsearchDriver struct {
	client  *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewElasticsearchDriver(client *elasticsearch.Client, index string, timeout time.Duration) *ElasticsearchDriver {
	return &ElasticsearchDriver{
		client:  client,
		index:   index,
		timeout: timeout,
	}
}

type esMatchQuery struct {
	Query struct {
		Match map[string]string `json:"match"`
	} `json:"query"`
}

type esSearchResponse struct {
	Hits *struct {
		Hits []struct {
			Source map[string]json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// BuildMatchQuery renders {"query":{"match":{"content":<snippet>}}}.
func BuildMatchQuery(snippet string) ([]byte, error) {
	var q esMatchQuery
	q.Query.Match = map[string]string{domain.ContentField: snippet}
	return json.Marshal(q)
}

func (d *ElasticsearchDriver) Search(ctx context.Context, snippet string) ([]SearchHitDriver, error) {
	body, err := BuildMatchQuery(snippet)
	if err != nil {
		return nil, &DriverError{Op: "Search", Err: "failed to encode query: " + err.Error()}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	res, err := d.client.Search(
		d.client.Search.WithContext(ctx),
		d.client.Search.WithIndex(d.index),
		d.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, &DriverError{Op: "Search", Err: err.Error()}
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &DriverError{Op: "Search", Err: "backend returned an error response", StatusCode: res.StatusCode}
	}

	var payload esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, &DriverError{Op: "Search", Err: "malformed response: " + err.Error(), StatusCode: res.StatusCode}
	}
	if payload.Hits == nil {
		return nil, &DriverError{Op: "Search", Err: "malformed response: missing hits", StatusCode: res.StatusCode}
	}

	hits := make([]SearchHitDriver, 0, len(payload.Hits.Hits))
	for _, h := range payload.Hits.Hits {
		hits = append(hits, SearchHitDriver{Source: h.Source})
	}
	return hits, nil
}

func (d *ElasticsearchDriver) Ping(ctx context.Context) error {
	res, err := d.client.Ping(d.client.Ping.WithContext(ctx))
	if err != nil {
		return &DriverError{Op: "Ping", Err: err.Error()}
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return &DriverError{Op: "Ping", Err: "backend not ready", StatusCode: res.StatusCode}
	}
	return nil
}
