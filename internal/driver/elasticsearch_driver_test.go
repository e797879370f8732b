package driver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeElasticsearch serves handler behind the product header the client insists on.
func newFakeElasticsearch(t *testing.T, handler http.HandlerFunc) *ElasticsearchDriver {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{srv.URL},
		DisableRetry: true,
	})
	require.NoError(t, err)

	return NewElasticsearchDriver(client, "codebase", 2*time.Second)
}

func TestBuildMatchQuery(t *testing.T) {
	body, err := BuildMatchQuery("parseConfig")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"match":{"content":"parseConfig"}}}`, string(body))

	body, err = BuildMatchQuery("")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"match":{"content":""}}}`, string(body))
}

func TestElasticsearchDriver_Search_SendsMatchQueryToIndex(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]any

	d := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hits":{"hits":[
			{"_source":{"content":"function parseConfig() {...}"}},
			{"_source":{"content":"second"}}
		]}}`)
	})

	hits, err := d.Search(context.Background(), "parseConfig")
	require.NoError(t, err)

	assert.Equal(t, "/codebase/_search", gotPath)
	assert.Contains(t, []string{http.MethodPost, http.MethodGet}, gotMethod)
	assert.Equal(t, map[string]any{"query": map[string]any{"match": map[string]any{"content": "parseConfig"}}}, gotBody)

	require.Len(t, hits, 2)
	assert.JSONEq(t, `"function parseConfig() {...}"`, string(hits[0].Source["content"]))
	assert.JSONEq(t, `"second"`, string(hits[1].Source["content"]))
}

func TestElasticsearchDriver_Search_EmptyHits(t *testing.T) {
	d := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":0},"hits":[]}}`)
	})

	hits, err := d.Search(context.Background(), "nonexistent_xyz")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestElasticsearchDriver_Search_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantStatus: http.StatusInternalServerError},
		{name: "index missing", status: http.StatusNotFound, body: `{"error":{"type":"index_not_found_exception"}}`, wantStatus: http.StatusNotFound},
		{name: "service unavailable", status: http.StatusServiceUnavailable, body: `{}`, wantStatus: http.StatusServiceUnavailable},
		{name: "malformed json", status: http.StatusOK, body: `{"hits":`, wantStatus: http.StatusOK},
		{name: "missing hits object", status: http.StatusOK, body: `{"took":3}`, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			hits, err := d.Search(context.Background(), "q")
			assert.Nil(t, hits)

			var derr *DriverError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, "Search", derr.Op)
			assert.Equal(t, tt.wantStatus, derr.StatusCode)
		})
	}
}

func TestElasticsearchDriver_Search_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{addr},
		DisableRetry: true,
	})
	require.NoError(t, err)
	d := NewElasticsearchDriver(client, "codebase", time.Second)

	_, err = d.Search(context.Background(), "parseConfig")

	var derr *DriverError
	require.ErrorAs(t, err, &derr)
	assert.Zero(t, derr.StatusCode)
}

func TestElasticsearchDriver_Search_Timeout(t *testing.T) {
	release := make(chan struct{})
	d := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		// The server only notices a dropped client once the body is drained.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	// Registered after the server so it runs before srv.Close.
	t.Cleanup(func() { close(release) })
	d.timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := d.Search(context.Background(), "slow")

	var derr *DriverError
	require.ErrorAs(t, err, &derr)
	assert.Less(t, time.Since(start), time.Second)
}

func TestElasticsearchDriver_Search_CallerCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	d := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })
	d.timeout = 0

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := d.Search(ctx, "abandoned")
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("search was not abandoned after cancellation")
	}
}

func TestElasticsearchDriver_Ping(t *testing.T) {
	d := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, d.Ping(context.Background()))

	down := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Error(t, down.Ping(context.Background()))
}
