package driver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeMeilisearch(t *testing.T, handler http.HandlerFunc) *MeilisearchDriver {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewMeilisearchDriver(meilisearch.New(srv.URL), "codebase", 2*time.Second)
}

func TestMeilisearchDriver_Search(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	d := newFakeMeilisearch(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hits":[{"id":"1","content":"function parseConfig() {...}"}],"query":"parseConfig","limit":20,"offset":0,"estimatedTotalHits":1,"processingTimeMs":1}`)
	})

	hits, err := d.Search(context.Background(), "parseConfig")
	require.NoError(t, err)

	assert.Equal(t, "/indexes/codebase/search", gotPath)
	assert.Equal(t, "parseConfig", gotBody["q"])
	assert.Equal(t, []any{"content"}, gotBody["attributesToSearchOn"])

	require.Len(t, hits, 1)
	assert.JSONEq(t, `"function parseConfig() {...}"`, string(hits[0].Source["content"]))
}

func TestMeilisearchDriver_Search_BackendError(t *testing.T) {
	d := newFakeMeilisearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"internal","code":"internal","type":"internal","link":""}`)
	})

	hits, err := d.Search(context.Background(), "parseConfig")
	assert.Nil(t, hits)

	var derr *DriverError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Search", derr.Op)
}

func TestMeilisearchDriver_Ping(t *testing.T) {
	d := newFakeMeilisearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"available"}`)
	})
	assert.NoError(t, d.Ping(context.Background()))
}
