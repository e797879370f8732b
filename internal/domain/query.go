package domain

import "encoding/json"

// ContentField is the document field matched by queries and returned by a Found outcome.
const ContentField = "content"

// Query is a snippet submitted by the editor along with the file it came from.
// FilePath is metadata only; it is logged but never affects ranking.
type Query struct {
	Snippet  string
	FilePath string
}

// Hit is one matching document as returned by the search backend.
type Hit struct {
	Source map[string]json.RawMessage
}

// SearchResult holds hits in backend relevance order.
type SearchResult struct {
	Hits []Hit
}
