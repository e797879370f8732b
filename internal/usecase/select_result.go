package usecase

import (
	"encoding/json"

	"code-assist/internal/domain"
)

// SelectOutcome turns the raw result of one search into a RetrievalOutcome.
// Only the first hit is considered; the rest are discarded. A failed search is
// always a BackendError, never NotFound.
func SelectOutcome(result *domain.SearchResult, err error) domain.RetrievalOutcome {
	if err != nil {
		return domain.BackendError(err)
	}
	if result == nil {
		return domain.BackendError(&domain.SearchEngineError{Op: "Search", Err: "nil result"})
	}
	if len(result.Hits) == 0 {
		return domain.NotFound()
	}

	raw, ok := result.Hits[0].Source[domain.ContentField]
	if !ok {
		return domain.BackendError(&domain.InvalidHitError{Index: 0, Reason: "missing content field"})
	}

	var content *string
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.BackendError(&domain.InvalidHitError{Index: 0, Reason: "content is not a string"})
	}
	if content == nil {
		return domain.BackendError(&domain.InvalidHitError{Index: 0, Reason: "content is null"})
	}

	return domain.Found(*content)
}
