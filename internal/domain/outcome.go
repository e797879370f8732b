package domain

// OutcomeKind tags a RetrievalOutcome.
type OutcomeKind int

const (
	OutcomeNotFound OutcomeKind = iota
	OutcomeFound
	OutcomeBackendError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeBackendError:
		return "backend_error"
	default:
		return "unknown"
	}
}

// NotFoundMessage is returned to callers when the index has no match.
const NotFoundMessage = "No relevant context found."

// RetrievalOutcome is the normalized result of one retrieval attempt.
// Err is kept for logging only and must never be rendered to callers.
type RetrievalOutcome struct {
	Kind    OutcomeKind
	Content string
	Err     error
}

func Found(content string) RetrievalOutcome {
	return RetrievalOutcome{Kind: OutcomeFound, Content: content}
}

func NotFound() RetrievalOutcome {
	return RetrievalOutcome{Kind: OutcomeNotFound}
}

func BackendError(err error) RetrievalOutcome {
	return RetrievalOutcome{Kind: OutcomeBackendError, Err: err}
}
