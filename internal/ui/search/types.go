package search

import "actorrank/internal/domain"

// State holds search state
type State struct {
	Query     string
	Results   []domain.ActorRecord
	IsLoading bool
	LastError error
}

// RequestFunc issues the fetch for a submitted query.
// The result must come back through OnSearchResult / OnSearchError with the same seq.
// refresh asks for fresh data instead of cached results.
type RequestFunc func(seq uint64, query string, refresh bool)

// Outcome tells the caller what a response did to the state
type Outcome int

const (
	// OutcomeApplied means the response belonged to the latest request
	OutcomeApplied Outcome = iota
	// OutcomeStale means a newer request was issued and the response was dropped
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}
