package search

import (
	"github.com/sirupsen/logrus"

	"actorrank/internal/domain"
)

// Controller owns the query, the loading flag and the current result set.
//
// Every submit takes the next sequence number; only the response to the
// latest one is applied, so overlapping searches cannot overwrite each other.
type Controller struct {
	state     *State
	seq       uint64
	requestFn RequestFunc
	log       logrus.FieldLogger
}

// NewController creates a controller that hands fetches to request
func NewController(request RequestFunc, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		state: &State{
			Results: []domain.ActorRecord{},
		},
		requestFn: request,
		log:       log,
	}
}

// OnQueryChange stores the input text. No side effects.
func (c *Controller) OnQueryChange(text string) {
	c.state.Query = text
}

// OnSearchSubmit marks the controller as loading and issues a fetch for the
// current query. Empty queries are submitted as well. Returns the request's
// sequence number.
func (c *Controller) OnSearchSubmit() uint64 {
	return c.submit(false)
}

// OnRefresh resubmits the current query, bypassing cached results
func (c *Controller) OnRefresh() uint64 {
	return c.submit(true)
}

func (c *Controller) submit(refresh bool) uint64 {
	c.seq++
	seq := c.seq
	c.state.IsLoading = true
	c.state.LastError = nil

	c.log.WithFields(logrus.Fields{"seq": seq, "query": c.state.Query, "refresh": refresh}).Debug("search submitted")

	if c.requestFn != nil {
		c.requestFn(seq, c.state.Query, refresh)
	}
	return seq
}

// OnSearchResult applies results for request seq
func (c *Controller) OnSearchResult(seq uint64, results []domain.ActorRecord) Outcome {
	if seq != c.seq {
		c.log.WithFields(logrus.Fields{"seq": seq, "latest": c.seq}).Debug("dropping stale search result")
		return OutcomeStale
	}
	if results == nil {
		results = []domain.ActorRecord{}
	}
	c.state.Results = results
	c.state.IsLoading = false
	return OutcomeApplied
}

// OnSearchError records a failed fetch for request seq.
// Results are left as they were so the previous page stays on screen.
func (c *Controller) OnSearchError(seq uint64, err error) Outcome {
	if seq != c.seq {
		c.log.WithFields(logrus.Fields{"seq": seq, "latest": c.seq}).Debug("dropping stale search error")
		return OutcomeStale
	}
	c.log.WithError(err).WithField("seq", seq).Error("Failed to fetch data")
	c.state.IsLoading = false
	c.state.LastError = err
	return OutcomeApplied
}

// Query returns the current input text
func (c *Controller) Query() string {
	return c.state.Query
}

// Results returns the current result set
func (c *Controller) Results() []domain.ActorRecord {
	return c.state.Results
}

// IsLoading reports whether the latest request is still pending
func (c *Controller) IsLoading() bool {
	return c.state.IsLoading
}

// LastError returns the error of the latest request, if it failed
func (c *Controller) LastError() error {
	return c.state.LastError
}

// Snapshot returns a copy of the state for rendering
func (c *Controller) Snapshot() State {
	return *c.state
}
