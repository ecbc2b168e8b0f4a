package input

import (
	"actorrank/internal/ui/paginator"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Paginator *paginator.Paginator
}

// HasSelection reports whether a card is under the cursor
func (c *ModelContext) HasSelection() bool {
	_, ok := c.Paginator.Selected()
	return ok
}

// CurrentPage returns the 1-based page
func (c *ModelContext) CurrentPage() int {
	return c.Paginator.CurrentPage()
}

// TotalPages returns the number of result pages
func (c *ModelContext) TotalPages() int {
	return c.Paginator.TotalPages()
}
