// Package paginator holds the result list's page state.
//
// It tracks two phases. Before the first completed search the list renders
// whatever it holds without an empty-state message; after it, an empty
// result set is reported as "nothing found". The phase only moves forward,
// driven by OnSearchCompleted.
package paginator

import (
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"

	"actorrank/internal/domain"
)

// DefaultPageSize is the number of results per page
const DefaultPageSize = 10

// Phase is the search lifecycle as seen by the result list
type Phase int

const (
	// NotSearched is the phase before any search has completed
	NotSearched Phase = iota
	// Searched is the phase after the first completed search
	Searched
)

func (p Phase) String() string {
	if p == Searched {
		return "searched"
	}
	return "not-searched"
}

// Paginator owns the current page of a result set
type Paginator struct {
	results        []domain.ActorRecord
	phase          Phase
	currentPage    int // 1-based
	pageSize       int
	cursor         int // index into the visible slice
	resetOnResults bool
	control        paginator.Model
}

// New creates a paginator. With resetOnResults every completed search
// moves back to page 1; without it the page is kept.
func New(pageSize int, resetOnResults bool) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	control := paginator.New()
	control.Type = paginator.Arabic
	control.PerPage = pageSize

	return &Paginator{
		results:        []domain.ActorRecord{},
		phase:          NotSearched,
		currentPage:    1,
		pageSize:       pageSize,
		resetOnResults: resetOnResults,
		control:        control,
	}
}

// OnSearchCompleted replaces the result set and enters the Searched phase
func (p *Paginator) OnSearchCompleted(results []domain.ActorRecord) {
	if results == nil {
		results = []domain.ActorRecord{}
	}
	p.results = results
	p.phase = Searched
	p.cursor = 0
	if p.resetOnResults {
		p.currentPage = 1
	}
}

// OnPageChange jumps to page. Only the lower bound is enforced; pages past
// the end simply show nothing.
func (p *Paginator) OnPageChange(page int) {
	if page < 1 {
		page = 1
	}
	if page != p.currentPage {
		p.cursor = 0
	}
	p.currentPage = page
}

// NextPage moves forward when a later page exists
func (p *Paginator) NextPage() bool {
	if p.currentPage >= p.TotalPages() {
		return false
	}
	p.OnPageChange(p.currentPage + 1)
	return true
}

// PrevPage moves back when an earlier page exists
func (p *Paginator) PrevPage() bool {
	if p.currentPage <= 1 {
		return false
	}
	p.OnPageChange(p.currentPage - 1)
	return true
}

// FirstPage jumps to page 1
func (p *Paginator) FirstPage() bool {
	if p.currentPage == 1 {
		return false
	}
	p.OnPageChange(1)
	return true
}

// LastPage jumps to the last page, if any
func (p *Paginator) LastPage() bool {
	last := p.TotalPages()
	if last == 0 || p.currentPage == last {
		return false
	}
	p.OnPageChange(last)
	return true
}

// TotalPages is ceil(len(results)/pageSize); 0 for no results
func (p *Paginator) TotalPages() int {
	return (len(p.results) + p.pageSize - 1) / p.pageSize
}

// VisibleSlice returns results[(page-1)*size : page*size], clamped to the result length
func (p *Paginator) VisibleSlice() []domain.ActorRecord {
	start := (p.currentPage - 1) * p.pageSize
	if start >= len(p.results) {
		return []domain.ActorRecord{}
	}
	end := start + p.pageSize
	if end > len(p.results) {
		end = len(p.results)
	}
	return p.results[start:end]
}

// MoveCursor moves the selection within the visible slice
func (p *Paginator) MoveCursor(delta int) {
	visible := len(p.VisibleSlice())
	if visible == 0 {
		p.cursor = 0
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= visible {
		p.cursor = visible - 1
	}
}

// Cursor returns the selected index within the visible slice
func (p *Paginator) Cursor() int {
	return p.cursor
}

// Selected returns the actor under the cursor
func (p *Paginator) Selected() (domain.ActorRecord, bool) {
	visible := p.VisibleSlice()
	if p.cursor < 0 || p.cursor >= len(visible) {
		return domain.ActorRecord{}, false
	}
	return visible[p.cursor], true
}

// ShowNothingFound reports whether the empty-state message replaces the list
func (p *Paginator) ShowNothingFound() bool {
	return p.phase == Searched && len(p.results) == 0
}

// OutOfRange reports whether the kept page lies past the last page of the results
func (p *Paginator) OutOfRange() bool {
	total := p.TotalPages()
	return total > 0 && p.currentPage > total
}

// ControlView renders the page indicator, or "" when there are no pages.
// A page past the end reads "3 (of 1)".
func (p *Paginator) ControlView() string {
	total := p.TotalPages()
	if total == 0 {
		return ""
	}
	if p.OutOfRange() {
		return fmt.Sprintf("%d (of %d)", p.currentPage, total)
	}
	p.control.TotalPages = total
	p.control.Page = p.currentPage - 1
	return p.control.View()
}

// CurrentPage returns the 1-based page number
func (p *Paginator) CurrentPage() int {
	return p.currentPage
}

// Phase returns the current phase
func (p *Paginator) Phase() Phase {
	return p.phase
}

// Results returns the full result set
func (p *Paginator) Results() []domain.ActorRecord {
	return p.results
}
