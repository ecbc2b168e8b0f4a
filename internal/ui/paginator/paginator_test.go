package paginator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actorrank/internal/domain"
)

func makeResults(n int) []domain.ActorRecord {
	out := make([]domain.ActorRecord, n)
	for i := range out {
		out[i] = domain.ActorRecord{ImdbID: i, Name: fmt.Sprintf("actor-%d", i)}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 9: 1, 10: 1, 11: 2, 20: 2, 25: 3}
	for n, want := range cases {
		p := New(10, false)
		p.OnSearchCompleted(makeResults(n))
		assert.Equal(t, want, p.TotalPages(), "N=%d", n)
	}
}

func TestVisibleSliceSecondPage(t *testing.T) {
	results := makeResults(25)
	p := New(10, false)
	p.OnSearchCompleted(results)
	p.OnPageChange(2)

	assert.Equal(t, results[10:20], p.VisibleSlice())

	p.OnPageChange(3)
	assert.Equal(t, results[20:25], p.VisibleSlice())
}

func TestOutOfRangePageIsEmpty(t *testing.T) {
	p := New(10, false)
	p.OnSearchCompleted(makeResults(5))
	p.OnPageChange(4)
	assert.Equal(t, 4, p.CurrentPage())
	assert.Empty(t, p.VisibleSlice())
	assert.True(t, p.OutOfRange())
	assert.Equal(t, "4 (of 1)", p.ControlView())

	p.OnPageChange(1)
	assert.False(t, p.OutOfRange())
	assert.Equal(t, "1/1", p.ControlView())
}

func TestSmallerResultSetLeavesPageOutOfRange(t *testing.T) {
	p := New(10, false)
	p.OnSearchCompleted(makeResults(25))
	p.LastPage()
	require.Equal(t, "3/3", p.ControlView())

	p.OnSearchCompleted(makeResults(4))
	assert.True(t, p.OutOfRange())
	assert.Equal(t, "3 (of 1)", p.ControlView())
}

func TestPhaseTransitionsOnceOnCompletion(t *testing.T) {
	p := New(10, false)
	assert.Equal(t, NotSearched, p.Phase())
	assert.False(t, p.ShowNothingFound(), "empty list before any search has no empty-state")

	p.OnSearchCompleted([]domain.ActorRecord{})
	assert.Equal(t, Searched, p.Phase())
	assert.True(t, p.ShowNothingFound())

	p.OnSearchCompleted(makeResults(2))
	assert.Equal(t, Searched, p.Phase())
	assert.False(t, p.ShowNothingFound())

	p.OnSearchCompleted(nil)
	assert.True(t, p.ShowNothingFound())
}

func TestPageKeptAcrossResultSetsByDefault(t *testing.T) {
	p := New(10, false)
	p.OnSearchCompleted(makeResults(30))
	p.OnPageChange(3)

	p.OnSearchCompleted(makeResults(4))
	assert.Equal(t, 3, p.CurrentPage())
	assert.Empty(t, p.VisibleSlice())
	assert.False(t, p.ShowNothingFound(), "stale page is not the empty-state")
}

func TestResetPageOnResults(t *testing.T) {
	p := New(10, true)
	p.OnSearchCompleted(makeResults(30))
	p.OnPageChange(3)

	p.OnSearchCompleted(makeResults(4))
	assert.Equal(t, 1, p.CurrentPage())
	assert.Len(t, p.VisibleSlice(), 4)
}

func TestNavigationStaysWithinControlBounds(t *testing.T) {
	p := New(10, false)
	p.OnSearchCompleted(makeResults(21))

	assert.False(t, p.PrevPage())
	assert.True(t, p.NextPage())
	assert.True(t, p.NextPage())
	assert.Equal(t, 3, p.CurrentPage())
	assert.False(t, p.NextPage())

	assert.True(t, p.FirstPage())
	assert.Equal(t, 1, p.CurrentPage())
	assert.True(t, p.LastPage())
	assert.Equal(t, 3, p.CurrentPage())
	assert.False(t, p.LastPage())
}

func TestNavigationWithoutResults(t *testing.T) {
	p := New(10, false)
	assert.False(t, p.NextPage())
	assert.False(t, p.LastPage())
	assert.Equal(t, "", p.ControlView())
}

func TestCursorSelection(t *testing.T) {
	results := makeResults(15)
	p := New(10, false)
	p.OnSearchCompleted(results)

	p.MoveCursor(3)
	got, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, results[3], got)

	p.MoveCursor(100)
	assert.Equal(t, 9, p.Cursor())

	p.NextPage()
	assert.Equal(t, 0, p.Cursor(), "page change resets the cursor")
	p.MoveCursor(100)
	assert.Equal(t, 4, p.Cursor())
	got, _ = p.Selected()
	assert.Equal(t, results[14], got)

	p.MoveCursor(-100)
	assert.Equal(t, 0, p.Cursor())
}

func TestSelectedOnEmptyPage(t *testing.T) {
	p := New(10, false)
	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestControlView(t *testing.T) {
	p := New(10, false)
	p.OnSearchCompleted(makeResults(25))
	p.OnPageChange(2)
	assert.Equal(t, "2/3", p.ControlView())
}

func TestInvalidPageSizeFallsBack(t *testing.T) {
	p := New(0, false)
	p.OnSearchCompleted(makeResults(25))
	assert.Len(t, p.VisibleSlice(), DefaultPageSize)
	assert.Equal(t, 3, p.TotalPages())

	p.OnPageChange(-3)
	assert.Equal(t, 1, p.CurrentPage())
}
