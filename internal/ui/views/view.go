package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// NothingFoundText replaces the card list when a completed search returned nothing
const NothingFoundText = "Nothing found"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	InputView     string
	InputFocused  bool
	Query         string
	IsLoading     bool
	SpinnerView   string
	LastError     error
	StatusMessage string
	NothingFound  bool
	Cards         []Card
	Cursor        int
	PageControl   string
	CurrentPage   int
	TotalPages    int
	ResultCount   int
	HelpModel     help.Model
	KeyMap        help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	cardRender *CardRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(hyperlinks, showHeadshotURL bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		cardRender: NewCardRenderer(styles, hyperlinks, showHeadshotURL),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}
	// Main has Padding(1, 2)
	innerWidth := width - 4
	innerHeight := height - 2

	var header strings.Builder
	header.WriteString(r.renderTitleLine(state, innerWidth))
	header.WriteString("\n")
	header.WriteString(state.InputView)
	header.WriteString("\n")
	header.WriteString(r.renderStatusLine(state))
	header.WriteString("\n")

	footer := r.renderFooter(state)

	headerLines := lipgloss.Height(header.String())
	footerLines := lipgloss.Height(footer)
	available := innerHeight - headerLines - footerLines
	if available < 1 {
		available = 1
	}

	var mainContent string
	if state.NothingFound {
		mainContent = lipgloss.Place(innerWidth, available,
			lipgloss.Center, lipgloss.Center,
			r.styles.NothingFound.Render(NothingFoundText))
	} else {
		mainContent = r.renderCardList(state, innerWidth, available)
	}

	content := header.String() + mainContent
	// push the footer to the bottom
	if pad := innerHeight - lipgloss.Height(content) - footerLines; pad > 0 {
		content += strings.Repeat("\n", pad)
	}
	content += "\n" + footer

	return r.styles.Main.MaxHeight(height).Render(content)
}

// renderTitleLine renders the logo with the result summary right-aligned
func (r *Renderer) renderTitleLine(state ViewState, width int) string {
	logo := r.styles.Title.UnsetMarginBottom().Render("actorrank")

	right := ""
	if state.TotalPages > 0 {
		page := fmt.Sprintf("%d/%d", state.CurrentPage, state.TotalPages)
		if state.CurrentPage > state.TotalPages {
			page = fmt.Sprintf("%d (of %d)", state.CurrentPage, state.TotalPages)
		}
		right = r.styles.Dim.Render(fmt.Sprintf("%d results | page %s", state.ResultCount, page))
	}
	if right == "" {
		return logo
	}

	paddingWidth := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + right
	}
	return fmt.Sprintf("%s  %s", logo, right)
}

// renderStatusLine shows loading, the last error or a status message
func (r *Renderer) renderStatusLine(state ViewState) string {
	switch {
	case state.IsLoading:
		return r.styles.StatusLoading.Render(fmt.Sprintf("%s Searching for %q", state.SpinnerView, state.Query))
	case state.LastError != nil:
		return r.styles.StatusError.Render(fmt.Sprintf("✗ Search failed: %v", state.LastError))
	case state.StatusMessage != "":
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	default:
		return ""
	}
}

// renderCardList renders the visible cards, scrolled so the cursor stays on screen
func (r *Renderer) renderCardList(state ViewState, width, height int) string {
	if len(state.Cards) == 0 {
		return ""
	}

	rendered := make([]string, len(state.Cards))
	for i, card := range state.Cards {
		rendered[i] = r.cardRender.RenderCard(card, i == state.Cursor, state.Query, width)
	}

	cursor := state.Cursor
	if cursor < 0 || cursor >= len(rendered) {
		cursor = 0
	}

	// reserve a line for each scroll indicator
	budget := height - 2
	if budget < 1 {
		budget = 1
	}

	// walk back from the cursor while earlier cards still fit
	start := cursor
	used := lipgloss.Height(rendered[cursor])
	for start > 0 {
		h := lipgloss.Height(rendered[start-1])
		if used+h > budget {
			break
		}
		used += h
		start--
	}
	end := cursor + 1
	for end < len(rendered) {
		h := lipgloss.Height(rendered[end])
		if used+h > budget {
			break
		}
		used += h
		end++
	}

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	lines = append(lines, rendered[start:end]...)
	if end < len(rendered) {
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("↓ %d more below ↓", len(rendered)-end)))
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the page control and the short help bar
func (r *Renderer) renderFooter(state ViewState) string {
	var parts []string
	if state.PageControl != "" && !state.NothingFound {
		parts = append(parts, r.styles.PageControl.Render("Page "+state.PageControl))
	}
	if state.KeyMap != nil {
		parts = append(parts, r.styles.Help.Render(state.HelpModel.View(state.KeyMap)))
	} else {
		parts = append(parts, r.styles.Help.Render("Press ? for help"))
	}
	return strings.Join(parts, "\n")
}
