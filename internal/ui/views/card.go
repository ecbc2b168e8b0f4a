package views

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"actorrank/internal/domain"
)

// TruncationMarker follows the role lines when an actor has more roles than shown
const TruncationMarker = "..."

// CardOptions controls how actor records become cards
type CardOptions struct {
	ProfileHost    string
	PlaceholderURL string
	MaxRoles       int
}

// Card is the display form of one actor
type Card struct {
	ImdbID      int
	Name        string
	ProfileURL  string
	Headshot    string
	HeadshotAlt string
	Roles       []string
	Truncated   bool
}

// BuildCard converts an actor record into a card
func BuildCard(actor domain.ActorRecord, opts CardOptions) Card {
	roles, truncated := actor.TopRoles(opts.MaxRoles)
	lines := make([]string, len(roles))
	for i, role := range roles {
		lines[i] = role.String()
	}

	return Card{
		ImdbID:      actor.ImdbID,
		Name:        actor.Name,
		ProfileURL:  domain.ProfileURL(opts.ProfileHost, actor.ImdbID),
		Headshot:    actor.Headshot(opts.PlaceholderURL),
		HeadshotAlt: actor.HeadshotAlt(),
		Roles:       lines,
		Truncated:   truncated,
	}
}

// BuildCards converts a page of actors
func BuildCards(actors []domain.ActorRecord, opts CardOptions) []Card {
	cards := make([]Card, len(actors))
	for i, a := range actors {
		cards[i] = BuildCard(a, opts)
	}
	return cards
}

// CardRenderer handles rendering of actor cards
type CardRenderer struct {
	styles       *Styles
	hyperlinks   bool
	showHeadshot bool
}

// NewCardRenderer creates a new card renderer. With hyperlinks the actor
// name is emitted as an OSC 8 link to the profile page.
func NewCardRenderer(styles *Styles, hyperlinks, showHeadshotURL bool) *CardRenderer {
	return &CardRenderer{
		styles:       styles,
		hyperlinks:   hyperlinks,
		showHeadshot: showHeadshotURL,
	}
}

// RenderCard renders a single card
func (r *CardRenderer) RenderCard(card Card, isSelected bool, query string, width int) string {
	var lines []string

	name := card.Name
	if query != "" {
		name = r.highlightMatch(name, query, r.styles.Highlight, r.styles.ActorName)
	} else {
		name = r.styles.ActorName.Render(name)
	}
	if r.hyperlinks {
		name = termenv.Hyperlink(card.ProfileURL, name)
	}
	lines = append(lines, name)

	headshot := "[" + card.HeadshotAlt + "]"
	if r.showHeadshot {
		headshot += " " + card.Headshot
	}
	lines = append(lines, r.styles.Headshot.Render(headshot))
	lines = append(lines, r.styles.Link.Render(card.ProfileURL))

	for _, role := range card.Roles {
		lines = append(lines, r.styles.Role.Render(role))
	}
	if card.Truncated {
		lines = append(lines, r.styles.Truncated.Render(TruncationMarker))
	}

	style := r.styles.Card
	if isSelected {
		style = r.styles.CardSelected
	}
	if width > 0 {
		// border takes 2 columns
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// highlightMatch highlights the first case-insensitive match of query in text
func (r *CardRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	start, end := foldIndex(text, query)
	if start == -1 {
		return normalStyle.Render(text)
	}

	before := text[:start]
	match := text[start:end]
	after := text[end:]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}

// foldIndex returns the byte range of the first window of text that equals
// query under case folding. Both offsets fall on rune boundaries of text.
func foldIndex(text, query string) (int, int) {
	n := utf8.RuneCountInString(query)
	if n == 0 {
		return -1, -1
	}
	for start := range text {
		end, count := start, 0
		for end < len(text) && count < n {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
			count++
		}
		if count < n {
			break
		}
		if strings.EqualFold(text[start:end], query) {
			return start, end
		}
	}
	return -1, -1
}
