package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"actorrank/internal/ui/input/types"
)

// SearchPrompt precedes the query in the input line
const SearchPrompt = "Search: "

type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", SearchPrompt, ti),
	}
}
