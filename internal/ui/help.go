package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	inputtypes "actorrank/internal/ui/input/types"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent(keys inputtypes.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sections := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Results", []key.Binding{keys.Up, keys.Down, keys.PrevPage, keys.NextPage, keys.FirstPage, keys.LastPage}},
		{"Search", []key.Binding{keys.Search, keys.Refresh, keys.Open}},
		{"Other", []key.Binding{keys.Help, keys.Quit}},
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("actorrank Help"))
	help.WriteString("\n")

	for _, section := range sections {
		help.WriteString(sectionStyle.Render(section.name))
		help.WriteString("\n")
		for _, b := range section.bindings {
			keysText := strings.Join(b.Keys(), ", ")
			help.WriteString(fmt.Sprintf("  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-22s", keysText)),
				descStyle.Render(b.Help().Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  In the search box: enter submits, esc returns to the results"))
	help.WriteString("\n")

	return help.String()
}
