package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"actorrank/internal/domain"
)

// RenderActorDetail renders an actor's full filmography for the pager.
// Unlike the card, every role is listed.
func RenderActorDetail(actor domain.ActorRecord, opts CardOptions) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var b strings.Builder

	b.WriteString(titleStyle.Render(actor.Name))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  %s  %s\n", labelStyle.Render("ID      "), valueStyle.Render(domain.FormatImdbID(actor.ImdbID))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", labelStyle.Render("Profile "), valueStyle.Render(domain.ProfileURL(opts.ProfileHost, actor.ImdbID))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", labelStyle.Render("Headshot"), valueStyle.Render(actor.Headshot(opts.PlaceholderURL))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", labelStyle.Render("        "), valueStyle.Render(actor.HeadshotAlt())))

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Roles (%d)", len(actor.Roles))))
	b.WriteString("\n")
	if len(actor.Roles) == 0 {
		b.WriteString(valueStyle.Render("  no roles listed"))
		b.WriteString("\n")
	}
	for i, role := range actor.Roles {
		b.WriteString(fmt.Sprintf("  %3d. %s\n", i+1, valueStyle.Render(role.String())))
	}

	return b.String()
}
