package fieldform

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BrianJOC/ndx-builder/forms"
)

var titleCase = cases.Title(language.English)

var (
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	stepCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F97316"))
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
)

// RenderProgress renders a step bar, or "" when p is nil or has no states.
func RenderProgress(p *forms.Progress) string {
	if p == nil || len(p.States) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.States))
	for i, state := range p.States {
		label := titleCase.String(state)
		switch {
		case i < p.Current:
			parts = append(parts, stepDoneStyle.Render("✔ "+label))
		case i == p.Current:
			parts = append(parts, stepCurrentStyle.Render("● "+label))
		default:
			parts = append(parts, stepPendingStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, stepPendingStyle.Render(" › "))
}
