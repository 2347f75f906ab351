package ui

import "github.com/charmbracelet/lipgloss"

// Colour choices for report lines. Styles are bound to a renderer in
// newStyles so the profile follows the output writer.

var (
	regressedColor = lipgloss.Color("196") // Red
	improvedColor  = lipgloss.Color("46")  // Green
)

type styles struct {
	name      lipgloss.Style
	regressed lipgloss.Style
	improved  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		name: r.NewStyle().Bold(true),
		regressed: r.NewStyle().
			Foreground(regressedColor).
			Bold(true),
		improved: r.NewStyle().
			Foreground(improvedColor),
	}
}
