package field

import "github.com/charmbracelet/lipgloss"

// Style controls the field's rendering.
type Style struct {
	Gutter  lipgloss.Style
	LineNum lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Marker styles visible comment runs; MarkerFocused replaces it while the
	// comment is focused.
	Marker        lipgloss.Style
	MarkerFocused lipgloss.Style

	// PinGlyph is drawn for visible zero-width comments.
	PinGlyph string
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Marker:        lipgloss.NewStyle().Background(lipgloss.Color("#007d7e")).Foreground(lipgloss.Color("#ffffff")),
		MarkerFocused: lipgloss.NewStyle().Background(lipgloss.Color("#01afb0")).Foreground(lipgloss.Color("#ffffff")).Bold(true),
		PinGlyph:      "◆",
	}
}
