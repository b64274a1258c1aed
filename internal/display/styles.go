package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	errorLabel lipgloss.Style
	fieldLabel lipgloss.Style
	hint       lipgloss.Style
	header     lipgloss.Style
	group      lipgloss.Style
	cell       lipgloss.Style
	border     lipgloss.Style
}

// newStyles builds styles for w's renderer, so colour is only emitted when w
// is a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		errorLabel: r.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true),
		fieldLabel: r.NewStyle().
			Foreground(lipgloss.Color("#6B7280")),
		hint: r.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Italic(true),
		header: r.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true).
			Padding(0, 1),
		group: r.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Padding(0, 1),
		cell: r.NewStyle().
			Padding(0, 1),
		border: r.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")),
	}
}
