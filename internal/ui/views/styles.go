package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Search        lipgloss.Style
	Glyph         lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Cursor        lipgloss.Style
	Selected      lipgloss.Style
	SelectionMark lipgloss.Style
	FavoriteMark  lipgloss.Style
	ToastError    lipgloss.Style
	ToastSuccess  lipgloss.Style
	ToastInfo     lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Underline(true),
		TabInactive: lipgloss.NewStyle().Faint(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Search: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Glyph:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Cursor:        lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionMark: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		FavoriteMark:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		ToastError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		ToastSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		ToastInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Help:          lipgloss.NewStyle().Faint(true),
	}
}
