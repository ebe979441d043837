package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the grid TUI.
type Styles struct {
	// Table
	Header      lipgloss.Style
	Cell        lipgloss.Style
	CellFocused lipgloss.Style
	Separator   lipgloss.Style

	// Components
	Badge    lipgloss.Style
	CheckOn  lipgloss.Style
	CheckOff lipgloss.Style
	MeterOn  lipgloss.Style
	MeterOff lipgloss.Style

	// Status line
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Named cell tones, also reachable from Lua by name
	OK      lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Bold(true),
		Cell: lipgloss.NewStyle(),
		CellFocused: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		CheckOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		CheckOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		MeterOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")),
		MeterOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),

		OK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
	}
}

// Tone returns the named cell style. Unknown names get the plain cell style.
func (s Styles) Tone(name string) lipgloss.Style {
	switch name {
	case "ok":
		return s.OK
	case "muted":
		return s.Muted
	case "error":
		return s.Error
	case "warning", "warn":
		return s.Warning
	case "badge":
		return s.Badge
	}
	return s.Cell
}
