package tui

import "strings"

// dockItem is a full-width line group stacked under the table.
type dockItem interface {
	SetWidth(w int)
	Height() int
	View() string
}

// dock is the bottom area: separator, status line and help.
type dock []dockItem

// fit gives every item the screen width and returns the lines left for
// the table, at least one.
func (d dock) fit(width, height int) int {
	used := 0
	for _, item := range d {
		item.SetWidth(width)
		used += item.Height()
	}
	return max(height-used, 1)
}

// View skips items that currently take no lines.
func (d dock) View() string {
	var parts []string
	for _, item := range d {
		if item.Height() > 0 {
			parts = append(parts, item.View())
		}
	}
	return strings.Join(parts, "\n")
}
