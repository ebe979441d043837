// Package tui runs a grid view as a full-screen Bubble Tea program.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program in the alternate screen and blocks until exit.
func Run[T any, K comparable](m *Model[T, K], opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
