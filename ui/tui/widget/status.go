package widget

import (
	"strings"

	"github.com/drake/componentgrid/text"
	"github.com/drake/componentgrid/ui/style"
)

// Status is a one-line bar with left and right aligned text.
type Status struct {
	left   string
	right  string
	width  int
	styles style.Styles
}

// NewStatus creates a new status widget.
func NewStatus(styles style.Styles) *Status {
	return &Status{styles: styles}
}

// Set updates both sides of the bar.
func (s *Status) Set(left, right string) {
	s.left = left
	s.right = right
}

// View renders the bar, padding between the two sides.
func (s *Status) View() string {
	padding := max(s.width-text.Width(s.left)-text.Width(s.right), 1)
	return s.styles.StatusBar.Render(s.left + strings.Repeat(" ", padding) + s.right)
}

// SetWidth sets the line width.
func (s *Status) SetWidth(w int) {
	s.width = w
}

// Height is always one line.
func (s *Status) Height() int {
	return 1
}
