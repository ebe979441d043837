package widget

import (
	"strings"

	"github.com/drake/componentgrid/ui/style"
)

// Separator renders a horizontal rule.
type Separator struct {
	width  int
	styles style.Styles
}

// NewSeparator creates a new separator.
func NewSeparator(styles style.Styles) *Separator {
	return &Separator{styles: styles}
}

// View draws a full-width rule.
func (s *Separator) View() string {
	return s.styles.Separator.Render(strings.Repeat("─", s.width))
}

// SetWidth sets the rule length.
func (s *Separator) SetWidth(w int) {
	s.width = w
}

// Height is always one line.
func (s *Separator) Height() int {
	return 1
}
