package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/componentgrid/grid"
	"github.com/drake/componentgrid/ui/style"
)

// Components that can be returned from a grid.Generator.
var (
	_ grid.Component = Text("")
	_ grid.Component = Styled{}
	_ grid.Component = Check{}
	_ grid.Component = Meter{}
)

// Text is an unstyled cell.
type Text string

func (t Text) View() string { return string(t) }

// Styled renders Text with a lipgloss style.
type Styled struct {
	Text  string
	Style lipgloss.Style
}

func (s Styled) View() string { return s.Style.Render(s.Text) }

// Badge returns label rendered as a badge.
func Badge(label string, styles style.Styles) Styled {
	return Styled{Text: label, Style: styles.Badge}
}

// Tone returns text in one of the named tones ("ok", "muted", "error", "warning").
func Tone(text, tone string, styles style.Styles) Styled {
	return Styled{Text: text, Style: styles.Tone(tone)}
}

// Check is a two-state checkbox.
type Check struct {
	On  bool
	on  lipgloss.Style
	off lipgloss.Style
}

// NewCheck creates a checkbox component.
func NewCheck(on bool, styles style.Styles) Check {
	return Check{On: on, on: styles.CheckOn, off: styles.CheckOff}
}

func (c Check) View() string {
	if c.On {
		return c.on.Render("[x]")
	}
	return c.off.Render("[ ]")
}

// Meter draws a horizontal bar for a value in [0, 1].
type Meter struct {
	Value float64
	Width int
	Label bool // Append a percentage
	on    lipgloss.Style
	off   lipgloss.Style
}

// NewMeter creates a meter of the given width.
func NewMeter(value float64, width int, styles style.Styles) Meter {
	return Meter{Value: value, Width: width, Label: true, on: styles.MeterOn, off: styles.MeterOff}
}

func (m Meter) View() string {
	v := m.Value
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	w := m.Width
	if w <= 0 {
		w = 10
	}

	filled := int(v*float64(w) + 0.5)
	bar := m.on.Render(strings.Repeat("█", filled)) +
		m.off.Render(strings.Repeat("░", w-filled))
	if !m.Label {
		return bar
	}
	return fmt.Sprintf("%s %3d%%", bar, int(v*100+0.5))
}
