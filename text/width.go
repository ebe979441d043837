// Package text measures and fits terminal cell text.
package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Width returns the display width of s, ignoring ANSI codes.
func Width(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// FirstLine returns s up to the first newline. Cells are one line tall.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Fit returns s padded or truncated to exactly width display cells.
// Styled strings that are too wide lose their styling when truncated.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = FirstLine(s)
	w := Width(s)
	switch {
	case w == width:
		return s
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	plain := StripANSI(s)
	return runewidth.FillRight(runewidth.Truncate(plain, width, "…"), width)
}
