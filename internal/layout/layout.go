// Package layout holds the pure arithmetic behind boxed, centered console
// output. Every function is total: widths and paddings are never negative.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// BorderStyle selects a box-drawing glyph set.
type BorderStyle int

const (
	BorderDouble BorderStyle = iota
	BorderNormal
	BorderRounded
	BorderThick
	BorderASCII
)

// ParseBorderStyle maps a configuration name to a BorderStyle. Unknown names
// yield BorderDouble.
func ParseBorderStyle(name string) BorderStyle {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "single":
		return BorderNormal
	case "rounded":
		return BorderRounded
	case "thick":
		return BorderThick
	case "ascii":
		return BorderASCII
	default:
		return BorderDouble
	}
}

// Glyphs returns the lipgloss border definition behind a style.
func (s BorderStyle) Glyphs() lipgloss.Border {
	switch s {
	case BorderNormal:
		return lipgloss.NormalBorder()
	case BorderRounded:
		return lipgloss.RoundedBorder()
	case BorderThick:
		return lipgloss.ThickBorder()
	case BorderASCII:
		return lipgloss.ASCIIBorder()
	default:
		return lipgloss.DoubleBorder()
	}
}

// MinBoxWidth is the narrowest box Border will draw: two corners.
const MinBoxWidth = 2

// Border returns the top edge, the inner separator and the bottom edge of a
// box exactly width cells wide.
func Border(width int, style BorderStyle) (top, middle, bottom string) {
	if width < MinBoxWidth {
		width = MinBoxWidth
	}
	g := style.Glyphs()
	inner := width - 2

	top = g.TopLeft + strings.Repeat(g.Top, inner) + g.TopRight
	middle = g.MiddleLeft + strings.Repeat(g.Top, inner) + g.MiddleRight
	bottom = g.BottomLeft + strings.Repeat(g.Bottom, inner) + g.BottomRight
	return top, middle, bottom
}

// CenterOffset is the number of leading spaces that centers content of
// contentLength cells on a line terminalWidth cells wide. It is 0 when the
// content does not fit.
func CenterOffset(terminalWidth, contentLength int) int {
	if contentLength >= terminalWidth {
		return 0
	}
	return (terminalWidth - contentLength) / 2
}

// Pad is the number of filler cells needed to grow current to target.
func Pad(target, current int) int {
	if current >= target {
		return 0
	}
	return target - current
}

// Center pads s on the left so it sits in the middle of width cells.
func Center(s string, width int) string {
	return strings.Repeat(" ", CenterOffset(width, Width(s))) + s
}

// Width is the display width of plain text in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}
