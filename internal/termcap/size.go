package termcap

import (
	"os"

	"golang.org/x/term"
)

// Fallback dimensions when the output is not a terminal.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the width and height of the terminal attached to f, with
// fallback.
func Size(f *os.File) (int, int) {
	if f == nil {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// Width returns the current width of the terminal attached to f.
func Width(f *os.File) int {
	w, _ := Size(f)
	return w
}
