package style

import (
	"strings"

	"github.com/calperm/calperm/internal/termcap"
)

// Entry is the concrete rendering of one palette name in every color model.
type Entry struct {
	Name    string
	Native  int // console color index, 0-15
	ANSI    int // 4-bit SGR foreground code
	Bright  int // 4-bit SGR code used when the line is bold
	Code256 int // 8-bit palette index
}

// Default foreground substituted for unknown names.
const DefaultForeground = "Gray"

// NoneName is the background sentinel meaning "leave the background alone".
const NoneName = "None"

// The sixteen console colors come first, in console order; extended shades
// follow.
var paletteEntries = []Entry{
	{"Black", termcap.ConsoleBlack, 30, 90, 0},
	{"DarkBlue", termcap.ConsoleDarkBlue, 34, 94, 4},
	{"DarkGreen", termcap.ConsoleDarkGreen, 32, 92, 2},
	{"DarkCyan", termcap.ConsoleDarkCyan, 36, 96, 6},
	{"DarkRed", termcap.ConsoleDarkRed, 31, 91, 1},
	{"DarkMagenta", termcap.ConsoleDarkMagenta, 35, 95, 5},
	{"DarkYellow", termcap.ConsoleDarkYellow, 33, 93, 3},
	{"Gray", termcap.ConsoleGray, 37, 97, 7},
	{"DarkGray", termcap.ConsoleDarkGray, 90, 90, 8},
	{"Blue", termcap.ConsoleBlue, 94, 94, 12},
	{"Green", termcap.ConsoleGreen, 92, 92, 10},
	{"Cyan", termcap.ConsoleCyan, 96, 96, 14},
	{"Red", termcap.ConsoleRed, 91, 91, 9},
	{"Magenta", termcap.ConsoleMagenta, 95, 95, 13},
	{"Yellow", termcap.ConsoleYellow, 93, 93, 11},
	{"White", termcap.ConsoleWhite, 97, 97, 15},

	{"LightGray", termcap.ConsoleGray, 37, 97, 250},
	{"LightRed", termcap.ConsoleRed, 91, 91, 203},
	{"LightGreen", termcap.ConsoleGreen, 92, 92, 120},
	{"LightBlue", termcap.ConsoleBlue, 94, 94, 117},
	{"LightCyan", termcap.ConsoleCyan, 96, 96, 159},
	{"LightMagenta", termcap.ConsoleMagenta, 95, 95, 213},
	{"LightYellow", termcap.ConsoleYellow, 93, 93, 229},
	{"Orange", termcap.ConsoleDarkYellow, 33, 93, 208},
	{"DarkOrange", termcap.ConsoleDarkYellow, 33, 93, 166},
	{"Gold", termcap.ConsoleYellow, 33, 93, 220},
	{"Pink", termcap.ConsoleMagenta, 95, 95, 218},
	{"HotPink", termcap.ConsoleMagenta, 95, 95, 205},
	{"Purple", termcap.ConsoleDarkMagenta, 35, 95, 93},
	{"Violet", termcap.ConsoleMagenta, 35, 95, 177},
	{"DarkViolet", termcap.ConsoleDarkMagenta, 35, 95, 128},
	{"Olive", termcap.ConsoleDarkYellow, 33, 93, 100},
	{"Teal", termcap.ConsoleDarkCyan, 36, 96, 30},
	{"Navy", termcap.ConsoleDarkBlue, 34, 94, 17},
	{"Maroon", termcap.ConsoleDarkRed, 31, 91, 88},
	{"Lime", termcap.ConsoleGreen, 92, 92, 118},
	{"Aqua", termcap.ConsoleCyan, 96, 96, 51},
	{"SkyBlue", termcap.ConsoleBlue, 94, 94, 110},
	{"Salmon", termcap.ConsoleRed, 91, 91, 209},
	{"Brown", termcap.ConsoleDarkYellow, 33, 93, 130},
	{"Silver", termcap.ConsoleGray, 37, 97, 249},
}

var paletteIndex = func() map[string]Entry {
	m := make(map[string]Entry, len(paletteEntries))
	for _, e := range paletteEntries {
		m[strings.ToLower(e.Name)] = e
	}
	return m
}()

// Lookup finds a palette entry by name, ignoring case.
func Lookup(name string) (Entry, bool) {
	e, ok := paletteIndex[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Names lists every palette name, base colors first, in palette order.
func Names() []string {
	names := make([]string, len(paletteEntries))
	for i, e := range paletteEntries {
		names[i] = e.Name
	}
	return names
}

// brighten emulates bold in 8-bit mode, where a bold escape does not brighten
// the color: "DarkX" becomes "X", otherwise "X" becomes "LightX" when such a
// shade exists.
func brighten(name string) string {
	e, ok := Lookup(name)
	if !ok {
		return name
	}
	if strings.HasPrefix(e.Name, "Dark") {
		if lighter, ok := Lookup(strings.TrimPrefix(e.Name, "Dark")); ok {
			return lighter.Name
		}
	}
	if lighter, ok := Lookup("Light" + e.Name); ok {
		return lighter.Name
	}
	return e.Name
}
