package termcap

// Console colors, numbered the way the Windows console API numbers them.
const (
	ConsoleBlack = iota
	ConsoleDarkBlue
	ConsoleDarkGreen
	ConsoleDarkCyan
	ConsoleDarkRed
	ConsoleDarkMagenta
	ConsoleDarkYellow
	ConsoleGray
	ConsoleDarkGray
	ConsoleBlue
	ConsoleGreen
	ConsoleCyan
	ConsoleRed
	ConsoleMagenta
	ConsoleYellow
	ConsoleWhite
)

// NoConsoleColor leaves the corresponding console attribute untouched.
const NoConsoleColor = -1

// Console is the native color backend used in NativeColor mode. Colors apply
// to everything written to the console until the next call.
type Console interface {
	SetColors(fg, bg int) error
	Reset() error
}
