// Package termcap decides, once per process, how much styling the attached
// terminal can take.
package termcap

import (
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Mode is the styling tier of the terminal. It never changes after detection.
type Mode int

const (
	// NoColor emits plain text only.
	NoColor Mode = iota
	// NativeColor sets colors through the console API instead of escape codes.
	NativeColor
	// Ansi4Bit uses the 16 SGR colors (30-37, 90-97).
	Ansi4Bit
	// Ansi8Bit uses the 256-color SGR extension (38;5;n).
	Ansi8Bit
)

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case NoColor:
		return "none"
	case NativeColor:
		return "native"
	case Ansi4Bit:
		return "4bit"
	case Ansi8Bit:
		return "8bit"
	default:
		return "unknown"
	}
}

// SupportsEscapes reports whether SGR escape sequences may be written.
func (m Mode) SupportsEscapes() bool {
	return m == Ansi4Bit || m == Ansi8Bit
}

// ParseMode maps a configuration value to a Mode. "auto" and "" report
// ok=false so the caller runs detection instead.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "nocolor", "no-color", "off":
		return NoColor, true
	case "native":
		return NativeColor, true
	case "4bit", "ansi", "16":
		return Ansi4Bit, true
	case "8bit", "ansi256", "256":
		return Ansi8Bit, true
	default:
		return NoColor, false
	}
}

// Probe carries everything the detector looks at. Nil fields fall back to the
// real process environment, so the zero Probe inspects the running process.
type Probe struct {
	GOOS       string
	Getenv     func(string) string
	IsTerminal func(fd uintptr) bool
	// EnableVT attempts to switch a legacy Windows console into virtual
	// terminal mode. It reports whether escapes are usable afterwards.
	EnableVT func(f *os.File) bool
}

func (p Probe) goos() string {
	if p.GOOS != "" {
		return p.GOOS
	}
	return runtime.GOOS
}

func (p Probe) getenv(key string) string {
	if p.Getenv != nil {
		return p.Getenv(key)
	}
	return os.Getenv(key)
}

func (p Probe) isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	if p.IsTerminal != nil {
		return p.IsTerminal(f.Fd())
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p Probe) enableVT(f *os.File) bool {
	if p.EnableVT != nil {
		return p.EnableVT(f)
	}
	_, err := termenv.EnableVirtualTerminalProcessing(termenv.NewOutput(f))
	return err == nil
}

// EscapesSupported reports whether escape-sequence styling is usable on f.
// Terminals known to turn on virtual terminal processing by themselves are
// trusted outright; a legacy Windows console gets one best-effort enable
// attempt; everything else is judged by TERM. It never fails: the worst case
// is false.
func (p Probe) EscapesSupported(f *os.File) bool {
	if !p.isTerminal(f) {
		return false
	}

	if p.goos() == "windows" {
		if p.autoEnablesVT() {
			return true
		}
		return p.enableVT(f)
	}

	term := p.getenv("TERM")
	return term != "" && term != "dumb"
}

func (p Probe) autoEnablesVT() bool {
	switch {
	case p.getenv("WT_SESSION") != "":
		return true
	case strings.EqualFold(p.getenv("ConEmuANSI"), "ON"):
		return true
	case p.getenv("ANSICON") != "":
		return true
	case p.getenv("TERM_PROGRAM") == "vscode":
		return true
	case p.getenv("TERM") != "" && p.getenv("TERM") != "dumb":
		// msys2, cygwin and friends export TERM and speak VT themselves
		return true
	}
	return false
}

// Detect picks the Mode for f. NO_COLOR always wins.
func (p Probe) Detect(f *os.File) Mode {
	if p.getenv("NO_COLOR") != "" {
		return NoColor
	}

	if p.EscapesSupported(f) {
		if p.has256Colors() {
			return Ansi8Bit
		}
		return Ansi4Bit
	}

	if p.goos() == "windows" && p.isTerminal(f) {
		return NativeColor
	}
	return NoColor
}

func (p Probe) has256Colors() bool {
	colorTerm := strings.ToLower(p.getenv("COLORTERM"))
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return true
	}
	if strings.Contains(p.getenv("TERM"), "256color") {
		return true
	}
	if p.getenv("WT_SESSION") != "" {
		return true
	}
	switch p.getenv("TERM_PROGRAM") {
	case "vscode", "iTerm.app", "WezTerm", "Apple_Terminal":
		return true
	}
	return false
}

// Detect runs detection against the real process environment.
func Detect(f *os.File) Mode {
	return Probe{}.Detect(f)
}

// Profile maps a Mode to the termenv profile used by lipgloss renderers.
func (m Mode) Profile() termenv.Profile {
	switch m {
	case Ansi8Bit:
		return termenv.ANSI256
	case Ansi4Bit:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}
