package style

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/calperm/calperm/internal/layout"
	"github.com/calperm/calperm/internal/logging"
	"github.com/calperm/calperm/internal/termcap"
)

// TimeFormat is the layout of the optional timestamp prefix.
const TimeFormat = "2006-01-02 15:04:05"

// Renderer turns Requests into terminal output for one capability mode.
// It is not safe for concurrent use; the UI drives it from a single goroutine.
type Renderer struct {
	Mode termcap.Mode
	Out  io.Writer

	// Warnings receives one line per distinct resolution warning. Nil
	// silences them (they still reach the diagnostic log).
	Warnings io.Writer

	// Console is the backend for NativeColor mode. Without it that mode
	// degrades to plain text.
	Console termcap.Console

	// Width reports the terminal width used for centering.
	Width func() int

	// Fallback replaces unknown or out-of-range foreground colors.
	Fallback string

	// LogDir is where bare log file names are placed.
	LogDir string

	Now func() time.Time

	warned map[string]struct{}
}

// New returns a renderer writing to out in the given mode.
func New(mode termcap.Mode, out io.Writer) *Renderer {
	return &Renderer{
		Mode:     mode,
		Out:      out,
		Warnings: os.Stderr,
		Width:    func() int { return termcap.Width(os.Stdout) },
		Fallback: DefaultForeground,
		Now:      time.Now,
	}
}

type segment struct {
	text   string
	fg, bg resolved
	params []string
}

// Print renders req to Out and, when requested, appends it to a log file.
// Only an *InvalidColorError or a failed write to Out is returned; every
// other problem is downgraded to a warning.
func (r *Renderer) Print(req Request) error {
	mode := r.Mode
	if mode == termcap.NativeColor && r.Console == nil {
		mode = termcap.NoColor
	}

	segs, err := r.prepare(req, mode)
	if err != nil {
		return err
	}

	if !req.NoConsole && r.Out != nil {
		var console termcap.Console
		if mode == termcap.NativeColor {
			console = r.Console
		}
		if err := r.write(r.Out, req, segs, console); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if req.Log != nil && !req.BlankLine {
		r.appendLog(*req.Log, plainText(segs))
	}
	return nil
}

// Sprint renders req to a string. Native console colors cannot be carried in
// a string, so NativeColor renders plain. Sprint never writes log files.
func (r *Renderer) Sprint(req Request) (string, error) {
	mode := r.Mode
	if mode == termcap.NativeColor {
		mode = termcap.NoColor
	}

	segs, err := r.prepare(req, mode)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := r.write(&b, req, segs, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Line is Sprint for callers that cannot handle an error, such as a View.
// An invalid request renders as its plain text.
func (r *Renderer) Line(req Request) string {
	s, err := r.Sprint(req)
	if err != nil {
		logging.Warn("render failed", zap.Error(err))
		return strings.Join(req.Text, "")
	}
	return s
}

func (r *Renderer) prepare(req Request, mode termcap.Mode) ([]segment, error) {
	for i, c := range req.Color {
		if c.kind == colorInvalid {
			return nil, &InvalidColorError{Field: "foreground", Index: i, Value: c.raw}
		}
	}
	for i, c := range req.Background {
		if c.kind == colorInvalid {
			return nil, &InvalidColorError{Field: "background", Index: i, Value: c.raw}
		}
	}

	bold := hasStyle(req.Decorations, Bold)
	segs := make([]segment, len(req.Text))
	for i, text := range req.Text {
		seg := segment{text: text}
		seg.fg = r.foreground(req.Color, i, bold, mode)
		seg.bg = r.background(req.Background, i, mode)
		if mode.SupportsEscapes() {
			seg.params = r.params(req.Style.forSegment(i), req.Decorations, seg)
		}
		segs[i] = seg
	}
	return segs, nil
}

func (r *Renderer) foreground(colors []Color, i int, bold bool, mode termcap.Mode) resolved {
	if len(colors) == 0 {
		return unresolved
	}
	c := colors[0]
	if i < len(colors) && !colors[i].IsZero() {
		c = colors[i]
	}

	switch c.kind {
	case colorName:
		e, ok := Lookup(c.name)
		if !ok {
			r.warn(fmt.Sprintf("unknown color %q, using %s", c.name, r.fallbackEntry().Name))
			e = r.fallbackEntry()
		}
		if bold && mode == termcap.Ansi8Bit {
			e, _ = Lookup(brighten(e.Name))
		}
		return entryColor(e, bold, mode)

	case colorCode:
		switch mode {
		case termcap.Ansi8Bit:
			if c.code >= 0 && c.code <= 255 {
				return resolved{set: true, native: -1, esc: termenv.ANSI256Color(c.code)}
			}
			r.warn(fmt.Sprintf("color code %d is outside 0-255, using %s", c.code, r.fallbackEntry().Name))
		case termcap.Ansi4Bit:
			if ansi, ok := sgrToANSI(c.code); ok {
				return resolved{set: true, native: -1, esc: ansi}
			}
			r.warn(fmt.Sprintf("color code %d is not a 4-bit code (30-37, 90-97), using %s", c.code, r.fallbackEntry().Name))
		case termcap.NativeColor:
			r.warn(fmt.Sprintf("color code %d needs an ANSI terminal, using %s", c.code, r.fallbackEntry().Name))
		default:
			return unresolved
		}
		return entryColor(r.fallbackEntry(), bold, mode)
	}
	return unresolved
}

func (r *Renderer) background(colors []Color, i int, mode termcap.Mode) resolved {
	if i >= len(colors) {
		return unresolved
	}
	c := colors[i]
	if c.IsZero() || c.isNone() {
		return unresolved
	}

	switch c.kind {
	case colorName:
		e, ok := Lookup(c.name)
		if !ok {
			r.warn(fmt.Sprintf("unknown background color %q, using none", c.name))
			return unresolved
		}
		return entryColor(e, false, mode)

	case colorCode:
		switch mode {
		case termcap.Ansi8Bit:
			if c.code >= 0 && c.code <= 255 {
				return resolved{set: true, native: -1, esc: termenv.ANSI256Color(c.code)}
			}
		case termcap.Ansi4Bit:
			if ansi, ok := bgSGRToANSI(c.code); ok {
				return resolved{set: true, native: -1, esc: ansi}
			}
		}
	}
	return unresolved
}

func entryColor(e Entry, bold bool, mode termcap.Mode) resolved {
	switch mode {
	case termcap.NativeColor:
		return resolved{set: true, native: e.Native}
	case termcap.Ansi4Bit:
		code := e.ANSI
		if bold {
			code = e.Bright
		}
		ansi, _ := sgrToANSI(code)
		return resolved{set: true, native: e.Native, esc: ansi}
	case termcap.Ansi8Bit:
		return resolved{set: true, native: e.Native, esc: termenv.ANSI256Color(e.Code256)}
	default:
		return unresolved
	}
}

func (r *Renderer) fallbackEntry() Entry {
	if e, ok := Lookup(r.Fallback); ok {
		return e
	}
	if r.Fallback != "" {
		r.warn(fmt.Sprintf("unknown fallback color %q, using %s", r.Fallback, DefaultForeground))
	}
	e, _ := Lookup(DefaultForeground)
	return e
}

func (r *Renderer) params(own, line []Style, seg segment) []string {
	var params []string
	for _, group := range [][]Style{own, line} {
		for _, s := range group {
			if s == StyleNone {
				continue
			}
			seq, ok := s.sequence()
			if !ok {
				r.warn(fmt.Sprintf("unsupported style %d ignored", int(s)))
				continue
			}
			params = append(params, seq)
		}
	}
	if seg.fg.set && seg.fg.esc != nil {
		params = append(params, seg.fg.esc.Sequence(false))
	}
	if seg.bg.set && seg.bg.esc != nil {
		params = append(params, seg.bg.esc.Sequence(true))
	}
	return params
}

func (r *Renderer) write(w io.Writer, req Request, segs []segment, console termcap.Console) error {
	var b strings.Builder

	if req.BlankLine {
		_, err := io.WriteString(w, "\n")
		return err
	}

	b.WriteString(strings.Repeat("\n", max(req.LinesBefore, 0)))

	prefix := ""
	if req.ShowTime {
		prefix = "[" + r.now().Format(TimeFormat) + "] "
	}

	if req.Center {
		content := prefix + plainText(segs)
		b.WriteString(strings.Repeat(" ", layout.CenterOffset(r.width(), layout.Width(content))))
	}
	b.WriteString(strings.Repeat("\t", max(req.StartTab, 0)))
	b.WriteString(strings.Repeat(" ", max(req.StartSpaces, 0)))
	b.WriteString(prefix)

	for _, seg := range segs {
		if console != nil && (seg.fg.set || seg.bg.set) {
			// Native colors apply to whatever is written next, so flush first.
			if _, err := io.WriteString(w, b.String()); err != nil {
				return err
			}
			b.Reset()
			fg, bg := termcap.NoConsoleColor, termcap.NoConsoleColor
			if seg.fg.set {
				fg = seg.fg.native
			}
			if seg.bg.set {
				bg = seg.bg.native
			}
			_ = console.SetColors(fg, bg)
			_, err := io.WriteString(w, seg.text)
			_ = console.Reset()
			if err != nil {
				return err
			}
			continue
		}
		b.WriteString(seg.escaped())
	}

	if !req.NoNewLine {
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("\n", max(req.LinesAfter, 0)))

	_, err := io.WriteString(w, b.String())
	return err
}

func (s segment) escaped() string {
	if len(s.params) == 0 {
		return s.text
	}
	return termenv.CSI + strings.Join(s.params, ";") + "m" + s.text + termenv.CSI + termenv.ResetSeq + "m"
}

func plainText(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

func (r *Renderer) warn(msg string) {
	if r.warned == nil {
		r.warned = make(map[string]struct{})
	}
	if _, seen := r.warned[msg]; seen {
		return
	}
	r.warned[msg] = struct{}{}

	logging.Warn("render warning", zap.String("detail", msg))
	if r.Warnings != nil {
		_, _ = fmt.Fprintf(r.Warnings, "WARNING: %s\n", msg)
	}
}

func (r *Renderer) width() int {
	if r.Width == nil {
		return termcap.DefaultWidth
	}
	return r.Width()
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func hasStyle(styles []Style, want Style) bool {
	for _, s := range styles {
		if s == want {
			return true
		}
	}
	return false
}
