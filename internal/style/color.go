package style

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

type colorKind uint8

const (
	colorUnset colorKind = iota
	colorName
	colorCode
	colorInvalid
)

// Color is a logical color: a palette name or, for the ANSI modes, a raw
// numeric code. The zero Color means "not specified".
type Color struct {
	kind colorKind
	name string
	code int
	raw  any
}

// Named returns the palette color called name.
func Named(name string) Color {
	return Color{kind: colorName, name: name}
}

// Code returns a raw numeric color: 0-255 in 8-bit mode, 30-37 or 90-97 in
// 4-bit mode.
func Code(n int) Color {
	return Color{kind: colorCode, code: n}
}

// None is the explicit "no background" value.
var None = Named(NoneName)

// ColorOf converts a dynamically typed value, such as one decoded from
// configuration, into a Color. Strings become names and integers become codes.
// Anything else yields a Color that makes the render call fail with an
// *InvalidColorError.
func ColorOf(v any) Color {
	switch v := v.(type) {
	case Color:
		return v
	case string:
		return Named(v)
	case int:
		return Code(v)
	case int8:
		return Code(int(v))
	case int16:
		return Code(int(v))
	case int32:
		return Code(int(v))
	case int64:
		return Code(int(v))
	case uint8:
		return Code(int(v))
	case uint16:
		return Code(int(v))
	case uint32:
		return Code(int(v))
	case uint:
		return Code(int(v))
	default:
		return Color{kind: colorInvalid, raw: v}
	}
}

// Colors is shorthand for a list of named colors.
func Colors(names ...string) []Color {
	out := make([]Color, len(names))
	for i, n := range names {
		out[i] = Named(n)
	}
	return out
}

// IsZero reports whether the color was left unspecified.
func (c Color) IsZero() bool {
	return c.kind == colorUnset
}

func (c Color) isNone() bool {
	return c.kind == colorName && strings.EqualFold(strings.TrimSpace(c.name), NoneName)
}

// String returns the name, the code, or a description of an invalid value.
func (c Color) String() string {
	switch c.kind {
	case colorName:
		return c.name
	case colorCode:
		return fmt.Sprintf("%d", c.code)
	case colorInvalid:
		return fmt.Sprintf("invalid(%T)", c.raw)
	default:
		return ""
	}
}

// InvalidColorError is returned when a color argument is neither a name nor a
// number. It is the only error that aborts a render call.
type InvalidColorError struct {
	Field string // "foreground" or "background"
	Index int
	Value any
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("%s color %d has unsupported type %T (want string or integer)", e.Field, e.Index, e.Value)
}

// resolved is a color ready for one output model.
type resolved struct {
	set    bool
	native int
	esc    termenv.Color
}

var unresolved = resolved{native: -1}

// sgrToANSI converts a 4-bit SGR foreground code to a termenv color.
func sgrToANSI(code int) (termenv.ANSIColor, bool) {
	switch {
	case code >= 30 && code <= 37:
		return termenv.ANSIColor(code - 30), true
	case code >= 90 && code <= 97:
		return termenv.ANSIColor(code - 90 + 8), true
	default:
		return 0, false
	}
}

// bgSGRToANSI accepts background codes (40-47, 100-107) as well as the
// foreground codes of the same colors.
func bgSGRToANSI(code int) (termenv.ANSIColor, bool) {
	switch {
	case code >= 40 && code <= 47:
		return termenv.ANSIColor(code - 40), true
	case code >= 100 && code <= 107:
		return termenv.ANSIColor(code - 100 + 8), true
	default:
		return sgrToANSI(code)
	}
}
