package style

import "github.com/muesli/termenv"

// Style is one text decoration.
type Style int

const (
	StyleNone Style = iota
	Bold
	Faint
	Italic
	Underline
	Blink
	CrossedOut
	DoubleUnderline
	Overline
)

// termenv has no constant for double underline.
const doubleUnderlineSeq = "21"

var styleNames = map[Style]string{
	StyleNone:       "None",
	Bold:            "Bold",
	Faint:           "Faint",
	Italic:          "Italic",
	Underline:       "Underline",
	Blink:           "Blink",
	CrossedOut:      "CrossedOut",
	DoubleUnderline: "DoubleUnderline",
	Overline:        "Overline",
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return "Style(?)"
}

// sequence returns the SGR parameter for s. StyleNone and unknown values have
// none.
func (s Style) sequence() (string, bool) {
	switch s {
	case Bold:
		return termenv.BoldSeq, true
	case Faint:
		return termenv.FaintSeq, true
	case Italic:
		return termenv.ItalicSeq, true
	case Underline:
		return termenv.UnderlineSeq, true
	case Blink:
		return termenv.BlinkSeq, true
	case CrossedOut:
		return termenv.CrossOutSeq, true
	case DoubleUnderline:
		return doubleUnderlineSeq, true
	case Overline:
		return termenv.OverlineSeq, true
	default:
		return "", false
	}
}

type stylingShape uint8

const (
	shapeNone stylingShape = iota
	shapeAll
	shapeFirst
	shapePerSegment
)

// Styling says which decorations apply to which segment. The shape is always
// explicit; callers pick one of the constructors below.
type Styling struct {
	shape stylingShape
	sets  [][]Style
}

// NoStyles applies no decoration.
func NoStyles() Styling { return Styling{} }

// AllSegments applies the same decorations to every segment.
func AllSegments(styles ...Style) Styling {
	return Styling{shape: shapeAll, sets: [][]Style{styles}}
}

// FirstSegment decorates the first segment only.
func FirstSegment(styles ...Style) Styling {
	return Styling{shape: shapeFirst, sets: [][]Style{styles}}
}

// PerSegment gives segment i the decorations in sets[i]. Segments past the
// end of sets are undecorated.
func PerSegment(sets ...[]Style) Styling {
	return Styling{shape: shapePerSegment, sets: sets}
}

// EachSegment gives segment i the single decoration styles[i].
func EachSegment(styles ...Style) Styling {
	sets := make([][]Style, len(styles))
	for i, s := range styles {
		sets[i] = []Style{s}
	}
	return PerSegment(sets...)
}

func (s Styling) forSegment(i int) []Style {
	switch s.shape {
	case shapeAll:
		return s.sets[0]
	case shapeFirst:
		if i == 0 {
			return s.sets[0]
		}
	case shapePerSegment:
		if i < len(s.sets) {
			return s.sets[i]
		}
	}
	return nil
}
