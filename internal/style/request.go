package style

// Request describes one rendered line: parallel text and color lists plus
// line-level options.
//
// Color mapping is deterministic: segment i uses Color[i]; segments beyond
// the end of Color use Color[0]. Segment i uses Background[i]; segments beyond
// the end of Background get no background.
type Request struct {
	Text       []string
	Color      []Color
	Background []Color
	Style      Styling

	// Decorations apply to every segment, after the segment's own styles.
	Decorations []Style

	BlankLine   bool // print one empty line and nothing else
	LinesBefore int
	LinesAfter  int
	Center      bool
	StartTab    int
	StartSpaces int
	ShowTime    bool
	NoNewLine   bool
	NoConsole   bool // log only, nothing on screen

	Log *LogOptions
}

// LogOptions routes a plain-text copy of the line to a log file.
type LogOptions struct {
	// File is either a bare name, resolved against the renderer's log
	// directory with ".log" appended when it has no extension, or a path
	// used as given.
	File    string
	Time    bool   // prefix "[timestamp]"
	Level   string // prefix "[LEVEL]" when non-empty
	Retries int    // write attempts; 0 means DefaultLogRetries
}

// Plain builds an uncolored request.
func Plain(text ...string) Request {
	return Request{Text: text}
}

// Colored builds a single-segment request.
func Colored(text, color string) Request {
	return Request{Text: []string{text}, Color: []Color{Named(color)}}
}

// Pairs builds a request from alternating text and color names:
// Pairs("Mailbox: ", "Gray", "alice@contoso.com", "Cyan"). A trailing text
// without a color takes the first color, as any unfilled segment does.
func Pairs(pairs ...string) Request {
	var r Request
	for i := 0; i < len(pairs); i += 2 {
		r.Text = append(r.Text, pairs[i])
		if i+1 < len(pairs) {
			r.Color = append(r.Color, Named(pairs[i+1]))
		}
	}
	return r
}

// With returns a copy of r with fn applied, for one-off option tweaks.
func (r Request) With(fn func(*Request)) Request {
	fn(&r)
	return r
}
