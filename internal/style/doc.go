// Package style renders colored, decorated lines of text for the capability
// mode reported by termcap.
//
// A Request is a list of text segments with parallel foreground and
// background color lists. Resolution never fails on bad values: unknown
// names and out-of-range codes fall back (Gray for foregrounds, no background
// for backgrounds) and produce a single warning. Only a color argument that
// is neither a name nor a number, see ColorOf, aborts the call with an
// *InvalidColorError.
//
// Decorations are selected with an explicit Styling value:
//
//	r.Print(style.Request{
//	    Text:  []string{"Access: ", "Editor"},
//	    Color: style.Colors("Gray", "Yellow"),
//	    Style: style.PerSegment(nil, []style.Style{style.Bold}),
//	})
//
// Lines may also be appended, without escape codes, to a log file; see
// LogOptions.
package style
