package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/calperm/calperm/internal/layout"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/style"
)

// Palette names used by the screens.
const (
	BorderColor    = "Cyan"
	TitleColor     = "White"
	OptionColor    = "Gray"
	SelectedColor  = "Yellow"
	NavColor       = "DarkGray"
	StatusLabel    = "DarkGray"
	StatusValue    = "Cyan"
	ErrorColor     = "Red"
	SuccessColor   = "Green"
	HintColor      = "DarkCyan"
	SelectedMarker = "> "
)

// MenuMargin is the space kept on each side of the widest menu line.
const MenuMargin = 2

// Theme is what every screen needs to draw itself. It is built once per
// session and passed to each model.
type Theme struct {
	Text    *style.Renderer
	Boxes   *lipgloss.Renderer
	Border  layout.BorderStyle
	Tracker *opstate.Tracker
}

// NewTheme returns a theme whose lipgloss renderer follows the text
// renderer's capability mode.
func NewTheme(text *style.Renderer, border layout.BorderStyle, tracker *opstate.Tracker) Theme {
	boxes := lipgloss.NewRenderer(text.Out)
	boxes.SetColorProfile(text.Mode.Profile())
	boxes.SetHasDarkBackground(true)
	return Theme{Text: text, Boxes: boxes, Border: border, Tracker: tracker}
}

// line renders one request without its trailing newline.
func (t Theme) line(req style.Request) string {
	req.NoNewLine = true
	req.LinesAfter = 0
	return t.Text.Line(req)
}

func (t Theme) lines(reqs []style.Request) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, t.line(r))
	}
	return out
}

// statusBar renders the tracker as "Action: Add | Mailbox: x" or "" when
// nothing is in progress.
func (t Theme) statusBar() string {
	if t.Tracker == nil {
		return ""
	}
	items := t.Tracker.StatusBar()
	if len(items) == 0 {
		return ""
	}
	var req style.Request
	for i, it := range items {
		sep := ""
		if i > 0 {
			sep = " | "
		}
		req.Text = append(req.Text, sep+it.Label+": ", it.Value)
		req.Color = append(req.Color, style.Named(StatusLabel), style.Named(StatusValue))
	}
	return t.line(req)
}

// frame draws rows inside a box. plain holds the visible width of each row.
func (t Theme) frame(title string, rows []string, plain []int, inner int) string {
	top, mid, bottom := layout.Border(inner+2, t.Border)
	g := t.Border.Glyphs()
	edge := func(s string) string { return t.line(style.Colored(s, BorderColor)) }

	var b strings.Builder
	b.WriteString(edge(top) + "\n")
	if title != "" {
		padded := layout.Center(title, inner)
		titleReq := style.Request{
			Text:        []string{padded + strings.Repeat(" ", layout.Pad(inner, layout.Width(padded)))},
			Color:       style.Colors(TitleColor),
			Decorations: []style.Style{style.Bold},
		}
		b.WriteString(edge(g.Left) + t.line(titleReq) + edge(g.Right) + "\n")
		b.WriteString(edge(mid) + "\n")
	}
	for i, row := range rows {
		b.WriteString(edge(g.Left) + row + strings.Repeat(" ", layout.Pad(inner, plain[i])) + edge(g.Right) + "\n")
	}
	b.WriteString(edge(bottom))
	return b.String()
}

func (t Theme) newHelp() help.Model {
	h := help.New()
	if t.Boxes == nil {
		return h
	}
	h.Styles.ShortKey = t.Boxes.NewStyle().Foreground(lipgloss.Color("#909090"))
	h.Styles.ShortDesc = t.Boxes.NewStyle().Foreground(lipgloss.Color("#626262"))
	h.Styles.ShortSeparator = t.Boxes.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	h.Styles.Ellipsis = h.Styles.ShortSeparator
	return h
}
