package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header colors
var (
	headerBorderColor = lipgloss.Color("#00AFAF")
	headerTitleColor  = lipgloss.Color("#FFFFFF")
)

// Header is the session banner: a title, a muted subtitle and aligned
// key/value parameters.
type Header struct {
	Title    string // e.g., "CALENDAR PERMISSIONS"
	Subtitle string // e.g., "calperm v1.2.0"
	Params   []Detail
	Width    int
}

// NewHeader creates a new header with the given values
func NewHeader(title, subtitle string, params ...Detail) *Header {
	return &Header{Title: title, Subtitle: subtitle, Params: params}
}

// Render returns the styled header as a string
func (h *Header) Render(lr *lipgloss.Renderer) string {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	width := max(h.Width, MinResultWidth)

	titleLine := lr.NewStyle().Foreground(headerTitleColor).Bold(true).PaddingLeft(2).Render(strings.ToUpper(h.Title))
	sections := []string{titleLine}
	if h.Subtitle != "" {
		sections = append(sections, lr.NewStyle().Foreground(mutedBoxColor).PaddingLeft(2).Render(h.Subtitle))
	}

	if len(h.Params) > 0 {
		dividerWidth := max(width-6, 10)
		sections = append(sections, lr.NewStyle().Foreground(headerBorderColor).Render(strings.Repeat("─", dividerWidth)))

		keyWidth := 0
		for _, p := range h.Params {
			keyWidth = max(keyWidth, lipgloss.Width(p.Key)+1)
		}
		keyStyle := lr.NewStyle().Foreground(mutedBoxColor).PaddingLeft(2).Width(keyWidth + 2)
		valueStyle := lr.NewStyle().Foreground(textBoxColor)
		for _, p := range h.Params {
			sections = append(sections, keyStyle.Render(p.Key+":")+" "+valueStyle.Render(p.Value))
		}
	}

	return lr.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(headerBorderColor).
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
