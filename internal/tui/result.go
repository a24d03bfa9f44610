package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result box colors. The lipgloss renderer degrades them to the session's
// color profile.
var (
	successBoxColor = lipgloss.Color("#43BF6D")
	errorBoxColor   = lipgloss.Color("#FF5555")
	warningBoxColor = lipgloss.Color("#FFA500")
	mutedBoxColor   = lipgloss.Color("#626262")
	textBoxColor    = lipgloss.Color("#FFFFFF")
)

const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "!"
)

// MinResultWidth is the narrowest result box.
const MinResultWidth = 40

// MaxResultWidth caps result boxes on wide terminals.
const MaxResultWidth = 100

// Detail is one key/value line of a result box.
type Detail struct {
	Key   string
	Value string
}

// Result represents a result box (success, failure, or warning)
type Result struct {
	Type            ResultType
	Title           string
	Details         []Detail
	Error           error
	Troubleshooting []string
	Width           int
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{Type: ResultSuccess, Title: title, Details: details}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, troubleshooting ...string) *Result {
	return &Result{Type: ResultFailure, Title: title, Error: err, Troubleshooting: troubleshooting}
}

// NewWarningResult creates a warning result box
func NewWarningResult(title string, details ...Detail) *Result {
	return &Result{Type: ResultWarning, Title: title, Details: details}
}

// Render returns the styled result box as a string
func (r *Result) Render(lr *lipgloss.Renderer) string {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	width := max(r.Width, MinResultWidth)

	color, marker, label := successBoxColor, SuccessMarker, "SUCCESS"
	switch r.Type {
	case ResultFailure:
		color, marker, label = errorBoxColor, FailureMarker, "FAILED"
	case ResultWarning:
		color, marker, label = warningBoxColor, WarningMarker, "WARNING"
	}

	titleStyle := lr.NewStyle().Foreground(color).Bold(true)
	keyStyle := lr.NewStyle().Foreground(mutedBoxColor)
	valueStyle := lr.NewStyle().Foreground(textBoxColor)

	keyWidth := 0
	for _, d := range r.Details {
		keyWidth = max(keyWidth, lipgloss.Width(d.Key)+1)
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("%s  %s  ─  %s", marker, label, r.Title)), ""}
	for _, d := range r.Details {
		lines = append(lines, keyStyle.Width(keyWidth).Render(d.Key+":")+" "+valueStyle.Render(d.Value))
	}
	if r.Error != nil {
		lines = append(lines, lr.NewStyle().Foreground(errorBoxColor).Render("Error: "+r.Error.Error()))
	}
	if len(r.Troubleshooting) > 0 {
		lines = append(lines, "", r.renderTroubleshooting(lr, width))
	}

	return lr.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

func (r *Result) renderTroubleshooting(lr *lipgloss.Renderer, width int) string {
	lines := []string{lr.NewStyle().Foreground(mutedBoxColor).Bold(true).Render("Troubleshooting:")}
	item := lr.NewStyle().Foreground(mutedBoxColor)
	for _, tip := range r.Troubleshooting {
		lines = append(lines, item.Render("• "+tip))
	}
	return lr.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedBoxColor).
		Width(max(width-10, 20)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
