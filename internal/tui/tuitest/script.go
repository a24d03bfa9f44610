// Package tuitest drives bubbletea models with scripted key presses.
package tuitest

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Common keys.
var (
	Up    = tea.KeyMsg{Type: tea.KeyUp}
	Down  = tea.KeyMsg{Type: tea.KeyDown}
	Left  = tea.KeyMsg{Type: tea.KeyLeft}
	Right = tea.KeyMsg{Type: tea.KeyRight}
	Enter = tea.KeyMsg{Type: tea.KeyEnter}
	Esc   = tea.KeyMsg{Type: tea.KeyEsc}
	CtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	Space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// Type returns the key press that inserts s.
func Type(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Downs returns n Down presses.
func Downs(n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, n)
	for i := range keys {
		keys[i] = Down
	}
	return keys
}

// ErrScriptExhausted is returned when a model is still waiting for input
// after the last scripted key.
var ErrScriptExhausted = errors.New("tuitest: script ran out of keys")

// Script is a Runner that feeds queued keys to each model it runs. It renders
// a frame before every key so View is exercised as it would be on a terminal.
type Script struct {
	keys []tea.KeyMsg
	pos  int

	// Ran holds the final state of every model, in order.
	Ran []tea.Model
	// Frames holds every rendered frame, in order.
	Frames []string
}

// New returns a script that will press keys in order.
func New(keys ...tea.KeyMsg) *Script {
	return &Script{keys: keys}
}

// Remaining is the number of keys not consumed yet.
func (s *Script) Remaining() int {
	return len(s.keys) - s.pos
}

// Run implements tui.Runner. The model must expose Done() bool.
func (s *Script) Run(m tea.Model) (tea.Model, error) {
	_ = m.Init()
	for !done(m) {
		s.Frames = append(s.Frames, m.View())
		if s.pos >= len(s.keys) {
			s.Ran = append(s.Ran, m)
			return m, fmt.Errorf("%w (model %T)", ErrScriptExhausted, m)
		}
		m, _ = m.Update(s.keys[s.pos])
		s.pos++
	}
	s.Ran = append(s.Ran, m)
	return m, nil
}

// Titles lists the Title() of every model run that has one.
func (s *Script) Titles() []string {
	var titles []string
	for _, m := range s.Ran {
		if t, ok := m.(interface{ Title() string }); ok {
			titles = append(titles, t.Title())
		}
	}
	return titles
}

func done(m tea.Model) bool {
	f, ok := m.(interface{ Done() bool })
	if !ok {
		return true
	}
	return f.Done()
}
