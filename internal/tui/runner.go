package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Runner blocks until a model finishes and returns its final state.
// Tests substitute a scripted runner.
type Runner interface {
	Run(m tea.Model) (tea.Model, error)
}

// Finisher is implemented by every model in this package.
type Finisher interface {
	Done() bool
}

// ErrInterrupted is returned when the program stops before the model
// reached a terminal state.
var ErrInterrupted = errors.New("interrupted before a choice was made")

// ProgramRunner runs models as bubbletea programs on a terminal.
type ProgramRunner struct {
	In  io.Reader // nil means stdin
	Out io.Writer // nil means stdout
}

// Run implements Runner.
func (r ProgramRunner) Run(m tea.Model) (tea.Model, error) {
	var opts []tea.ProgramOption
	if r.In != nil {
		opts = append(opts, tea.WithInput(r.In))
	}
	if r.Out != nil {
		opts = append(opts, tea.WithOutput(r.Out))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return final, fmt.Errorf("terminal program failed: %w", err)
	}
	if f, ok := final.(Finisher); ok && !f.Done() {
		return final, ErrInterrupted
	}
	return final, nil
}
