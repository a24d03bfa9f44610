package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/calperm/calperm/internal/style"
)

// PauseMessage is the default text of the pause screen.
const PauseMessage = "Press any key to continue..."

// PauseModel waits for a single key.
type PauseModel struct {
	theme   Theme
	message string
	done    bool
}

// NewPauseModel returns a pause screen showing message.
func NewPauseModel(theme Theme, message string) PauseModel {
	if message == "" {
		message = PauseMessage
	}
	return PauseModel{theme: theme, message: message}
}

// Init implements tea.Model
func (m PauseModel) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m PauseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && !m.done {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// Done reports whether a key was pressed.
func (m PauseModel) Done() bool { return m.done }

// View implements tea.Model
func (m PauseModel) View() string {
	if m.done {
		return ""
	}
	return "\n" + m.theme.line(style.Request{
		Text:  []string{m.message},
		Color: style.Colors(NavColor),
		Style: style.AllSegments(style.Italic),
	}) + "\n"
}
