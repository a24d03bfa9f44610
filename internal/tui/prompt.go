package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/validation"
)

// Prompt describes one validated text input.
type Prompt struct {
	Title       string
	Prompt      string
	Placeholder string
	Validation  validation.Kind
	AllowEmpty  bool
}

// ConfirmChoice is an entry of the confirmation sub-menu.
type ConfirmChoice int

const (
	ChoiceConfirm ConfirmChoice = iota
	ChoiceRetry
	ChoiceCancel
)

var confirmOptions = []Option{
	{Label: "Confirm", Color: "Green"},
	{Label: "Retry", Color: "Yellow"},
	{Label: "Cancel", Color: "Red"},
}

// PromptResult is the value entered, or Cancelled.
type PromptResult struct {
	Value     string
	Cancelled bool
}

// EmptyInputMessage is shown when an empty value is not allowed.
const EmptyInputMessage = "Input cannot be empty."

type promptState int

const (
	stateInput promptState = iota
	stateConfirm
)

// PromptModel reads a line, validates it and asks for confirmation.
type PromptModel struct {
	prompt  Prompt
	theme   Theme
	input   textinput.Model
	keys    inputKeyMap
	help    help.Model
	state   promptState
	confirm MenuModel
	value   string
	errMsg  string
	done    bool
	result  PromptResult
}

// NewPromptModel returns a prompt with a focused, empty input.
func NewPromptModel(theme Theme, p Prompt) PromptModel {
	ti := textinput.New()
	ti.Placeholder = p.Placeholder
	ti.CharLimit = 320
	ti.Prompt = "> "
	ti.Focus()

	return PromptModel{
		prompt: p,
		theme:  theme,
		input:  ti,
		keys:   newInputKeyMap(),
		help:   theme.newHelp(),
	}
}

// Init implements tea.Model
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	if m.state == stateConfirm {
		return m.updateConfirm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			return m.finish(PromptResult{Cancelled: true})
		case key.Matches(keyMsg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	if value == "" && !m.prompt.AllowEmpty {
		m.errMsg = EmptyInputMessage
		return m, nil
	}
	if value != "" {
		if ok, msg := validation.Check(m.prompt.Validation, value); !ok {
			m.errMsg = msg
			return m, nil
		}
	}

	shown := value
	if shown == "" {
		shown = "(empty)"
	}
	m.value = value
	m.errMsg = ""
	m.state = stateConfirm
	m.confirm = NewMenuModel(m.theme, Menu{
		Title:   "Confirm " + m.heading(),
		Options: confirmOptions,
		Summary: []style.Request{style.Pairs("  You entered: ", NavColor, shown, StatusValue)},
	})
	return m, nil
}

func (m PromptModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.confirm.Update(msg)
	m.confirm = next.(MenuModel)
	if !m.confirm.Done() {
		return m, nil
	}

	r := m.confirm.Result()
	if r.Outcome == OutcomeCancel {
		return m.finish(PromptResult{Cancelled: true})
	}
	switch ConfirmChoice(r.Index) {
	case ChoiceConfirm:
		return m.finish(PromptResult{Value: m.value})
	case ChoiceRetry:
		m.state = stateInput
		m.value = ""
		m.input.Reset()
		return m, nil
	default:
		return m.finish(PromptResult{Cancelled: true})
	}
}

func (m PromptModel) finish(r PromptResult) (tea.Model, tea.Cmd) {
	m.done = true
	m.result = r
	return m, tea.Quit
}

func (m PromptModel) heading() string {
	if m.prompt.Title != "" {
		return m.prompt.Title
	}
	return "input"
}

// Done reports whether the prompt finished.
func (m PromptModel) Done() bool { return m.done }

// Result is the final value once Done.
func (m PromptModel) Result() PromptResult { return m.result }

// Confirming reports whether the confirmation sub-menu is showing.
func (m PromptModel) Confirming() bool { return m.state == stateConfirm }

// Error is the current validation message, if any.
func (m PromptModel) Error() string { return m.errMsg }

// Title returns the prompt title.
func (m PromptModel) Title() string { return m.prompt.Title }

// View implements tea.Model
func (m PromptModel) View() string {
	if m.done {
		return ""
	}
	if m.state == stateConfirm {
		return m.confirm.View()
	}

	var blocks []string
	if bar := m.theme.statusBar(); bar != "" {
		blocks = append(blocks, bar, "")
	}
	if m.prompt.Title != "" {
		blocks = append(blocks, m.theme.line(style.Request{
			Text:        []string{m.prompt.Title},
			Color:       style.Colors(TitleColor),
			Decorations: []style.Style{style.Bold, style.Underline},
		}))
	}
	if m.prompt.Prompt != "" {
		blocks = append(blocks, m.theme.line(style.Colored(m.prompt.Prompt, OptionColor)))
	}
	blocks = append(blocks, m.input.View())
	if m.errMsg != "" {
		blocks = append(blocks, m.theme.line(style.Colored(m.errMsg, ErrorColor)))
	}
	blocks = append(blocks, "", m.help.View(m.keys))
	return strings.Join(blocks, "\n") + "\n"
}
