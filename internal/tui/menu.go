package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/calperm/calperm/internal/layout"
	"github.com/calperm/calperm/internal/style"
)

// Outcome is how a menu ended.
type Outcome int

const (
	OutcomeSelect Outcome = iota
	OutcomeBack
	OutcomeQuit
	OutcomeCancel
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelect:
		return "select"
	case OutcomeBack:
		return "back"
	case OutcomeQuit:
		return "quit"
	case OutcomeCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Labels of the navigation entries appended after the options.
const (
	BackLabel = "Back"
	QuitLabel = "Quit"
)

// Option is one selectable menu line.
type Option struct {
	Label string
	Color string // palette name; OptionColor when empty
	Hint  string // shown under the box while the option is selected
}

// Menu describes one menu invocation.
type Menu struct {
	Title     string
	Options   []Option
	AllowBack bool
	AllowQuit bool

	// Preview is sample content drawn above the box, after the status bar.
	Preview []style.Request
	// Summary is caller content drawn after the preview.
	Summary []style.Request
}

// MenuResult is the terminal state of a menu. Index is meaningful only for
// OutcomeSelect.
type MenuResult struct {
	Outcome Outcome
	Index   int
}

type entryKind int

const (
	entryOption entryKind = iota
	entryBack
	entryQuit
)

// MenuModel is the arrow-key menu state machine.
type MenuModel struct {
	menu   Menu
	theme  Theme
	keys   menuKeyMap
	help   help.Model
	cursor int
	done   bool
	result MenuResult
}

// NewMenuModel returns a menu with the first entry selected.
func NewMenuModel(theme Theme, menu Menu) MenuModel {
	return MenuModel{
		menu:  menu,
		theme: theme,
		keys:  newMenuKeyMap(),
		help:  theme.newHelp(),
	}
}

func (m MenuModel) entries() []entryKind {
	kinds := make([]entryKind, 0, len(m.menu.Options)+2)
	for range m.menu.Options {
		kinds = append(kinds, entryOption)
	}
	if m.menu.AllowBack {
		kinds = append(kinds, entryBack)
	}
	if m.menu.AllowQuit {
		kinds = append(kinds, entryQuit)
	}
	return kinds
}

// Init implements tea.Model
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}
	n := len(m.entries())

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		return m.finish(MenuResult{Outcome: OutcomeCancel, Index: -1})

	case n == 0:
		return m, nil

	case key.Matches(keyMsg, m.keys.Prev):
		m.cursor = (m.cursor - 1 + n) % n

	case key.Matches(keyMsg, m.keys.Next):
		m.cursor = (m.cursor + 1) % n

	case key.Matches(keyMsg, m.keys.Select):
		switch m.entries()[m.cursor] {
		case entryBack:
			return m.finish(MenuResult{Outcome: OutcomeBack, Index: -1})
		case entryQuit:
			return m.finish(MenuResult{Outcome: OutcomeQuit, Index: -1})
		default:
			return m.finish(MenuResult{Outcome: OutcomeSelect, Index: m.cursor})
		}
	}
	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	m.done = true
	m.result = r
	return m, tea.Quit
}

// Done reports whether a terminal outcome was reached.
func (m MenuModel) Done() bool { return m.done }

// Result is the outcome once Done.
func (m MenuModel) Result() MenuResult { return m.result }

// Cursor is the selected entry index.
func (m MenuModel) Cursor() int { return m.cursor }

// Title returns the menu title.
func (m MenuModel) Title() string { return m.menu.Title }

// Width is the outer box width for the current title and options.
func (m MenuModel) Width() int {
	return m.innerWidth() + 2
}

func (m MenuModel) labels() []string {
	labels := make([]string, 0, len(m.menu.Options)+2)
	for _, o := range m.menu.Options {
		labels = append(labels, o.Label)
	}
	if m.menu.AllowBack {
		labels = append(labels, BackLabel)
	}
	if m.menu.AllowQuit {
		labels = append(labels, QuitLabel)
	}
	return labels
}

func (m MenuModel) innerWidth() int {
	widest := layout.Width(m.menu.Title)
	for _, l := range m.labels() {
		widest = max(widest, layout.Width(SelectedMarker)+layout.Width(l))
	}
	return widest + 2*MenuMargin
}

// View implements tea.Model. The box is sized from the current content on
// every frame.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var blocks []string
	if bar := m.theme.statusBar(); bar != "" {
		blocks = append(blocks, bar, "")
	}
	if len(m.menu.Preview) > 0 {
		blocks = append(blocks, strings.Join(m.theme.lines(m.menu.Preview), "\n"), "")
	}
	if len(m.menu.Summary) > 0 {
		blocks = append(blocks, strings.Join(m.theme.lines(m.menu.Summary), "\n"), "")
	}

	inner := m.innerWidth()
	kinds := m.entries()
	labels := m.labels()
	margin := strings.Repeat(" ", MenuMargin)

	rows := make([]string, len(labels))
	plain := make([]int, len(labels))
	for i, label := range labels {
		color := OptionColor
		switch {
		case kinds[i] != entryOption:
			color = NavColor
		case m.menu.Options[i].Color != "":
			color = m.menu.Options[i].Color
		}

		marker := strings.Repeat(" ", layout.Width(SelectedMarker))
		req := style.Request{Text: []string{margin, marker, label}, Color: []style.Color{{}, {}, style.Named(color)}}
		if i == m.cursor {
			req.Text[1] = SelectedMarker
			req.Color[1] = style.Named(SelectedColor)
			req.Style = style.PerSegment(nil, []style.Style{style.Bold}, []style.Style{style.Bold})
			if kinds[i] == entryOption && m.menu.Options[i].Color == "" {
				req.Color[2] = style.Named(SelectedColor)
			}
		}
		rows[i] = m.theme.line(req)
		plain[i] = MenuMargin + layout.Width(SelectedMarker) + layout.Width(label)
	}
	blocks = append(blocks, m.theme.frame(m.menu.Title, rows, plain, inner))

	if m.cursor < len(m.menu.Options) {
		if hint := m.menu.Options[m.cursor].Hint; hint != "" {
			blocks = append(blocks, m.theme.line(style.Colored("  "+hint, HintColor)))
		}
	}
	blocks = append(blocks, m.help.View(m.keys))

	return strings.Join(blocks, "\n") + "\n"
}
