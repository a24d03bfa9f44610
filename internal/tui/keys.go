package tui

import "github.com/charmbracelet/bubbles/key"

// menuKeyMap holds the fixed navigation bindings. Ctrl+C behaves like Esc.
type menuKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
	Cancel key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Select, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "left"),
			key.WithHelp("↑/←", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "right"),
			key.WithHelp("↓/→", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

type inputKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newInputKeyMap() inputKeyMap {
	return inputKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
