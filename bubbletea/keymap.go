package bubbletea

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings for the clipboard picker.
//
// Bindings that are plain characters (j, k, /) only apply while the search
// box is unfocused; while it is focused those keys are typed into the query.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Paste       key.Binding
	Delete      key.Binding
	QuickPaste  key.Binding
	FocusSearch key.Binding
	Escape      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab", "ctrl+p", "k"),
			key.WithHelp("↑/ctrl+p", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab", "ctrl+n", "j"),
			key.WithHelp("↓/ctrl+n", "down"),
		),
		Paste: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "paste"),
		),
		Delete: key.NewBinding(
			key.WithKeys("alt+backspace", "alt+delete", "ctrl+x"),
			key.WithHelp("ctrl+x", "delete"),
		),
		QuickPaste: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1-9", "quick paste"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("ctrl+f", "/"),
			key.WithHelp("ctrl+f", "search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// quickPasteIndex returns the filtered index addressed by an alt+digit key.
func quickPasteIndex(msg tea.KeyMsg) (int, bool) {
	if !msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

// isTextInput reports whether msg would insert text into a focused input.
func isTextInput(msg tea.KeyMsg) bool {
	return !msg.Alt && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace)
}
