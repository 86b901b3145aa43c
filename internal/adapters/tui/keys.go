package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Short    key.Binding
	Long     key.Binding
	Skip     key.Binding
	Postpone key.Binding
	Pause    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Short:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "short break")),
		Long:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "long break")),
		Skip:     key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "skip")),
		Postpone: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "postpone")),
		Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Postpone, k.Skip, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Short, k.Long},
		{k.Skip, k.Postpone, k.Pause},
		{k.Help, k.Quit},
	}
}
