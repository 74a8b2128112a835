package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevCat    key.Binding
	NextCat    key.Binding
	Add        key.Binding
	Remove     key.Binding
	ToggleCart key.Binding
	Focus      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "opp"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "ned"),
		),
		PrevCat: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "forrige kategori"),
		),
		NextCat: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "neste kategori"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter/a", "legg til handlevogn"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "fjern én"),
		),
		ToggleCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "handlevogn"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "bytt fokus"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "hjelp"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "avslutt"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.ToggleCart, k.Remove, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevCat, k.NextCat},
		{k.Add, k.Remove, k.ToggleCart, k.Focus},
		{k.Help, k.Quit},
	}
}
