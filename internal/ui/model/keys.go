package model

import "github.com/charmbracelet/bubbles/key"

// KeyMap 按键绑定
type KeyMap struct {
	Deal   key.Binding
	Fish   key.Binding
	Books  key.Binding
	Reveal key.Binding
	Hide   key.Binding
	Reset  key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap 默认按键
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Deal:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deal")),
		Fish:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "go fish")),
		Books:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "claim books")),
		Reveal: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reveal")),
		Hide:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide")),
		Reset:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new round")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Fish, k.Books, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.Fish, k.Books},
		{k.Reveal, k.Hide, k.Reset},
		{k.Save, k.Help, k.Quit},
	}
}
