package config

import "github.com/charmbracelet/bubbles/key"

type KeyMappings struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	CloseTicket key.Binding
	Tooltip     key.Binding
	Find        key.Binding
	Cancel      key.Binding
	Apply       key.Binding
	Quit        key.Binding
}

func (c Config) KeyMap() KeyMappings {
	k := c.Keys
	return KeyMappings{
		Up:          binding(k.Up, "up"),
		Down:        binding(k.Down, "down"),
		Open:        binding(k.Open, "open"),
		CloseTicket: binding(k.CloseTicket, "close ticket"),
		Tooltip:     binding(k.Tooltip, "details"),
		Find:        binding(k.Find, "find"),
		Cancel:      binding(k.Cancel, "cancel"),
		Apply:       binding(k.Apply, "apply"),
		Quit:        binding(k.Quit, "quit"),
	}
}

func binding(keys []string, help string) key.Binding {
	label := ""
	if len(keys) > 0 {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, help))
}
