package arena

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Pick     []key.Binding
	Check    key.Binding
	Continue key.Binding
	Retry    key.Binding
	Home     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Move")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑↓", "Move")),
		Pick: []key.Binding{
			key.NewBinding(key.WithKeys("1", "a", "A"), key.WithHelp("1-4", "Choose")),
			key.NewBinding(key.WithKeys("2", "b", "B"), key.WithHelp("1-4", "Choose")),
			key.NewBinding(key.WithKeys("3", "c", "C"), key.WithHelp("1-4", "Choose")),
			key.NewBinding(key.WithKeys("4", "d", "D"), key.WithHelp("1-4", "Choose")),
		},
		Check:    key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Check answer")),
		Continue: key.NewBinding(key.WithKeys("enter", "space", "n"), key.WithHelp("Enter", "Continue")),
		Retry:    key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("R", "Try again")),
		Home:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back to home")),
	}
}
