package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add, Edit, Toggle, Destroy, ToggleAll, ClearCompleted key.Binding
	All, Active, Completed, NextFilter, Quit              key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:         key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Destroy:        key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ToggleAll:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "toggle all")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		All:            key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:         key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Completed:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		NextFilter:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		Quit:           key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Destroy, k.NextFilter}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Destroy, k.ToggleAll, k.ClearCompleted, k.All, k.Active, k.Completed, k.NextFilter}
}
