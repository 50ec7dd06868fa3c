package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	First   key.Binding
	Last    key.Binding
	Submit  key.Binding
	Confirm key.Binding
	Toggle  key.Binding
	Back    key.Binding
	Yes     key.Binding
	No      key.Binding
}

var keys = keyMap{
	Prev:    key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑", "previous")),
	Next:    key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓", "next")),
	First:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Last:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Submit:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "next")),
	Toggle:  key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab", "shift+tab")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "leave")),
	Yes:     key.NewBinding(key.WithKeys("y", "Y")),
	No:      key.NewBinding(key.WithKeys("n", "N")),
}
