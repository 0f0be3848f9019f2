package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/robbyt/go-safecalc/keypad"
)

type keyMap struct {
	Input    key.Binding
	Evaluate key.Binding
	Clear    key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Input: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".", "+", "-", "*", "/"),
			key.WithHelp("0-9 . + - * /", "input"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("=", keypad.KeyEnter),
			key.WithHelp("=/enter", "evaluate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Delete: key.NewBinding(
			key.WithKeys(keypad.KeyBackspace),
			key.WithHelp("⌫", "delete digit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Input, k.Evaluate, k.Clear, k.Delete, k.Quit}
}
