// Package keypad models the calculator front panel: a buffer of keystrokes,
// the result display, and the mapping from keys to actions. It has no
// terminal or window code of its own.
package keypad

import "strings"

// Action is what pressing a key does.
type Action int

const (
	Ignored Action = iota
	Append
	Evaluate
	Clear
	DeleteLast
)

func (a Action) String() string {
	switch a {
	case Append:
		return "append"
	case Evaluate:
		return "evaluate"
	case Clear:
		return "clear"
	case DeleteLast:
		return "delete"
	default:
		return "ignored"
	}
}

// Source says where a key press came from.
type Source string

const (
	Keyboard Source = "keyboard"
	Button   Source = "button"
)

// Names of the non-printing keys, as reported by the terminal layer.
const (
	KeyBackspace = "backspace"
	KeyEnter     = "enter"
)

// InputKeys are the characters that are appended to the buffer.
const InputKeys = "0123456789.+-*/"

// Key is a classified key press.
type Key struct {
	Text   string
	Action Action
}

// Classify maps a key name to its action. Digits, the decimal point and
// the four operators are appended; "=" and enter evaluate; "c" clears;
// backspace deletes. Everything else is ignored.
func Classify(text string) Key {
	k := Key{Text: text}
	switch {
	case text == "=" || text == KeyEnter:
		k.Action = Evaluate
	case text == "c":
		k.Action = Clear
	case text == KeyBackspace:
		k.Action = DeleteLast
	case len(text) == 1 && strings.Contains(InputKeys, text):
		k.Action = Append
	default:
		k.Action = Ignored
	}
	return k
}

// IsDigit reports whether s is a single decimal digit.
func IsDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// Layout is the on-screen button grid, top row first.
var Layout = [][]string{
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", ".", "=", "+"},
	{"c", KeyBackspace},
}
