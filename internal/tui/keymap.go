package tui

import (
	tea "charm.land/bubbletea/v2"
)

const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
	keyTab   = "tab"

	keyGenerate = "ctrl+g"
	keyCopy     = "ctrl+y"
	keyClear    = "ctrl+r"
)

// IsQuit returns true if the key message is a quit key (q or ctrl+c).
func IsQuit(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "q", keyCtrlC:
		return true
	}
	return false
}

// IsBack returns true if the key message is a back key (esc).
func IsBack(msg tea.KeyPressMsg) bool {
	return msg.String() == keyEsc
}

// chipIndex maps the number keys to a chip position: 0 is always "All",
// 1 through 9 pick the divisions in catalog order.
func chipIndex(msg tea.KeyPressMsg, chips int) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	i := int(s[0] - '0')
	if i >= chips {
		return 0, false
	}
	return i, true
}
