package models

import "strings"

type Mode int

const (
	Terminal Mode = iota
	Ide
	Chat
	Agent
)

// Panel identifies which view owns a mode. Chat and Agent share one.
type Panel int

const (
	TerminalPanel Panel = iota
	IdePanel
	ChatPanel
)

var modeNames = map[Mode]string{
	Terminal: "terminal",
	Ide:      "ide",
	Chat:     "chat",
	Agent:    "agent",
}

var modeLabels = map[Mode]string{
	Terminal: "Терминал",
	Ide:      "IDE",
	Chat:     "Чат",
	Agent:    "Agent",
}

// ParseMode maps a persisted mode name to a Mode; unknown names fall back to Terminal.
func ParseMode(value string) Mode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ide":
		return Ide
	case "chat":
		return Chat
	case "agent":
		return Agent
	default:
		return Terminal
	}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return modeNames[Terminal]
}

func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return modeLabels[Terminal]
}

func (m Mode) Panel() Panel {
	switch m {
	case Ide:
		return IdePanel
	case Chat, Agent:
		return ChatPanel
	default:
		return TerminalPanel
	}
}

// Placeholder is the hint shown in the empty command input.
func (m Mode) Placeholder() string {
	shortcuts := "/ - меню, Ctrl+T - терминал"
	if m == Ide {
		shortcuts = "/ - меню, Ctrl+Q - выход, Ctrl+N/P/O - дерево"
	}
	return m.Label() + " режим (" + shortcuts + ")"
}

// AllModes lists modes in tab order.
func AllModes() []Mode {
	return []Mode{Terminal, Ide, Chat, Agent}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	*m = ParseMode(string(text))
	return nil
}
