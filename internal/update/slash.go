package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriShell/internal/models"
)

// slashAction binds a slash menu item id to what it does.
func (s *Session) slashAction(id string) models.SlashAction {
	switch id {
	case models.SlashSettingsTheme:
		return func() tea.Cmd { return s.OpenSettings("") }
	case models.SlashSettingsFont:
		return func() tea.Cmd { return s.OpenSettings("fonts") }
	case models.SlashSettingsOllama:
		return func() tea.Cmd { return s.OpenSettings("ollama") }
	case models.SlashModeTerminal:
		return s.modeAction(models.Terminal)
	case models.SlashModeIde:
		return s.modeAction(models.Ide)
	case models.SlashModeChat:
		return s.modeAction(models.Chat)
	case models.SlashModeAgent:
		return s.modeAction(models.Agent)
	}
	return nil
}

func (s *Session) modeAction(mode models.Mode) models.SlashAction {
	return func() tea.Cmd { return s.SetMode(mode, false) }
}

// CommitSlash runs the highlighted item, closes the menu and clears the
// input. Without a match it does nothing.
func (s *Session) CommitSlash() tea.Cmd {
	m := s.Model
	item, ok := m.Slash.Selected()
	if !ok {
		return nil
	}
	m.CloseSlash()
	m.SetInput("")
	if item.Action == nil {
		return nil
	}
	return item.Action()
}
