package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/dispatcher"
)

// OpenSettings shows the settings form on section ("", "fonts", "ollama").
func (s *Session) OpenSettings(section string) tea.Cmd {
	m := s.Model
	m.CloseOverlays()
	m.SettingsForm.Show(section, m.Settings, m.Themes)
	return nil
}

func (s *Session) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	form := &s.Model.SettingsForm
	switch msg.String() {
	case "esc":
		form.Close()
	case "up", "shift+tab":
		form.MoveField(-1)
	case "down", "tab":
		form.MoveField(1)
	case "left":
		form.Adjust(-1)
	case "right":
		form.Adjust(1)
	case "backspace":
		form.Backspace()
	case "enter":
		return s.SaveSettings()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			form.Type(string(msg.Runes))
		}
	}
	return nil
}

// SaveSettings sends the form to the host. The form closes once the host
// accepts it.
func (s *Session) SaveSettings() tea.Cmd {
	m := s.Model
	patch := m.SettingsForm.Patch(m.Mode)
	s.begin("Сохранение настроек...")
	return s.host.SaveSettings(patch, dispatcher.SaveForm)
}

func (s *Session) handleSettingsSaved(msg dispatcher.SettingsSavedMsg) tea.Cmd {
	m := s.Model
	if msg.Reason == dispatcher.SaveMode {
		if msg.Err != nil {
			s.logger.Warn("failed to persist mode", zap.Error(msg.Err))
			return nil
		}
		m.Settings = msg.Settings
		return nil
	}

	s.finish()
	if msg.Err != nil {
		s.logger.Error("failed to save settings", zap.Error(msg.Err))
		m.Status = "Не удалось сохранить настройки: " + msg.Err.Error()
		return nil
	}
	m.Settings = msg.Settings
	m.SettingsForm.Close()
	m.Status = "Настройки сохранены"
	return nil
}
