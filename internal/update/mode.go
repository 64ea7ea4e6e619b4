package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/models"
)

// SetMode switches the visible panel and the input placeholder. The first
// switch to IDE before the root is listed lists the current directory. Unless
// silent, the mode is persisted in the background.
func (s *Session) SetMode(mode models.Mode, silent bool) tea.Cmd {
	m := s.Model
	m.Mode = mode
	m.Input.Placeholder = mode.Placeholder()

	var cmds []tea.Cmd
	if mode == models.Ide && !m.Tree.Loaded && !m.Tree.Loading {
		cmds = append(cmds, s.loadTreeRoot(""))
	}
	if !silent {
		cmds = append(cmds, s.host.SaveSettings(models.SettingsPatch{Mode: &mode}, dispatcher.SaveMode))
	}
	return tea.Batch(cmds...)
}
