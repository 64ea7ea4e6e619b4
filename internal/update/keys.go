package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriShell/internal/models"
)

// HandleKey routes a keystroke. The first matching rule wins: global
// shortcuts, the settings form, the open overlay, Tab completion, history,
// submit, and finally editing of the input.
func (s *Session) HandleKey(msg tea.KeyMsg) tea.Cmd {
	m := s.Model
	key := msg.String()

	switch key {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+t":
		return s.SetMode(models.Terminal, false)
	case "ctrl+q":
		if m.Mode == models.Ide {
			return s.SetMode(models.Terminal, false)
		}
		return nil
	}

	if m.Mode == models.Ide {
		switch key {
		case "ctrl+n":
			m.Tree.MoveCursor(1)
			return nil
		case "ctrl+p":
			m.Tree.MoveCursor(-1)
			return nil
		case "ctrl+o":
			return s.ActivateTreeNode()
		}
	}

	if m.SettingsForm.Open {
		return s.handleSettingsKey(msg)
	}

	switch m.Overlay {
	case models.SlashOverlay:
		switch key {
		case "down", "tab":
			m.Slash.Move(1)
			return nil
		case "up":
			m.Slash.Move(-1)
			return nil
		case "enter":
			if m.Slash.Empty() {
				return s.Submit()
			}
			return s.CommitSlash()
		case "esc":
			m.CloseSlash()
			return nil
		}
	case models.AutocompleteOverlay:
		switch key {
		case "down", "tab":
			m.Autocomplete.Move(1)
			return nil
		case "up":
			m.Autocomplete.Move(-1)
			return nil
		case "left":
			m.Autocomplete.Move(-models.AutocompleteSkip)
			return nil
		case "right":
			m.Autocomplete.Move(models.AutocompleteSkip)
			return nil
		case "enter":
			return s.SelectAutocomplete()
		case "esc":
			m.CloseAutocomplete()
			return nil
		}
	}

	switch key {
	case "tab":
		if m.Mode == models.Terminal {
			return s.Complete()
		}
		return nil
	case "up":
		s.navigateHistory(1)
		return nil
	case "down":
		s.navigateHistory(-1)
		return nil
	case "enter":
		return s.Submit()
	}

	return s.edit(msg)
}

func (s *Session) navigateHistory(direction int) {
	if entry, ok := s.Model.History.Navigate(direction); ok {
		s.Model.SetInput(entry)
	}
}

// edit forwards the key to the input. A changed value re-evaluates the
// slash menu and closes the autocomplete menu.
func (s *Session) edit(msg tea.KeyMsg) tea.Cmd {
	m := s.Model
	before := m.InputValue()

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	value := m.InputValue()
	if value == before {
		return cmd
	}
	m.CloseAutocomplete()
	if strings.HasPrefix(value, "/") {
		m.OpenSlash(strings.TrimPrefix(value, "/"))
	} else {
		m.CloseSlash()
	}
	return cmd
}
