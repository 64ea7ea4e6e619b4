package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/models"
)

// Complete handles Tab in terminal mode. Path-taking commands ask the host
// for matching directories; anything else is matched against the command
// vocabulary.
func (s *Session) Complete() tea.Cmd {
	m := s.Model
	input := m.InputValue()

	if command, partial, ok := models.ParsePathCommand(input); ok {
		return s.queryDirectories(command, partial)
	}

	matches := models.MatchCommands(models.TerminalCommands, input)
	switch len(matches) {
	case 0:
		return nil
	case 1:
		m.SetInput(matches[0] + " ")
		return nil
	default:
		m.OpenAutocomplete(models.CommandCompletion, "", input, matches)
		return nil
	}
}

func (s *Session) queryDirectories(command, prefix string) tea.Cmd {
	gen := s.Model.Requests.Next(models.AutocompleteTarget)
	return s.host.GetDirectories(gen, command, prefix)
}

// SelectAutocomplete commits the highlighted item. A command is written
// out and the menu closes; a directory is appended to the path and its
// subdirectories are listed right away.
func (s *Session) SelectAutocomplete() tea.Cmd {
	m := s.Model
	item, ok := m.Autocomplete.Selected()
	if !ok {
		return nil
	}

	if m.Autocomplete.Kind == models.CommandCompletion {
		m.SetInput(item + " ")
		m.CloseAutocomplete()
		return nil
	}

	command := m.Autocomplete.Command
	if command == "" {
		command = "cd"
	}
	resolved := models.ResolveCompletion(m.Autocomplete.BasePath, item) + "/"
	m.SetInput(command + " " + resolved)
	return s.queryDirectories(command, resolved)
}

func (s *Session) handleDirectories(msg dispatcher.DirectoriesMsg) tea.Cmd {
	m := s.Model
	if !m.Requests.Current(models.AutocompleteTarget, msg.Gen) {
		return nil
	}
	if msg.Err != nil {
		s.logger.Warn("directory completion failed", zap.String("prefix", msg.Prefix), zap.Error(msg.Err))
		m.CloseAutocomplete()
		return nil
	}
	if len(msg.Items) == 0 {
		m.CloseAutocomplete()
		return nil
	}
	m.OpenAutocomplete(models.PathCompletion, msg.Command, msg.Prefix, msg.Items)
	return nil
}
