package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/eventbus"
	"github.com/Rorical/RoriShell/internal/models"
)

// Submit handles Enter outside of overlays. Terminal mode, or a leading
// "!", runs the input as a shell command; anything else goes to the model.
func (s *Session) Submit() tea.Cmd {
	m := s.Model
	value := strings.TrimSpace(m.InputValue())
	m.CloseOverlays()
	if value == "" {
		return nil
	}

	m.History.Append(value)
	m.SetInput("")

	if m.Mode == models.Terminal || strings.HasPrefix(value, "!") {
		return s.RunTerminal(strings.TrimPrefix(value, "!"))
	}
	return s.SendPrompt(value)
}

// RunTerminal appends a pending entry and asks the host to run command.
// "clear" empties the transcript locally.
func (s *Session) RunTerminal(command string) tea.Cmd {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	if command == "clear" {
		s.Model.Terminal.Clear()
		return nil
	}

	id := s.Model.Terminal.Begin(command)
	s.begin(models.PendingStatus)
	return s.host.RunTerminalCommand(id, command)
}

func (s *Session) handleTerminalResult(msg dispatcher.TerminalResultMsg) tea.Cmd {
	m := s.Model
	s.finish()

	if msg.Err != nil {
		m.Terminal.Fail(msg.EntryID, msg.Err)
		return nil
	}
	m.Terminal.Resolve(msg.EntryID, msg.Result)

	if msg.Result.CurrentDir != "" {
		m.CurrentDir = msg.Result.CurrentDir
	}
	if msg.Result.FileTree == nil {
		return nil
	}

	m.Requests.Cancel(models.TreeRootTarget)
	m.Tree.SetRoots(m.CurrentDir, msg.Result.FileTree)
	if m.Mode != models.Ide {
		return s.SetMode(models.Ide, false)
	}
	return nil
}

// SendPrompt appends the user's bubble and queries the model with the
// current mode and model settings.
func (s *Session) SendPrompt(prompt string) tea.Cmd {
	m := s.Model
	m.Chat.Append(models.User, prompt)
	s.begin("Модель думает...")
	return s.host.QueryModel(models.ChatRequest{
		Prompt:      prompt,
		Mode:        m.Mode,
		Model:       m.Settings.Ollama.Model,
		Temperature: m.Settings.Ollama.Temperature,
	})
}

func (s *Session) handleModelReply(msg dispatcher.ModelReplyMsg) tea.Cmd {
	s.finish()
	if msg.Err != nil {
		s.Model.Chat.Append(models.Assistant, "Ошибка: "+msg.Err.Error())
		return nil
	}
	s.Model.Chat.Append(models.Assistant, msg.Message)
	return nil
}

func (s *Session) handleSettingsLoaded(msg dispatcher.SettingsLoadedMsg) tea.Cmd {
	m := s.Model
	m.Status = "Готово"
	if msg.Err != nil {
		s.logger.Warn("failed to load settings, using defaults", zap.Error(msg.Err))
	} else {
		m.Settings = msg.Settings
	}
	return s.SetMode(m.Settings.Mode, true)
}

func (s *Session) handleCoreEvent(msg dispatcher.CoreEventMsg) tea.Cmd {
	switch event := msg.Event.(type) {
	case eventbus.DirectoryChangedEvent:
		s.Model.CurrentDir = event.Path
	case eventbus.TreeInvalidatedEvent:
		return s.InvalidateDirectory(event.Path)
	}
	return nil
}
