package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/models"
)

// Session owns the application state and the host calls that mutate it.
// All of its methods run on the bubbletea update loop.
type Session struct {
	Model  *models.AppModel
	host   *dispatcher.EventDispatcher
	logger *zap.Logger
}

// NewSession builds the initial state. themes are the ids offered by the
// settings form.
func NewSession(host *dispatcher.EventDispatcher, logger *zap.Logger, themes []string) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		Model:  models.NewAppModel(),
		host:   host,
		logger: logger,
	}
	s.Model.Themes = themes
	s.Model.Slash = models.NewSlashMenu(models.DefaultSlashGroups(s.slashAction))
	return s
}

// Init loads the persisted settings and subscribes to host events.
func (s *Session) Init() tea.Cmd {
	s.Model.Status = "Загрузка настроек..."
	return tea.Batch(s.host.LoadSettings(), s.host.ListenForCoreEvents())
}

func (s *Session) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.HandleKey(msg)
	case tea.WindowSizeMsg:
		s.Model.Width = msg.Width
		s.Model.Height = msg.Height
		return nil
	case dispatcher.SettingsLoadedMsg:
		return s.handleSettingsLoaded(msg)
	case dispatcher.SettingsSavedMsg:
		return s.handleSettingsSaved(msg)
	case dispatcher.TerminalResultMsg:
		return s.handleTerminalResult(msg)
	case dispatcher.ModelReplyMsg:
		return s.handleModelReply(msg)
	case dispatcher.FileLoadedMsg:
		return s.handleFileLoaded(msg)
	case dispatcher.DirectoriesMsg:
		return s.handleDirectories(msg)
	case dispatcher.DirectoryTreeMsg:
		return s.handleDirectoryTree(msg)
	case dispatcher.CoreEventMsg:
		return tea.Batch(s.handleCoreEvent(msg), s.host.ListenForCoreEvents())
	case dispatcher.CoreEventsClosedMsg:
		s.logger.Debug("core event stream closed")
		return nil
	}
	return nil
}

func (s *Session) begin(status string) {
	s.Model.Pending++
	s.Model.Status = status
}

func (s *Session) finish() {
	if s.Model.Pending > 0 {
		s.Model.Pending--
	}
	if s.Model.Pending == 0 {
		s.Model.Status = "Готово"
	}
}
