package app

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/config"
	"github.com/Rorical/RoriShell/internal/core"
	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/eventbus"
	"github.com/Rorical/RoriShell/internal/logging"
	"github.com/Rorical/RoriShell/internal/update"
)

// Options are the command line knobs of a session.
type Options struct {
	Dir      string // starting directory; the process cwd when empty
	Debug    bool
	LogFile  string // defaults to config.LogPath()
	Timeouts dispatcher.Timeouts
}

// Application manages the complete application lifecycle
type Application struct {
	store      *config.Store
	logger     *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.HostService
	model      *AppModel
}

func NewApplication(opts Options) (*Application, error) {
	logPath := opts.LogFile
	if logPath == "" {
		path, err := config.LogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get log path: %w", err)
		}
		logPath = path
	}
	logger, err := logging.New(logPath, opts.Debug)
	if err != nil {
		return nil, err
	}

	store, err := openSettings(logger)
	if err != nil {
		return nil, err
	}
	themes, err := loadThemes()
	if err != nil {
		logger.Warn("failed to load themes, using built-in ones", zap.Error(err))
		themes = config.BuiltinThemes()
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("не удалось определить текущий каталог: %w", err)
		}
	}
	state, err := core.NewHostState(dir, store)
	if err != nil {
		return nil, err
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn("event bus error", zap.String("operation", e.Operation), zap.Error(e.Err))
	})
	service := core.NewHostService(state, eb, logger.Named("host"))
	disp := dispatcher.NewEventDispatcher(eb, eb.CoreToUI(), opts.Timeouts)
	session := update.NewSession(disp, logger.Named("ui"), config.ThemeIDs(themes))

	logger.Info("session created",
		zap.String("dir", state.CurrentDir()),
		zap.String("settings", store.Path()),
		zap.Duration("timeout", disp.Timeouts().Default),
		zap.Duration("model_timeout", disp.Timeouts().Model),
	)

	return &Application{
		store:      store,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      NewAppModel(session, themes),
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		app.logger.Error("ui stopped with error", zap.Error(err))
	}
	return err
}

// Stop cancels pending host calls before the host and the bus go away.
func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
	app.logger.Info("session closed")
	_ = app.logger.Sync()
}

func loadThemes() ([]config.Theme, error) {
	path, err := config.ThemesPath()
	if err != nil {
		return nil, err
	}
	return config.LoadThemes(path)
}

// openSettings falls back to the defaults when the settings file cannot be
// read. Only a missing settings location is fatal.
func openSettings(logger *zap.Logger) (*config.Store, error) {
	path, err := config.SettingsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings path: %w", err)
	}
	store, err := config.OpenStore(path)
	if err != nil {
		logger.Warn("failed to load settings, using defaults", zap.String("path", path), zap.Error(err))
		return config.NewStore(path), nil
	}
	return store, nil
}
