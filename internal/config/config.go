package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Rorical/RoriShell/internal/models"
)

const (
	HomeEnv      = "RORISHELL_HOME"
	dirName      = ".rorishell"
	settingsFile = "settings.json"
	themesFile   = "themes.yaml"
	logFile      = "rorishell.log"
)

// Dir returns the application data directory. RORISHELL_HOME replaces the
// user's home directory as its parent.
func Dir() (string, error) {
	base := os.Getenv(HomeEnv)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = home
	}
	return filepath.Join(base, dirName), nil
}

func SettingsPath() (string, error) {
	return inDir(settingsFile)
}

func ThemesPath() (string, error) {
	return inDir(themesFile)
}

func LogPath() (string, error) {
	return inDir(logFile)
}

func inDir(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Store holds the persisted settings. Every update is written to disk.
type Store struct {
	mu       sync.Mutex
	path     string
	settings models.Settings
}

// OpenStore reads the settings at path. A missing file yields the defaults
// and is created on the first update.
func OpenStore(path string) (*Store, error) {
	settings, err := loadSettingsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &Store{path: path, settings: settings}, nil
}

// NewStore returns a store at path holding the defaults, whatever the file
// contains. The file is overwritten by the first update.
func NewStore(path string) *Store {
	return &Store{path: path, settings: models.DefaultSettings()}
}

func loadSettingsFile(path string) (models.Settings, error) {
	settings := models.DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), err
	}
	return Sanitize(settings), nil
}

func saveSettingsFile(path string, settings models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update applies patch, saves the result and returns it. On a write error
// the in-memory settings are left unchanged.
func (s *Store) Update(patch models.SettingsPatch) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Apply(s.settings, patch)
	if err := saveSettingsFile(s.path, next); err != nil {
		return s.settings, fmt.Errorf("не удалось сохранить настройки: %w", err)
	}
	s.settings = next
	return next, nil
}

// Reset restores and saves the defaults.
func (s *Store) Reset() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaults := models.DefaultSettings()
	if err := saveSettingsFile(s.path, defaults); err != nil {
		return s.settings, fmt.Errorf("не удалось сохранить настройки: %w", err)
	}
	s.settings = defaults
	return defaults, nil
}

// Apply merges patch into settings. Blank strings are ignored, the font
// size and temperature are clamped.
func Apply(settings models.Settings, patch models.SettingsPatch) models.Settings {
	if patch.ThemeID != nil && strings.TrimSpace(*patch.ThemeID) != "" {
		settings.ThemeID = *patch.ThemeID
	}
	if patch.FontFamily != nil && strings.TrimSpace(*patch.FontFamily) != "" {
		settings.FontFamily = *patch.FontFamily
	}
	if patch.FontSize != nil {
		settings.FontSize = *patch.FontSize
	}
	if patch.Mode != nil {
		settings.Mode = *patch.Mode
	}
	if o := patch.Ollama; o != nil {
		if o.Model != nil && strings.TrimSpace(*o.Model) != "" {
			settings.Ollama.Model = *o.Model
		}
		if o.Temperature != nil {
			settings.Ollama.Temperature = *o.Temperature
		}
		if o.BaseURL != nil && strings.TrimSpace(*o.BaseURL) != "" {
			settings.Ollama.BaseURL = *o.BaseURL
		}
	}
	return Sanitize(settings)
}

// Sanitize clamps numeric fields and fills blank ones with defaults.
func Sanitize(settings models.Settings) models.Settings {
	defaults := models.DefaultSettings()
	if settings.FontSize < models.MinFontSize {
		settings.FontSize = models.MinFontSize
	}
	if settings.FontSize > models.MaxFontSize {
		settings.FontSize = models.MaxFontSize
	}
	t := float64(settings.Ollama.Temperature)
	if math.IsNaN(t) {
		t = float64(defaults.Ollama.Temperature)
	}
	settings.Ollama.Temperature = float32(math.Min(math.Max(t, models.MinTemperature), models.MaxTemperature))
	if strings.TrimSpace(settings.ThemeID) == "" {
		settings.ThemeID = defaults.ThemeID
	}
	if strings.TrimSpace(settings.FontFamily) == "" {
		settings.FontFamily = defaults.FontFamily
	}
	if strings.TrimSpace(settings.Ollama.Model) == "" {
		settings.Ollama.Model = defaults.Ollama.Model
	}
	if strings.TrimSpace(settings.Ollama.BaseURL) == "" {
		settings.Ollama.BaseURL = defaults.Ollama.BaseURL
	}
	return settings
}
