package tools

import "github.com/Rorical/RoriShell/internal/models"

// Workspace owns the host's current directory.
type Workspace interface {
	CurrentDir() string
	ChangeDir(dir string)
}

// SettingsStore persists user settings.
type SettingsStore interface {
	Get() models.Settings
	Update(patch models.SettingsPatch) (models.Settings, error)
}
