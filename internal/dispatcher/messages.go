package dispatcher

import (
	"github.com/Rorical/RoriShell/internal/eventbus"
	"github.com/Rorical/RoriShell/internal/models"
)

// SaveReason says why settings were written.
type SaveReason int

const (
	SaveMode SaveReason = iota // background mode persistence, failures are only logged
	SaveForm                   // explicit save from the settings overlay
)

type SettingsLoadedMsg struct {
	Settings models.Settings
	Err      error
}

type SettingsSavedMsg struct {
	Settings models.Settings
	Reason   SaveReason
	Err      error
}

// TerminalResultMsg resolves the placeholder entry EntryID.
type TerminalResultMsg struct {
	EntryID string
	Result  models.CommandResult
	Err     error
}

type ModelReplyMsg struct {
	Message string
	Err     error
}

type FileLoadedMsg struct {
	Gen     uint64
	Path    string
	Content string
	Err     error
}

type DirectoriesMsg struct {
	Gen     uint64
	Command string
	Prefix  string
	Items   []string
	Err     error
}

type DirectoryTreeMsg struct {
	Gen   uint64
	Path  string
	Nodes []models.FileNode
	Err   error
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// CoreEventsClosedMsg ends the core event subscription.
type CoreEventsClosedMsg struct{}
