package models

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type Overlay int

const (
	NoOverlay Overlay = iota
	SlashOverlay
	AutocompleteOverlay
)

// Editor is the read-only file pane of the IDE panel.
type Editor struct {
	Path     string
	Name     string
	Content  string
	Error    string
	Revision int
}

// AppModel is the session state: one instance for the lifetime of the UI,
// mutated only through update handlers.
type AppModel struct {
	Mode         Mode
	CurrentDir   string // last directory reported by the host
	Input        textinput.Model
	History      *History
	Overlay      Overlay
	Slash        *SlashMenu
	Autocomplete Autocomplete
	Settings     Settings
	SettingsForm SettingsForm
	Themes       []string // theme ids offered by the settings form
	Tree         *FileTree
	Editor       Editor
	Terminal     TerminalLog
	Chat         ChatLog
	Requests     Requests
	Status       string
	Pending      int // host calls in flight
	Width        int
	Height       int
}

func DefaultSettings() Settings {
	return Settings{
		ThemeID:    "graphite",
		FontFamily: "IBM Plex Mono",
		FontSize:   15,
		Mode:       Terminal,
		Ollama: OllamaSettings{
			Model:       "llama3",
			Temperature: 0.4,
			BaseURL:     "http://localhost:11434",
		},
	}
}

func NewAppModel() *AppModel {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = Terminal.Placeholder()
	input.Focus()

	return &AppModel{
		Mode:     Terminal,
		Input:    input,
		History:  NewHistory(),
		Slash:    NewSlashMenu(nil),
		Settings: DefaultSettings(),
		Tree:     NewFileTree(),
		Status:   "Готово",
	}
}

func (m *AppModel) InputValue() string {
	return m.Input.Value()
}

// SetInput replaces the input text and moves the cursor to its end.
func (m *AppModel) SetInput(value string) {
	m.Input.SetValue(value)
	m.Input.CursorEnd()
}

// OpenSlash shows the slash menu filtered by query. History browsing and
// the autocomplete menu end.
func (m *AppModel) OpenSlash(query string) {
	m.CloseAutocomplete()
	m.History.Reset()
	m.Slash.Filter(query)
	m.Overlay = SlashOverlay
}

func (m *AppModel) CloseSlash() {
	if m.Overlay == SlashOverlay {
		m.Overlay = NoOverlay
	}
}

// OpenAutocomplete shows the autocomplete menu with items selected at 0.
func (m *AppModel) OpenAutocomplete(kind CompletionKind, command, basePath string, items []string) {
	m.CloseSlash()
	m.History.Reset()
	m.Autocomplete.Open(kind, command, basePath, items)
	m.Overlay = AutocompleteOverlay
}

// CloseAutocomplete hides the menu and drops answers still in flight.
func (m *AppModel) CloseAutocomplete() {
	m.Autocomplete.Clear()
	m.Requests.Cancel(AutocompleteTarget)
	if m.Overlay == AutocompleteOverlay {
		m.Overlay = NoOverlay
	}
}

func (m *AppModel) CloseOverlays() {
	m.CloseSlash()
	m.CloseAutocomplete()
}

func (m *AppModel) Busy() bool {
	return m.Pending > 0
}
