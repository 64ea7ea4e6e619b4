package models

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SlashAction is the zero-argument action bound to a slash menu item.
type SlashAction func() tea.Cmd

type SlashItem struct {
	ID     string
	Label  string
	Hint   string
	Action SlashAction
}

type SlashGroup struct {
	ID    string
	Title string
	Items []SlashItem
}

// SlashMenu filters a fixed set of groups by a free-text query.
type SlashMenu struct {
	groups    []SlashGroup
	query     string
	visible   []SlashGroup // groups with at least one matching item
	flat      []SlashItem  // visible items in display order
	selection Selection
}

func NewSlashMenu(groups []SlashGroup) *SlashMenu {
	menu := &SlashMenu{groups: groups}
	menu.Filter("")
	return menu
}

// Filter recomputes the visible groups for query and resets the selection
// to the first visible item.
func (s *SlashMenu) Filter(query string) {
	s.query = query
	normalized := strings.ToLower(strings.TrimSpace(query))

	s.visible = nil
	s.flat = nil
	for _, group := range s.groups {
		var items []SlashItem
		for _, item := range group.Items {
			if slashItemMatches(item, normalized) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		s.visible = append(s.visible, SlashGroup{ID: group.ID, Title: group.Title, Items: items})
		s.flat = append(s.flat, items...)
	}
	s.selection.Reset(len(s.flat))
}

func slashItemMatches(item SlashItem, normalized string) bool {
	if normalized == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Label), normalized) ||
		strings.Contains(strings.ToLower(item.Hint), normalized)
}

func (s *SlashMenu) Move(delta int) {
	s.selection.Move(delta)
}

// Selected returns the highlighted item; ok is false when nothing matches.
func (s *SlashMenu) Selected() (SlashItem, bool) {
	i := s.selection.Index()
	if i < 0 {
		return SlashItem{}, false
	}
	return s.flat[i], true
}

// Select highlights the visible item with the given id.
func (s *SlashMenu) Select(id string) bool {
	for i, item := range s.flat {
		if item.ID == id {
			return s.selection.Set(i)
		}
	}
	return false
}

func (s *SlashMenu) Query() string {
	return s.query
}

func (s *SlashMenu) Groups() []SlashGroup {
	return s.visible
}

func (s *SlashMenu) Items() []SlashItem {
	return s.flat
}

func (s *SlashMenu) SelectionIndex() int {
	return s.selection.Index()
}

func (s *SlashMenu) Empty() bool {
	return len(s.flat) == 0
}

// Slash menu item ids.
const (
	SlashSettingsTheme  = "settings-theme"
	SlashSettingsFont   = "settings-font"
	SlashSettingsOllama = "settings-ollama"
	SlashModeTerminal   = "mode-terminal"
	SlashModeIde        = "mode-ide"
	SlashModeChat       = "mode-chat"
	SlashModeAgent      = "mode-agent"
)

// DefaultSlashGroups builds the standard menu, binding each item's action
// through bind.
func DefaultSlashGroups(bind func(id string) SlashAction) []SlashGroup {
	item := func(id, label, hint string) SlashItem {
		return SlashItem{ID: id, Label: label, Hint: hint, Action: bind(id)}
	}
	return []SlashGroup{
		{
			ID:    "settings",
			Title: "Настройки",
			Items: []SlashItem{
				item(SlashSettingsTheme, "Темы", "Выбор цветовой схемы"),
				item(SlashSettingsFont, "Шрифты", "Настройка гарнитуры и размера"),
				item(SlashSettingsOllama, "Ollama", "Параметры локальной LLM"),
			},
		},
		{
			ID:    "modes",
			Title: "Режимы",
			Items: []SlashItem{
				item(SlashModeTerminal, "Терминал", "Выполнение команд"),
				item(SlashModeIde, "IDE", "Работа с файлами"),
				item(SlashModeChat, "Чат", "Диалог с моделью"),
				item(SlashModeAgent, "Agent", "Полуавтоматический режим"),
			},
		},
	}
}
