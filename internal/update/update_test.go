package update

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/eventbus"
	"github.com/Rorical/RoriShell/internal/models"
)

func intPtr(v int) *int { return &v }

func TestSubmitTerminalCommand(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdRunTerminalCommand, models.CommandResult{
		Stdout:   "a.txt\nb.txt",
		ExitCode: intPtr(0),
	})

	typeText(s, "ls")
	press(s, tea.KeyEnter)

	entries := s.Model.Terminal.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "ls", entries[0].Command)
	assert.Equal(t, "a.txt\nb.txt", entries[0].Stdout)
	require.NotNil(t, entries[0].ExitCode)
	assert.Equal(t, 0, *entries[0].ExitCode)
	assert.False(t, entries[0].Pending())

	assert.Equal(t, "", s.Model.InputValue())
	assert.Equal(t, []string{"ls"}, s.Model.History.Entries())
	assert.Equal(t, 0, s.Model.Pending)

	var req models.CommandRequest
	bridge.payload(t, models.CmdRunTerminalCommand, 0, &req)
	assert.Equal(t, "ls", req.Command)
}

func TestSubmitBlankInputDoesNothing(t *testing.T) {
	s, bridge := newTestSession(t)
	typeText(s, "   ")

	press(s, tea.KeyEnter)

	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Equal(t, "   ", s.Model.InputValue())
	assert.Zero(t, s.Model.History.Len())
	assert.Zero(t, bridge.count(models.CmdRunTerminalCommand))
}

func TestTerminalFailureIsShownInline(t *testing.T) {
	s, bridge := newTestSession(t)

	run(s, s.RunTerminal("make"))

	entries := s.Model.Terminal.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Pending())
	assert.Equal(t, errHostDown.Error(), entries[0].Stderr)
	assert.Nil(t, entries[0].ExitCode)
	assert.Equal(t, 1, bridge.count(models.CmdRunTerminalCommand))
}

func TestClearIsHandledLocally(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdRunTerminalCommand, models.CommandResult{Stdout: "x"})

	typeText(s, "pwd")
	press(s, tea.KeyEnter)
	typeText(s, "clear")
	press(s, tea.KeyEnter)

	assert.Empty(t, s.Model.Terminal.Entries())
	assert.Equal(t, 1, bridge.count(models.CmdRunTerminalCommand))
	assert.Equal(t, []string{"clear", "pwd"}, s.Model.History.Entries())
}

func TestBangRunsShellFromChat(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdRunTerminalCommand, models.CommandResult{Stdout: "ok"})
	run(s, s.SetMode(models.Chat, true))

	typeText(s, "!git status")
	press(s, tea.KeyEnter)

	var req models.CommandRequest
	bridge.payload(t, models.CmdRunTerminalCommand, 0, &req)
	assert.Equal(t, "git status", req.Command)
	assert.Empty(t, s.Model.Chat.Entries())
	assert.Zero(t, bridge.count(models.CmdQueryOllama))
}

func TestPromptInChatMode(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdQueryOllama, models.ChatResponse{Message: "Привет!"})
	run(s, s.SetMode(models.Agent, true))

	typeText(s, "hello")
	press(s, tea.KeyEnter)

	entries := s.Model.Chat.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, models.ChatEntry{Role: models.User, Text: "hello"}, entries[0])
	assert.Equal(t, models.ChatEntry{Role: models.Assistant, Text: "Привет!"}, entries[1])

	var req models.ChatRequest
	bridge.payload(t, models.CmdQueryOllama, 0, &req)
	assert.Equal(t, "hello", req.Prompt)
	assert.Equal(t, models.Agent, req.Mode)
	assert.Equal(t, "llama3", req.Model)
	assert.InDelta(t, 0.4, req.Temperature, 1e-6)
}

func TestPromptFailureBecomesAssistantBubble(t *testing.T) {
	s, _ := newTestSession(t)
	run(s, s.SetMode(models.Chat, true))

	run(s, s.SendPrompt("hi"))

	entries := s.Model.Chat.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, models.Assistant, entries[1].Role)
	assert.Equal(t, "Ошибка: "+errHostDown.Error(), entries[1].Text)
}

func TestHistoryNavigationFillsInput(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdRunTerminalCommand, models.CommandResult{})
	for _, cmd := range []string{"one", "two", "three"} {
		typeText(s, cmd)
		press(s, tea.KeyEnter)
	}

	press(s, tea.KeyUp)
	assert.Equal(t, "three", s.Model.InputValue())
	press(s, tea.KeyUp)
	press(s, tea.KeyUp)
	press(s, tea.KeyUp)
	assert.Equal(t, "one", s.Model.InputValue())
	press(s, tea.KeyDown)
	assert.Equal(t, "two", s.Model.InputValue())
}

func TestOverlayCapturesArrowKeys(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdRunTerminalCommand, models.CommandResult{})
	typeText(s, "ls")
	press(s, tea.KeyEnter)

	typeText(s, "/")
	require.Equal(t, models.SlashOverlay, s.Model.Overlay)
	press(s, tea.KeyUp)

	assert.Equal(t, "/", s.Model.InputValue(), "history is not browsed while a menu is open")
	assert.Equal(t, len(s.Model.Slash.Items())-1, s.Model.Slash.SelectionIndex())
}

func TestSlashMenuScenario(t *testing.T) {
	s, bridge := newTestSession(t)

	typeText(s, "/тем")

	require.Equal(t, models.SlashOverlay, s.Model.Overlay)
	items := s.Model.Slash.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Темы", items[0].Label)
	assert.Equal(t, 0, s.Model.Slash.SelectionIndex())

	press(s, tea.KeyEnter)

	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Equal(t, "", s.Model.InputValue())
	assert.True(t, s.Model.SettingsForm.Open)
	assert.Equal(t, "", s.Model.SettingsForm.Section)
	assert.Zero(t, bridge.count(models.CmdRunTerminalCommand))
	assert.Zero(t, s.Model.History.Len())
}

func TestSlashMenuClosesWhenSlashIsDeleted(t *testing.T) {
	s, _ := newTestSession(t)
	typeText(s, "/ол")
	require.Equal(t, models.SlashOverlay, s.Model.Overlay)
	assert.Equal(t, "ол", s.Model.Slash.Query())

	for range []rune("/ол") {
		press(s, tea.KeyBackspace)
	}
	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
}

func TestSlashEnterWithoutMatchesSubmitsCommand(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdRunTerminalCommand, models.CommandResult{Stdout: "hi"})
	typeText(s, "/bin/echo hi")
	require.Equal(t, models.SlashOverlay, s.Model.Overlay)
	require.True(t, s.Model.Slash.Empty())

	press(s, tea.KeyEnter)

	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Empty(t, s.Model.InputValue())
	require.Equal(t, 1, bridge.count(models.CmdRunTerminalCommand))
	var req models.CommandRequest
	bridge.payload(t, models.CmdRunTerminalCommand, 0, &req)
	assert.Equal(t, "/bin/echo hi", req.Command)
	require.Len(t, s.Model.Terminal.Entries(), 1)
	assert.Equal(t, "/bin/echo hi", s.Model.Terminal.Entries()[0].Command)
}

func TestSlashEscapeClosesWithoutRunning(t *testing.T) {
	s, bridge := newTestSession(t)
	typeText(s, "/чат")
	press(s, tea.KeyEsc)

	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Equal(t, models.Terminal, s.Model.Mode)
	assert.Equal(t, "/чат", s.Model.InputValue())
	assert.Zero(t, bridge.count(models.CmdUpdateSettings))
}

func TestSlashModeItemSwitchesAndPersists(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.on(models.CmdUpdateSettings, func(raw json.RawMessage) (any, error) {
		settings := models.DefaultSettings()
		settings.Mode = models.Chat
		return settings, nil
	})

	typeText(s, "/чат")
	press(s, tea.KeyEnter)

	assert.Equal(t, models.Chat, s.Model.Mode)
	assert.Equal(t, models.ChatPanel, s.Model.Mode.Panel())
	assert.Equal(t, models.Chat.Placeholder(), s.Model.Input.Placeholder)
	require.Equal(t, 1, bridge.count(models.CmdUpdateSettings))

	var patch map[string]any
	bridge.payload(t, models.CmdUpdateSettings, 0, &patch)
	assert.Equal(t, map[string]any{"mode": "chat"}, patch)
}

func TestPathCompletionScenario(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.on(models.CmdGetDirectories, func(raw json.RawMessage) (any, error) {
		var req models.PrefixRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, err
		}
		if req.Prefix == "pro" {
			return []string{"project-a", "project-b"}, nil
		}
		return []string{"src", "docs"}, nil
	})

	typeText(s, "cd pro")
	press(s, tea.KeyTab)

	require.Equal(t, models.AutocompleteOverlay, s.Model.Overlay)
	assert.Equal(t, []string{"project-a", "project-b"}, s.Model.Autocomplete.Items())
	assert.Equal(t, 0, s.Model.Autocomplete.SelectionIndex())

	press(s, tea.KeyEnter)

	assert.Equal(t, "cd project-a/", s.Model.InputValue())
	require.Equal(t, 2, bridge.count(models.CmdGetDirectories))
	var req models.PrefixRequest
	bridge.payload(t, models.CmdGetDirectories, 1, &req)
	assert.Equal(t, "project-a/", req.Prefix)

	require.Equal(t, models.AutocompleteOverlay, s.Model.Overlay, "menu stays open on the subdirectories")
	assert.Equal(t, []string{"src", "docs"}, s.Model.Autocomplete.Items())

	press(s, tea.KeyDown)
	press(s, tea.KeyEnter)
	assert.Equal(t, "cd project-a/docs/", s.Model.InputValue())
	bridge.payload(t, models.CmdGetDirectories, 2, &req)
	assert.Equal(t, "project-a/docs/", req.Prefix)
}

func TestPathCompletionEmptyResultClosesSilently(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdGetDirectories, []string{})

	typeText(s, "ls nothing")
	press(s, tea.KeyTab)

	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Equal(t, "ls nothing", s.Model.InputValue())
	assert.Empty(t, s.Model.Terminal.Entries())
}

func TestPathCompletionErrorClosesSilently(t *testing.T) {
	s, _ := newTestSession(t)

	typeText(s, "cd x")
	press(s, tea.KeyTab)

	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Empty(t, s.Model.Terminal.Entries())
	assert.Empty(t, s.Model.Chat.Entries())
}

func TestTypingClosesAutocomplete(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdGetDirectories, []string{"src"})

	typeText(s, "cd s")
	press(s, tea.KeyTab)
	require.Equal(t, models.AutocompleteOverlay, s.Model.Overlay)

	typeText(s, "r")
	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Equal(t, "cd sr", s.Model.InputValue())
}

func TestAutocompleteGroupSkip(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdGetDirectories, []string{"a", "b", "c", "d", "e", "f", "g"})

	typeText(s, "cd ")
	press(s, tea.KeyTab)
	press(s, tea.KeyRight)
	assert.Equal(t, 5, s.Model.Autocomplete.SelectionIndex())
	press(s, tea.KeyRight)
	assert.Equal(t, 3, s.Model.Autocomplete.SelectionIndex())
	press(s, tea.KeyLeft)
	assert.Equal(t, 5, s.Model.Autocomplete.SelectionIndex())
	press(s, tea.KeyUp)
	press(s, tea.KeyTab)
	assert.Equal(t, 5, s.Model.Autocomplete.SelectionIndex())

	press(s, tea.KeyEsc)
	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Equal(t, "cd ", s.Model.InputValue())
}

func TestStaleDirectoryResponseIsDropped(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.on(models.CmdGetDirectories, func(raw json.RawMessage) (any, error) {
		var req models.PrefixRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, err
		}
		return []string{req.Prefix + "-dir"}, nil
	})

	s.Model.SetInput("cd a")
	first := s.Complete()
	s.Model.SetInput("cd b")
	second := s.Complete()

	late := first()
	s.Update(second())
	s.Update(late)

	require.Equal(t, models.AutocompleteOverlay, s.Model.Overlay)
	assert.Equal(t, []string{"b-dir"}, s.Model.Autocomplete.Items())
	assert.Equal(t, "b", s.Model.Autocomplete.BasePath)
}

func TestCommandCompletion(t *testing.T) {
	s, bridge := newTestSession(t)

	typeText(s, "pw")
	press(s, tea.KeyTab)
	assert.Equal(t, "pwd ", s.Model.InputValue())
	assert.Equal(t, models.NoOverlay, s.Model.Overlay)

	s.Model.SetInput("xyz")
	press(s, tea.KeyTab)
	assert.Equal(t, "xyz", s.Model.InputValue())
	assert.Equal(t, models.NoOverlay, s.Model.Overlay)

	s.Model.SetInput("")
	typeText(s, "ca")
	press(s, tea.KeyTab)
	require.Equal(t, models.AutocompleteOverlay, s.Model.Overlay)
	assert.Equal(t, models.CommandCompletion, s.Model.Autocomplete.Kind)
	assert.Equal(t, []string{"cat", "cargo build", "cargo run", "cargo test", "cargo check", "cargo clean"}, s.Model.Autocomplete.Items())

	press(s, tea.KeyDown)
	press(s, tea.KeyEnter)
	assert.Equal(t, "cargo build ", s.Model.InputValue())
	assert.Equal(t, models.NoOverlay, s.Model.Overlay)
	assert.Zero(t, bridge.count(models.CmdGetDirectories))
}

func TestTabOutsideTerminalDoesNothing(t *testing.T) {
	s, bridge := newTestSession(t)
	run(s, s.SetMode(models.Chat, true))

	typeText(s, "cd pro")
	press(s, tea.KeyTab)

	assert.Equal(t, "cd pro", s.Model.InputValue())
	assert.Zero(t, bridge.count(models.CmdGetDirectories))
}

func TestStartupRestoresModeSilently(t *testing.T) {
	s, bridge := newTestSession(t)
	saved := models.DefaultSettings()
	saved.Mode = models.Agent
	saved.Ollama.Model = "qwen2"
	bridge.answer(models.CmdGetSettings, saved)

	run(s, s.Init())

	assert.Equal(t, models.Agent, s.Model.Mode)
	assert.Equal(t, "qwen2", s.Model.Settings.Ollama.Model)
	assert.Zero(t, bridge.count(models.CmdUpdateSettings))
}

func TestStartupFallsBackToDefaults(t *testing.T) {
	s, bridge := newTestSession(t)

	run(s, s.Init())

	assert.Equal(t, models.Terminal, s.Model.Mode)
	assert.Equal(t, models.DefaultSettings(), s.Model.Settings)
	assert.Equal(t, 1, bridge.count(models.CmdGetSettings))
	assert.Zero(t, bridge.count(models.CmdUpdateSettings))
}

func TestModePersistenceFailureIsNotSurfaced(t *testing.T) {
	s, bridge := newTestSession(t)

	press(s, tea.KeyCtrlT)

	assert.Equal(t, 1, bridge.count(models.CmdUpdateSettings))
	assert.Equal(t, models.Terminal, s.Model.Mode)
	assert.Equal(t, "Готово", s.Model.Status)
	assert.Empty(t, s.Model.Terminal.Entries())
}

func TestCtrlQOnlyLeavesIde(t *testing.T) {
	s, bridge := newTestSession(t)
	bridge.answer(models.CmdGetDirectoryTree, []models.FileNode{})
	run(s, s.SetMode(models.Chat, true))

	press(s, tea.KeyCtrlQ)
	assert.Equal(t, models.Chat, s.Model.Mode)

	run(s, s.SetMode(models.Ide, true))
	press(s, tea.KeyCtrlQ)
	assert.Equal(t, models.Terminal, s.Model.Mode)
}

func TestDirectoryChangedEvent(t *testing.T) {
	s, _ := newTestSession(t)
	s.Update(dispatcher.CoreEventMsg{Event: eventbus.DirectoryChangedEvent{Path: "/home/me/w"}})
	assert.Equal(t, "/home/me/w", s.Model.CurrentDir)
}
