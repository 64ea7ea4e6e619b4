package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriShell/internal/eventbus"
	"github.com/Rorical/RoriShell/internal/models"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultModelTimeout = 120 * time.Second
)

// Bridge is the async request/response boundary to the host.
type Bridge interface {
	Invoke(ctx context.Context, command string, payload any) (json.RawMessage, error)
}

// Timeouts bound host calls. Model queries get their own, longer limit.
type Timeouts struct {
	Default time.Duration
	Model   time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Default <= 0 {
		t.Default = DefaultTimeout
	}
	if t.Model <= 0 {
		t.Model = DefaultModelTimeout
	}
	return t
}

// EventDispatcher turns host calls into tea.Cmds and core events into tea.Msgs
type EventDispatcher struct {
	bridge   Bridge
	events   <-chan eventbus.CoreEvent
	timeouts Timeouts
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewEventDispatcher wraps bridge. events may be nil when the host pushes nothing.
func NewEventDispatcher(bridge Bridge, events <-chan eventbus.CoreEvent, timeouts Timeouts) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		bridge:   bridge,
		events:   events,
		timeouts: timeouts.withDefaults(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Stop cancels every host call still in flight.
func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

func (ed *EventDispatcher) Timeouts() Timeouts {
	return ed.timeouts
}

func call[T any](ed *EventDispatcher, timeout time.Duration, command string, payload any) (T, error) {
	var result T
	ctx, cancel := context.WithTimeout(ed.ctx, timeout)
	defer cancel()

	raw, err := ed.bridge.Invoke(ctx, command, payload)
	if err != nil {
		return result, err
	}
	if len(raw) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decode %s result: %w", command, err)
	}
	return result, nil
}

func (ed *EventDispatcher) LoadSettings() tea.Cmd {
	return func() tea.Msg {
		settings, err := call[models.Settings](ed, ed.timeouts.Default, models.CmdGetSettings, struct{}{})
		return SettingsLoadedMsg{Settings: settings, Err: err}
	}
}

// SaveSettings sends patch to the host; reason tells the handler how loudly to fail.
func (ed *EventDispatcher) SaveSettings(patch models.SettingsPatch, reason SaveReason) tea.Cmd {
	return func() tea.Msg {
		settings, err := call[models.Settings](ed, ed.timeouts.Default, models.CmdUpdateSettings, patch)
		return SettingsSavedMsg{Settings: settings, Reason: reason, Err: err}
	}
}

func (ed *EventDispatcher) RunTerminalCommand(entryID, command string) tea.Cmd {
	return func() tea.Msg {
		result, err := call[models.CommandResult](ed, ed.timeouts.Default, models.CmdRunTerminalCommand,
			models.CommandRequest{Command: command})
		return TerminalResultMsg{EntryID: entryID, Result: result, Err: err}
	}
}

func (ed *EventDispatcher) QueryModel(req models.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := call[models.ChatResponse](ed, ed.timeouts.Model, models.CmdQueryOllama, req)
		return ModelReplyMsg{Message: resp.Message, Err: err}
	}
}

func (ed *EventDispatcher) ReadFile(gen uint64, path string) tea.Cmd {
	return func() tea.Msg {
		content, err := call[string](ed, ed.timeouts.Default, models.CmdReadFile, models.PathRequest{Path: path})
		return FileLoadedMsg{Gen: gen, Path: path, Content: content, Err: err}
	}
}

func (ed *EventDispatcher) GetDirectories(gen uint64, command, prefix string) tea.Cmd {
	return func() tea.Msg {
		items, err := call[[]string](ed, ed.timeouts.Default, models.CmdGetDirectories, models.PrefixRequest{Prefix: prefix})
		return DirectoriesMsg{Gen: gen, Command: command, Prefix: prefix, Items: items, Err: err}
	}
}

// GetDirectoryTree lists path. An empty path lists the host's current
// directory; gen stamps root loads and is zero for subtree loads.
func (ed *EventDispatcher) GetDirectoryTree(gen uint64, path string) tea.Cmd {
	return func() tea.Msg {
		nodes, err := call[[]models.FileNode](ed, ed.timeouts.Default, models.CmdGetDirectoryTree, models.PathRequest{Path: path})
		return DirectoryTreeMsg{Gen: gen, Path: path, Nodes: nodes, Err: err}
	}
}

// ListenForCoreEvents waits for the next pushed core event. The handler
// re-issues it after every CoreEventMsg.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	if ed.events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case event, ok := <-ed.events:
			if !ok {
				return CoreEventsClosedMsg{}
			}
			return CoreEventMsg{Event: event}
		case <-ed.ctx.Done():
			return CoreEventsClosedMsg{}
		}
	}
}
