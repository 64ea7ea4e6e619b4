package update

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/eventbus"
)

var errHostDown = errors.New("host unavailable")

type replyFunc func(payload json.RawMessage) (any, error)

// fakeBridge answers host commands from canned replies and records every call.
type fakeBridge struct {
	mu      sync.Mutex
	calls   map[string][]json.RawMessage
	replies map[string]replyFunc
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		calls:   make(map[string][]json.RawMessage),
		replies: make(map[string]replyFunc),
	}
}

func (b *fakeBridge) on(command string, reply replyFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[command] = reply
}

func (b *fakeBridge) answer(command string, result any) {
	b.on(command, func(json.RawMessage) (any, error) { return result, nil })
}

func (b *fakeBridge) Invoke(_ context.Context, command string, payload any) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.calls[command] = append(b.calls[command], raw)
	reply, ok := b.replies[command]
	b.mu.Unlock()

	if !ok {
		return nil, &eventbus.RemoteError{Command: command, Message: errHostDown.Error()}
	}
	result, err := reply(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

func (b *fakeBridge) count(command string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls[command])
}

// payload decodes the i-th recorded payload of command into v.
func (b *fakeBridge) payload(t *testing.T, command string, i int, v any) {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.Greater(t, len(b.calls[command]), i, "no call %d to %s", i, command)
	require.NoError(t, json.Unmarshal(b.calls[command][i], v))
}

func newTestSession(t *testing.T) (*Session, *fakeBridge) {
	t.Helper()
	bridge := newFakeBridge()
	host := dispatcher.NewEventDispatcher(bridge, nil, dispatcher.Timeouts{})
	t.Cleanup(host.Stop)

	s := NewSession(host, zap.NewNop(), []string{"graphite", "dusk", "light"})
	s.Model.Input.Cursor.SetMode(cursor.CursorStatic)
	return s, bridge
}

// run executes cmd and feeds every resulting message back into the
// session until nothing is left, the way the bubbletea runtime would.
func run(s *Session, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			queue = append(queue, s.Update(msg))
		}
	}
}

func press(s *Session, keyType tea.KeyType) {
	run(s, s.Update(tea.KeyMsg{Type: keyType}))
}

func typeText(s *Session, text string) {
	for _, r := range text {
		run(s, s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
	}
}
