package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/config"
	"github.com/Rorical/RoriShell/internal/eventbus"
	"github.com/Rorical/RoriShell/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	dir     string
	bus     *eventbus.EventBus
	service *HostService
}

func startHost(t *testing.T) *harness {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0644))

	store, err := config.OpenStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	state, err := NewHostState(dir, store)
	require.NoError(t, err)

	bus := eventbus.NewEventBus()
	service := NewHostService(state, bus, zap.NewNop(), WithWatchDebounce(50*time.Millisecond))
	service.Start()
	t.Cleanup(func() {
		service.Stop()
		bus.Close()
	})
	return &harness{dir: dir, bus: bus, service: service}
}

func (h *harness) invoke(t *testing.T, command string, payload, out any) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	raw, err := h.bus.Invoke(ctx, command, payload)
	if err != nil {
		return err
	}
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return nil
}

// waitFor returns the first core event matching match, skipping others.
func (h *harness) waitFor(t *testing.T, match func(eventbus.CoreEvent) bool) eventbus.CoreEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-h.bus.CoreToUI():
			if match(event) {
				return event
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for core event")
			return nil
		}
	}
}

func directoryChanged(path string) func(eventbus.CoreEvent) bool {
	return func(e eventbus.CoreEvent) bool {
		changed, ok := e.(eventbus.DirectoryChangedEvent)
		return ok && changed.Path == path
	}
}

func treeInvalidated(path string) func(eventbus.CoreEvent) bool {
	return func(e eventbus.CoreEvent) bool {
		inv, ok := e.(eventbus.TreeInvalidatedEvent)
		return ok && inv.Path == path
	}
}

func TestStartReportsDirectory(t *testing.T) {
	h := startHost(t)
	h.waitFor(t, directoryChanged(h.dir))
}

func TestRequestsReachTools(t *testing.T) {
	h := startHost(t)

	var nodes []models.FileNode
	require.NoError(t, h.invoke(t, models.CmdGetDirectoryTree, models.PathRequest{}, &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "src", nodes[0].Name)

	var content string
	require.NoError(t, h.invoke(t, models.CmdReadFile, models.PathRequest{Path: filepath.Join(h.dir, "main.go")}, &content))
	assert.Equal(t, "package main\n", content)

	var settings models.Settings
	require.NoError(t, h.invoke(t, models.CmdGetSettings, struct{}{}, &settings))
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestToolErrorsCrossTheBusAsRemoteErrors(t *testing.T) {
	h := startHost(t)

	err := h.invoke(t, "format_disk", struct{}{}, nil)
	var remote *eventbus.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "format_disk", remote.Command)
	assert.Contains(t, remote.Message, "неизвестная команда")

	err = h.invoke(t, models.CmdRunTerminalCommand, models.CommandRequest{Command: " "}, nil)
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "команда не должна быть пустой", remote.Message)
}

func TestCdPushesDirectoryChange(t *testing.T) {
	h := startHost(t)
	h.waitFor(t, directoryChanged(h.dir))

	var result models.CommandResult
	require.NoError(t, h.invoke(t, models.CmdRunTerminalCommand, models.CommandRequest{Command: "cd src"}, &result))

	src := filepath.Join(h.dir, "src")
	assert.Equal(t, src, result.CurrentDir)
	assert.NotNil(t, result.FileTree)
	h.waitFor(t, directoryChanged(src))
}

func TestRequestsRunConcurrently(t *testing.T) {
	h := startHost(t)

	slow := make(chan error, 1)
	go func() {
		slow <- h.invoke(t, models.CmdRunTerminalCommand, models.CommandRequest{Command: "sleep 1"}, nil)
	}()

	started := time.Now()
	var settings models.Settings
	require.NoError(t, h.invoke(t, models.CmdGetSettings, struct{}{}, &settings))
	assert.Less(t, time.Since(started), 900*time.Millisecond)
	require.NoError(t, <-slow)
}

func TestRequestDeadlineStopsCommand(t *testing.T) {
	h := startHost(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := h.bus.Invoke(ctx, models.CmdRunTerminalCommand, models.CommandRequest{Command: "sleep 5"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWatcherInvalidatesChangedDirectories(t *testing.T) {
	h := startHost(t)
	h.waitFor(t, directoryChanged(h.dir))

	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "new.txt"), nil, 0644))
	h.waitFor(t, treeInvalidated(h.dir))

	src := filepath.Join(h.dir, "src")
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.go"), nil, 0644))
	h.waitFor(t, treeInvalidated(src))
}

func TestWatcherFollowsCd(t *testing.T) {
	h := startHost(t)
	src := filepath.Join(h.dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "pkg"), 0755))

	require.NoError(t, h.invoke(t, models.CmdRunTerminalCommand, models.CommandRequest{Command: "cd src"}, nil))
	h.waitFor(t, directoryChanged(src))

	pkg := filepath.Join(src, "pkg")
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "x.go"), nil, 0644))
	h.waitFor(t, treeInvalidated(pkg))
}
