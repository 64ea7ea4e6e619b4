package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/eventbus"
	"github.com/Rorical/RoriShell/internal/tools"
)

// HostService answers bridge requests from the UI. Every request runs in
// its own goroutine, bounded by the deadline the caller set.
type HostService struct {
	state         *HostState
	eventBus      *eventbus.EventBus
	toolRegistry  *tools.Registry
	watcher       *Watcher
	watchDebounce time.Duration
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

type Option func(*HostService)

// WithWatchDebounce sets how long a directory must be quiet before its
// change is reported.
func WithWatchDebounce(d time.Duration) Option {
	return func(hs *HostService) { hs.watchDebounce = d }
}

func NewHostService(state *HostState, eb *eventbus.EventBus, logger *zap.Logger, opts ...Option) *HostService {
	ctx, cancel := context.WithCancel(context.Background())

	toolRegistry := tools.NewRegistry()
	tools.RegisterHostTools(toolRegistry, state, state.Settings())

	service := &HostService{
		state:         state,
		eventBus:      eb,
		toolRegistry:  toolRegistry,
		watchDebounce: DefaultWatchDebounce,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Start reports the starting directory to the UI and begins serving.
// The service still runs when the filesystem watcher is unavailable.
func (hs *HostService) Start() {
	watcher, err := NewWatcher(hs.logger, hs.watchDebounce, hs.treeInvalidated)
	if err != nil {
		hs.logger.Warn("filesystem watcher unavailable", zap.Error(err))
	} else {
		hs.watcher = watcher
		watcher.Start(hs.ctx)
	}

	hs.state.OnChange(hs.directoryChanged)
	hs.directoryChanged(hs.state.CurrentDir())

	hs.wg.Add(1)
	go hs.eventLoop()
}

// Stop cancels in-flight requests and waits for them to finish.
func (hs *HostService) Stop() {
	hs.cancel()
	hs.wg.Wait()
	if hs.watcher != nil {
		hs.watcher.Stop()
	}
}

func (hs *HostService) eventLoop() {
	defer hs.wg.Done()
	for {
		select {
		case <-hs.ctx.Done():
			return
		case <-hs.eventBus.Done():
			return
		case event, ok := <-hs.eventBus.UIToCore():
			if !ok {
				return
			}
			hs.handleUIEvent(event)
		}
	}
}

func (hs *HostService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case *eventbus.Request:
		hs.wg.Add(1)
		go hs.handleRequest(e)
	default:
		hs.logger.Warn("unexpected UI event", zap.Any("event", event))
	}
}

func (hs *HostService) handleRequest(req *eventbus.Request) {
	defer hs.wg.Done()

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if req.Deadline.IsZero() {
		ctx, cancel = context.WithCancel(hs.ctx)
	} else {
		ctx, cancel = context.WithDeadline(hs.ctx, req.Deadline)
	}
	defer cancel()

	started := time.Now()
	results := make(chan tools.Result, 1)
	hs.toolRegistry.ExecuteAsync(ctx, tools.Call{ID: req.ID, Name: req.Command, Payload: req.Payload}, results)
	result := <-results

	if result.Err != nil {
		hs.logger.Warn("host command failed",
			zap.String("command", req.Command),
			zap.String("id", req.ID),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(result.Err))
		req.Reply(nil, &eventbus.RemoteError{Command: req.Command, Message: result.Err.Error()})
		return
	}

	hs.logger.Debug("host command finished",
		zap.String("command", req.Command),
		zap.String("id", req.ID),
		zap.Duration("elapsed", time.Since(started)))
	req.Reply(result.Value, nil)
}

func (hs *HostService) directoryChanged(dir string) {
	if hs.watcher != nil {
		if err := hs.watcher.Watch(dir); err != nil {
			hs.logger.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	hs.push(eventbus.DirectoryChangedEvent{Path: dir})
}

func (hs *HostService) treeInvalidated(dir string) {
	hs.push(eventbus.TreeInvalidatedEvent{Path: dir})
}

func (hs *HostService) push(event eventbus.CoreEvent) {
	if err := hs.eventBus.SendToUI(event); err != nil {
		hs.logger.Warn("failed to notify UI", zap.Any("event", event), zap.Error(err))
	}
}
