package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Tool is one host operation reachable over the bridge.
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, payload json.RawMessage) (any, error)
}

// Call is a request to run a tool.
type Call struct {
	ID      string
	Name    string
	Payload json.RawMessage
}

// Result is the outcome of a Call.
type Result struct {
	CallID string
	Name   string
	Value  any
	Err    error
}

// Registry manages available tools
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool, replacing any tool with the same name.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

func (r *Registry) GetTool(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns the registered tools ordered by name.
func (r *Registry) ListTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// Execute runs the named tool synchronously.
func (r *Registry) Execute(ctx context.Context, name string, payload json.RawMessage) (any, error) {
	tool, exists := r.GetTool(name)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return tool.Execute(ctx, payload)
}

// ExecuteAsync runs call in its own goroutine, sends exactly one Result and
// closes resultChan.
func (r *Registry) ExecuteAsync(ctx context.Context, call Call, resultChan chan<- Result) {
	go func() {
		defer close(resultChan)

		value, err := r.Execute(ctx, call.Name, call.Payload)
		resultChan <- Result{
			CallID: call.ID,
			Name:   call.Name,
			Value:  value,
			Err:    err,
		}
	}()
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
