package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Rorical/RoriShell/internal/config"
)

// HostState is the host's working directory and settings store. It is
// shared by concurrently running tools.
type HostState struct {
	mu       sync.RWMutex
	cwd      string
	settings *config.Store
	onChange func(dir string)
}

// NewHostState starts in dir, which must be an existing directory.
func NewHostState(dir string, settings *config.Store) (*HostState, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &HostState{cwd: resolved, settings: settings}, nil
}

func (hs *HostState) CurrentDir() string {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.cwd
}

// ChangeDir records the new directory and notifies the change callback.
func (hs *HostState) ChangeDir(dir string) {
	hs.mu.Lock()
	hs.cwd = dir
	onChange := hs.onChange
	hs.mu.Unlock()

	if onChange != nil {
		onChange(dir)
	}
}

// OnChange sets the callback run after every ChangeDir.
func (hs *HostState) OnChange(fn func(dir string)) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.onChange = fn
}

func (hs *HostState) Settings() *config.Store {
	return hs.settings
}
