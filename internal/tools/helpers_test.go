package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeWorkspace struct {
	mu  sync.Mutex
	dir string
}

func (w *fakeWorkspace) CurrentDir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

func (w *fakeWorkspace) ChangeDir(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dir = dir
}

// tempDir returns a canonical temporary directory.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// layout creates files and directories below root. Names ending in "/"
// are directories.
func layout(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	}
}

func execute(t *testing.T, tool Tool, payload any) (any, error) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return tool.Execute(context.Background(), raw)
}
