package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rorical/RoriShell/internal/models"
)

// DirectoriesTool completes directory names for path-taking commands.
type DirectoriesTool struct {
	workspace Workspace
}

func NewDirectoriesTool(workspace Workspace) *DirectoriesTool {
	return &DirectoriesTool{workspace: workspace}
}

func (d *DirectoriesTool) Name() string {
	return models.CmdGetDirectories
}

func (d *DirectoriesTool) Description() string {
	return "List directories whose names start with the last segment of a path prefix"
}

// Execute returns sorted directory names, not paths. The prefix is split at
// its last slash: the head names the directory to search, the tail is
// matched case-insensitively.
func (d *DirectoriesTool) Execute(ctx context.Context, payload json.RawMessage) (any, error) {
	var req models.PrefixRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	head, segment := "", req.Prefix
	if i := strings.LastIndex(req.Prefix, "/"); i >= 0 {
		head, segment = req.Prefix[:i+1], req.Prefix[i+1:]
	}

	parent := d.workspace.CurrentDir()
	if head != "" {
		resolved, err := resolvePath(parent, head)
		if err != nil {
			return nil, fmt.Errorf("не удалось определить путь: %w", err)
		}
		parent = resolved
	}

	entries, err := os.ReadDir(parent)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать каталог: %w", err)
	}

	needle := strings.ToLower(segment)
	showHidden := hidden(segment)
	names := make([]string, 0)
	for _, entry := range entries {
		name := entry.Name()
		if hidden(name) && !showHidden {
			continue
		}
		if !isDir(parent, entry) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), needle) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// DirectoryTreeTool lists one level of a directory for the file tree.
type DirectoryTreeTool struct {
	workspace Workspace
}

func NewDirectoryTreeTool(workspace Workspace) *DirectoryTreeTool {
	return &DirectoryTreeTool{workspace: workspace}
}

func (d *DirectoryTreeTool) Name() string {
	return models.CmdGetDirectoryTree
}

func (d *DirectoryTreeTool) Description() string {
	return "List the entries of a directory inside or above the current directory"
}

func (d *DirectoryTreeTool) Execute(ctx context.Context, payload json.RawMessage) (any, error) {
	var req models.PathRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	cwd, err := canonicalize(d.workspace.CurrentDir())
	if err != nil {
		return nil, fmt.Errorf("не удалось определить текущий каталог: %w", err)
	}

	path := cwd
	if req.Path != "" {
		target := req.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(cwd, target)
		}
		if path, err = canonicalize(target); err != nil {
			return nil, fmt.Errorf("не удалось открыть каталог: %w", err)
		}
	}

	if !within(path, cwd) && !within(cwd, path) {
		return nil, ErrAccessDenied
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть каталог: %w", err)
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory
	}

	nodes, err := BuildFileTree(path, 1)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать каталог: %w", err)
	}
	return nodes, nil
}
