package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rorical/RoriShell/internal/models"
)

const maxTreeEntries = 200

// resolvePath interprets target the way a shell would: blank or "~" is the
// home directory, "~/x" is under it, relative paths are joined to cwd.
func resolvePath(cwd, target string) (string, error) {
	switch {
	case target == "" || target == "~":
		return os.UserHomeDir()
	case strings.HasPrefix(target, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, target[2:]), nil
	case filepath.IsAbs(target):
		return filepath.Clean(target), nil
	default:
		return filepath.Join(cwd, target), nil
	}
}

// canonicalize returns the absolute path of an existing file with symlinks
// resolved.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// within reports whether path is dir or lies below it. Both must be clean.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// isDir follows symlinks.
func isDir(dir string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// BuildFileTree lists dir down to depth levels. Hidden entries are skipped,
// directories sort before files and each level keeps at most 200 entries.
// Directories on the last level have nil Children; a directory that
// cannot be read has an empty, non-nil list.
func BuildFileTree(dir string, depth int) ([]models.FileNode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	nodes := make([]models.FileNode, 0, len(entries))
	for _, entry := range entries {
		if hidden(entry.Name()) {
			continue
		}
		nodes = append(nodes, models.FileNode{
			Name:  entry.Name(),
			Path:  filepath.Join(dir, entry.Name()),
			IsDir: isDir(dir, entry),
		})
	}

	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	if len(nodes) > maxTreeEntries {
		nodes = nodes[:maxTreeEntries]
	}

	if depth > 1 {
		for i := range nodes {
			if !nodes[i].IsDir {
				continue
			}
			children, err := BuildFileTree(nodes[i].Path, depth-1)
			if err != nil {
				children = []models.FileNode{}
			}
			nodes[i].Children = children
		}
	}
	return nodes, nil
}
