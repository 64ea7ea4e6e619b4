package tools

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriShell/internal/models"
)

func TestDirectoriesCompletion(t *testing.T) {
	root := tempDir(t)
	home := tempDir(t)
	t.Setenv("HOME", home)
	layout(t, root, "project-a/docs/", "Project-B/", "notes/", "profile.txt", ".private/", ".config/")
	layout(t, home, "work/")
	tool := NewDirectoriesTool(&fakeWorkspace{dir: root})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"pro", []string{"Project-B", "project-a"}},
		{"PROJECT-a", []string{"project-a"}},
		{"", []string{"Project-B", "notes", "project-a"}},
		{".", []string{".config", ".private"}},
		{"project-a/", []string{"docs"}},
		{"project-a/d", []string{"docs"}},
		{root + "/no", []string{"notes"}},
		{"~/w", []string{"work"}},
		{"zzz", []string{}},
		{"missing/", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			out, err := execute(t, tool, models.PrefixRequest{Prefix: tt.prefix})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func treeNames(nodes []models.FileNode) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	return names
}

func listTree(t *testing.T, tool *DirectoryTreeTool, path string) ([]models.FileNode, error) {
	t.Helper()
	out, err := execute(t, tool, models.PathRequest{Path: path})
	if err != nil {
		return nil, err
	}
	return out.([]models.FileNode), nil
}

func TestDirectoryTreeListsOneLevel(t *testing.T) {
	root := tempDir(t)
	layout(t, root, "b.txt", "A.txt", "zeta/inner/", "Alpha/", ".hidden")
	tool := NewDirectoryTreeTool(&fakeWorkspace{dir: root})

	nodes, err := listTree(t, tool, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "zeta", "A.txt", "b.txt"}, treeNames(nodes))
	assert.Equal(t, filepath.Join(root, "zeta"), nodes[1].Path)
	assert.Nil(t, nodes[1].Children)

	nodes, err = listTree(t, tool, filepath.Join(root, "zeta"))
	require.NoError(t, err)
	assert.Equal(t, []string{"inner"}, treeNames(nodes))
}

func TestDirectoryTreeAccess(t *testing.T) {
	root := tempDir(t)
	layout(t, root, "work/sub/", "work/file.txt", "other/")
	work := filepath.Join(root, "work", "sub")
	tool := NewDirectoryTreeTool(&fakeWorkspace{dir: work})

	_, err := listTree(t, tool, root)
	assert.NoError(t, err, "ancestors of the current directory are allowed")

	_, err = listTree(t, tool, filepath.Join(root, "other"))
	assert.ErrorIs(t, err, ErrAccessDenied)

	tool = NewDirectoryTreeTool(&fakeWorkspace{dir: filepath.Join(root, "work")})
	_, err = listTree(t, tool, filepath.Join(root, "work", "file.txt"))
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestDirectoryTreeTruncates(t *testing.T) {
	root := tempDir(t)
	names := make([]string, 0, 210)
	for i := 0; i < 210; i++ {
		names = append(names, fmt.Sprintf("f%03d.txt", i))
	}
	layout(t, root, names...)
	tool := NewDirectoryTreeTool(&fakeWorkspace{dir: root})

	nodes, err := listTree(t, tool, "")
	require.NoError(t, err)
	assert.Len(t, nodes, maxTreeEntries)
	assert.Equal(t, "f000.txt", nodes[0].Name)
}
