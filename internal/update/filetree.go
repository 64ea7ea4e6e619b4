package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriShell/internal/dispatcher"
	"github.com/Rorical/RoriShell/internal/models"
)

// loadTreeRoot lists path as the tree roots. An empty path means the
// host's current directory.
func (s *Session) loadTreeRoot(path string) tea.Cmd {
	m := s.Model
	m.Tree.Loading = true
	gen := m.Requests.Next(models.TreeRootTarget)
	return s.host.GetDirectoryTree(gen, path)
}

// ActivateTreeNode expands or collapses the directory under the cursor,
// or opens the file under it.
func (s *Session) ActivateTreeNode() tea.Cmd {
	node, ok := s.Model.Tree.Current()
	if !ok {
		return nil
	}
	if node.IsDir {
		return s.ToggleDirectory(node)
	}
	return s.OpenFile(node)
}

// ToggleDirectory shows or hides a directory's children. Children are
// fetched only when not loaded and no fetch is already in flight.
func (s *Session) ToggleDirectory(node *models.TreeNode) tea.Cmd {
	if !node.IsDir {
		return nil
	}
	if node.Expanded {
		node.Expanded = false
		return nil
	}
	if node.ChildrenLoaded {
		node.Expanded = true
		return nil
	}
	if node.Loading {
		return nil
	}
	node.Loading = true
	return s.host.GetDirectoryTree(0, node.Path)
}

// OpenFile loads a file into the editor pane. Only the latest request
// updates the pane.
func (s *Session) OpenFile(node *models.TreeNode) tea.Cmd {
	if node.IsDir {
		return nil
	}
	m := s.Model
	gen := m.Requests.Next(models.EditorTarget)
	m.Editor = models.Editor{
		Path:     node.Path,
		Name:     node.Name,
		Revision: m.Editor.Revision + 1,
	}
	s.begin("Загрузка " + node.Name)
	return s.host.ReadFile(gen, node.Path)
}

func (s *Session) handleFileLoaded(msg dispatcher.FileLoadedMsg) tea.Cmd {
	m := s.Model
	s.finish()
	if !m.Requests.Current(models.EditorTarget, msg.Gen) {
		return nil
	}
	if msg.Err != nil {
		m.Editor.Content = ""
		m.Editor.Error = "Не удалось загрузить файл: " + msg.Err.Error()
	} else {
		m.Editor.Content = msg.Content
		m.Editor.Error = ""
	}
	m.Editor.Revision++
	return nil
}

func (s *Session) handleDirectoryTree(msg dispatcher.DirectoryTreeMsg) tea.Cmd {
	m := s.Model
	if msg.Gen != 0 {
		if !m.Requests.Current(models.TreeRootTarget, msg.Gen) {
			return nil
		}
		m.Tree.Loading = false
		if msg.Err != nil {
			s.logger.Warn("failed to load file tree", zap.String("path", msg.Path), zap.Error(msg.Err))
			m.Status = "Не удалось загрузить дерево файлов: " + msg.Err.Error()
			return nil
		}
		if msg.Path != "" && msg.Path == m.Tree.Root && m.Tree.Loaded {
			m.Tree.RefreshRoots(msg.Nodes)
			return nil
		}
		root := msg.Path
		if root == "" {
			root = m.CurrentDir
		}
		m.Tree.SetRoots(root, msg.Nodes)
		return nil
	}

	node, ok := m.Tree.Node(msg.Path)
	if !ok {
		return nil
	}
	if node.Stale {
		node.Stale = false
		s.logger.Debug("directory changed during listing, listing again", zap.String("path", msg.Path))
		return s.host.GetDirectoryTree(0, msg.Path)
	}
	node.Loading = false
	if msg.Err != nil {
		s.logger.Warn("failed to load directory", zap.String("path", msg.Path), zap.Error(msg.Err))
		return nil
	}
	m.Tree.SetChildren(msg.Path, msg.Nodes)
	node.Expanded = true
	return nil
}

// InvalidateDirectory drops the cached listing of path after the host saw
// it change. Expanded directories are listed again right away, and a
// directory whose listing is in flight is listed again once it lands.
func (s *Session) InvalidateDirectory(path string) tea.Cmd {
	m := s.Model
	if !m.Tree.Loaded {
		return nil
	}
	if path == m.Tree.Root {
		return s.loadTreeRoot(path)
	}
	node, ok := m.Tree.Invalidate(path)
	if !ok {
		return nil
	}
	if node.Loading {
		node.Stale = true
		return nil
	}
	if !node.Expanded {
		return nil
	}
	node.Loading = true
	return s.host.GetDirectoryTree(0, path)
}
