package models

// TreeNode is a cached file tree node.
type TreeNode struct {
	Name           string
	Path           string
	IsDir          bool
	Children       []*TreeNode
	ChildrenLoaded bool // false means the children are unknown, not absent
	Expanded       bool
	Loading        bool // a listing request is in flight
	Stale          bool // changed while Loading; list again once the request lands
}

// TreeRow is a visible node with its depth, in display order.
type TreeRow struct {
	Node  *TreeNode
	Depth int
}

// FileTree mirrors the part of the host filesystem the user has opened.
type FileTree struct {
	Root    string // directory the roots were listed from
	roots   []*TreeNode
	byPath  map[string]*TreeNode
	cursor  int
	Loading bool // root listing in flight
	Loaded  bool // Root has been listed, even if it had no entries
}

func NewFileTree() *FileTree {
	return &FileTree{byPath: make(map[string]*TreeNode)}
}

// Empty reports whether nothing has been loaded yet.
func (t *FileTree) Empty() bool {
	return len(t.roots) == 0
}

// SetRoots replaces the whole tree with the host's listing of root.
func (t *FileTree) SetRoots(root string, nodes []FileNode) {
	t.Root = root
	t.byPath = make(map[string]*TreeNode)
	t.roots = t.build(nodes)
	t.cursor = 0
	t.Loading = false
	t.Loaded = true
}

// SetChildren stores a directory listing for path and marks it loaded.
// It returns false when path is not a known directory.
func (t *FileTree) SetChildren(path string, nodes []FileNode) bool {
	node, ok := t.byPath[path]
	if !ok || !node.IsDir {
		return false
	}
	node.Children = t.rebuild(node.Children, nodes)
	node.ChildrenLoaded = true
	node.Loading = false
	return true
}

func (t *FileTree) build(nodes []FileNode) []*TreeNode {
	result := make([]*TreeNode, 0, len(nodes))
	for _, n := range nodes {
		node := &TreeNode{Name: n.Name, Path: n.Path, IsDir: n.IsDir}
		if n.IsDir && n.Children != nil {
			node.Children = t.build(n.Children)
			node.ChildrenLoaded = true
		}
		t.byPath[node.Path] = node
		result = append(result, node)
	}
	return result
}

// RefreshRoots applies a new listing of Root, keeping the state of
// directories that are still present.
func (t *FileTree) RefreshRoots(nodes []FileNode) {
	t.roots = t.rebuild(t.roots, nodes)
	t.Loading = false
}

// rebuild is build for a re-listing: nodes already known by path keep their
// loaded children and expansion, vanished ones are forgotten.
func (t *FileTree) rebuild(old []*TreeNode, nodes []FileNode) []*TreeNode {
	prev := make(map[string]*TreeNode, len(old))
	for _, n := range old {
		prev[n.Path] = n
	}
	result := make([]*TreeNode, 0, len(nodes))
	for _, n := range nodes {
		if p, ok := prev[n.Path]; ok && p.IsDir == n.IsDir && n.Children == nil {
			delete(prev, n.Path)
			p.Name = n.Name
			result = append(result, p)
			continue
		}
		if p, ok := prev[n.Path]; ok {
			delete(prev, n.Path)
			t.dropDescendants(p)
		}
		result = append(result, t.build([]FileNode{n})...)
	}
	for _, gone := range prev {
		t.dropDescendants(gone)
		delete(t.byPath, gone.Path)
	}
	return result
}

func (t *FileTree) dropDescendants(node *TreeNode) {
	for _, child := range node.Children {
		t.dropDescendants(child)
		delete(t.byPath, child.Path)
	}
}

func (t *FileTree) Node(path string) (*TreeNode, bool) {
	node, ok := t.byPath[path]
	return node, ok
}

// Invalidate forgets the listing of path so the next expand fetches it
// again. Loaded children stay visible until the new listing arrives.
func (t *FileTree) Invalidate(path string) (*TreeNode, bool) {
	node, ok := t.byPath[path]
	if !ok || !node.IsDir {
		return nil, false
	}
	node.ChildrenLoaded = false
	return node, true
}

// Reset drops the cached tree.
func (t *FileTree) Reset() {
	t.Root = ""
	t.roots = nil
	t.byPath = make(map[string]*TreeNode)
	t.cursor = 0
	t.Loading = false
	t.Loaded = false
}

func (t *FileTree) Roots() []*TreeNode {
	return t.roots
}

// Rows flattens the expanded part of the tree.
func (t *FileTree) Rows() []TreeRow {
	var rows []TreeRow
	var walk func(nodes []*TreeNode, depth int)
	walk = func(nodes []*TreeNode, depth int) {
		for _, n := range nodes {
			rows = append(rows, TreeRow{Node: n, Depth: depth})
			if n.IsDir && n.Expanded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t.roots, 0)
	return rows
}

// MoveCursor moves the highlighted row, clamped to the visible rows.
func (t *FileTree) MoveCursor(delta int) {
	rows := t.Rows()
	if len(rows) == 0 {
		t.cursor = 0
		return
	}
	t.cursor = clamp(t.cursor+delta, 0, len(rows)-1)
}

// Cursor returns the highlighted row index, clamped to the visible rows.
func (t *FileTree) Cursor() int {
	rows := t.Rows()
	if len(rows) == 0 {
		return 0
	}
	return clamp(t.cursor, 0, len(rows)-1)
}

// Current returns the node under the cursor.
func (t *FileTree) Current() (*TreeNode, bool) {
	rows := t.Rows()
	if len(rows) == 0 {
		return nil, false
	}
	return rows[t.Cursor()].Node, true
}
