package components

import (
	"strings"

	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/ui/styles"
)

// RenderFileTree renders at most height rows of the tree, scrolled so the
// cursor row is visible.
func RenderFileTree(st styles.Styles, tree *models.FileTree, width, height int) string {
	if tree.Empty() {
		if tree.Loading {
			return st.Muted.Render("Загрузка...")
		}
		return st.Muted.Render("Нет файлов")
	}

	rows := tree.Rows()
	cursor := tree.Cursor()
	start, end := window(len(rows), cursor, max(height, 1))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		line := strings.Repeat("  ", row.Depth) + treeMarker(row.Node) + row.Node.Name
		line = truncateRight(line, width)

		style := st.TreeFile
		if row.Node.IsDir {
			style = st.TreeDir
		}
		if i == cursor {
			style = style.Inherit(st.TreeCursor)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func treeMarker(node *models.TreeNode) string {
	switch {
	case !node.IsDir:
		return "  "
	case node.Loading:
		return "… "
	case node.Expanded:
		return "▾ "
	default:
		return "▸ "
	}
}

func truncateRight(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
