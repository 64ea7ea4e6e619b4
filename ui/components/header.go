package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/ui/styles"
)

// RenderHeader shows the mode tabs and the host's current directory.
func RenderHeader(st styles.Styles, active models.Mode, dir string, width int) string {
	tabs := make([]string, 0, len(models.AllModes()))
	for _, mode := range models.AllModes() {
		if mode == active {
			tabs = append(tabs, st.ActiveTab.Render(mode.Label()))
		} else {
			tabs = append(tabs, st.Tab.Render(mode.Label()))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	room := width - lipgloss.Width(left) - 2
	right := ""
	if room > 3 && dir != "" {
		right = st.Dir.Render(truncateLeft(dir, room))
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return st.Header.Width(max(width, 1)).Render(left + strings.Repeat(" ", gap) + right)
}

// truncateLeft keeps the end of s, which is the informative part of a path.
func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
