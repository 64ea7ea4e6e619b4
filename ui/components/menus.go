package components

import (
	"strings"

	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/ui/styles"
)

const (
	noMatches       = "Нет совпадений"
	maxMenuRows     = 8
	autocompleteTip = "Tab/↑↓ - выбор, ←→ - через 5, Enter - вставить, Esc - закрыть"
)

// RenderSlashMenu lists the matching items under their group titles.
func RenderSlashMenu(st styles.Styles, menu *models.SlashMenu, width int) string {
	var lines []string
	if menu.Empty() {
		lines = append(lines, st.Muted.Render(noMatches))
		return st.OverlayStyle(width).Render(strings.Join(lines, "\n"))
	}

	selected := menu.SelectionIndex()
	index := 0
	for _, group := range menu.Groups() {
		lines = append(lines, st.OverlayTitle.Render(group.Title))
		for _, item := range group.Items {
			text := item.Label
			if item.Hint != "" {
				text += "  " + item.Hint
			}
			if index == selected {
				lines = append(lines, st.SelectedItem.Render(text))
			} else {
				lines = append(lines, st.Item.Render(item.Label)+"  "+st.Hint.Render(item.Hint))
			}
			index++
		}
	}
	return st.OverlayStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderAutocomplete shows a window of items around the selection.
func RenderAutocomplete(st styles.Styles, ac *models.Autocomplete, width int) string {
	items := ac.Items()
	if len(items) == 0 {
		return st.OverlayStyle(width).Render(st.Muted.Render(noMatches))
	}

	selected := ac.SelectionIndex()
	start, end := window(len(items), selected, maxMenuRows)

	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, st.Muted.Render("  ↑ ещё "+itoa(start)))
	}
	for i := start; i < end; i++ {
		label := items[i]
		if ac.Kind == models.PathCompletion {
			label += "/"
		}
		if i == selected {
			lines = append(lines, st.SelectedItem.Render(label))
		} else {
			lines = append(lines, st.Item.Render(label))
		}
	}
	if end < len(items) {
		lines = append(lines, st.Muted.Render("  ↓ ещё "+itoa(len(items)-end)))
	}
	lines = append(lines, st.Hint.Render(autocompleteTip))
	return st.OverlayStyle(width).Render(strings.Join(lines, "\n"))
}

// window returns the [start, end) range of at most size rows that keeps
// selected visible.
func window(total, selected, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := max(selected-size/2, 0)
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}
