package components

import (
	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/internal/utils"
	"github.com/Rorical/RoriShell/ui/styles"
)

// RenderEditorTitle names the open file and its language.
func RenderEditorTitle(st styles.Styles, editor models.Editor) string {
	if editor.Path == "" {
		return st.PaneTitle.Render("Редактор")
	}
	return st.PaneTitle.Render(editor.Name) + st.Muted.Render("  "+utils.DetectLanguage(editor.Path))
}

// RenderEditor returns the body of the editor pane: the highlighted file,
// the load error, or a hint.
func RenderEditor(st styles.Styles, hl *utils.Highlighter, editor models.Editor) string {
	switch {
	case editor.Path == "":
		return st.Muted.Render("Выберите файл в дереве (Ctrl+N/P, Ctrl+O)")
	case editor.Error != "":
		return st.Error.Render(editor.Error)
	case editor.Content == "":
		return st.Muted.Render("Файл пуст")
	}
	return hl.Highlight(editor.Content, editor.Path)
}
